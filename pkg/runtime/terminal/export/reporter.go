package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// Handler writes a report somewhere.
type Handler interface {
	Handle(report *domain.Report) error
}

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        32,
		ValueWidth:       12,
		DescriptionWidth: 12,
	}
}

// Reporter renders reports as fixed-width text tables, one per section.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) WithConfig(config TableConfig) *Reporter {
	c.config = config
	return c
}

const tableTemplate = `
{{.Title}}{{if .Subtitle}} - {{.Subtitle}}{{end}}
{{if .Unit}}Eenheid: {{.Unit}}
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{separator}}
{{header}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{range .Notes}}* {{.}}
{{end}}{{end}}`

func (c *Reporter) Handle(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	cell := func(s string, width int) string {
		return fmt.Sprintf(" %-*s |", width, truncate(s, width))
	}
	rcell := func(s string, width int) string {
		return fmt.Sprintf(" %*s |", width, truncate(s, width))
	}

	funcMap := template.FuncMap{
		"header": func() string {
			var b strings.Builder
			b.WriteString("|")
			b.WriteString(cell("Naam", c.config.NameWidth))
			for _, p := range report.Periods {
				b.WriteString(rcell(p, c.config.ValueWidth))
			}
			b.WriteString(cell("", c.config.DescriptionWidth))
			return b.String()
		},
		"formatRow": func(row domain.ReportRow) string {
			var b strings.Builder
			b.WriteString("|")
			b.WriteString(cell(row.Name, c.config.NameWidth))
			for i := range report.Periods {
				v := domain.None()
				if i < len(row.Values) {
					v = row.Values[i]
				}
				b.WriteString(rcell(FormatValue(v), c.config.ValueWidth))
			}
			b.WriteString(cell(row.Description, c.config.DescriptionWidth))
			return b.String()
		},
		"separator": func() string {
			var b strings.Builder
			b.WriteString("+")
			b.WriteString(strings.Repeat("-", c.config.NameWidth+2) + "+")
			for range report.Periods {
				b.WriteString(strings.Repeat("-", c.config.ValueWidth+2) + "+")
			}
			b.WriteString(strings.Repeat("-", c.config.DescriptionWidth+2) + "+")
			return b.String()
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(tableTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// FormatValue renders a cell with two decimals, "-" when absent.
func FormatValue(v domain.Value) string {
	if !v.Present {
		return domain.MissingValue
	}
	return fmt.Sprintf("%.2f", v.Amount)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
)

// ListReporter prints reports as an indented list, one line per row and period.
type ListReporter struct {
	writer io.Writer
}

func NewListReporter(writer io.Writer) *ListReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &ListReporter{writer: writer}
}

func (c *ListReporter) Handle(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	funcMap := template.FuncMap{
		"value": FormatValue,
		"period": func(i int) string {
			if i < len(report.Periods) {
				return report.Periods[i]
			}
			return fmt.Sprintf("#%d", i+1)
		},
	}

	tmpl := `
{{.Title}}{{if .Subtitle}} - {{.Subtitle}}{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}{{range .Rows}}
- {{.Name}}{{if .Description}} ({{.Description}}){{end}}
{{range $i, $v := .Values}}  {{period $i}}: {{value $v}}
{{end}}{{end}}{{range .Notes}}
  * {{.}}{{end}}
{{end}}`

	t, err := template.New("list").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

package export

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	maxSheetName  = 31
	nameColWidth  = 40
	valueColWidth = 14
)

// XLSXWriter writes each report section to its own worksheet.
type XLSXWriter struct {
	writer io.Writer
}

func NewXLSXWriter(writer io.Writer) *XLSXWriter {
	return &XLSXWriter{writer: writer}
}

func (x *XLSXWriter) Handle(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	f, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(x.writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook lays the report out as a workbook. Absent cells hold "-".
func BuildWorkbook(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	sections := report.Sections
	if len(sections) == 0 {
		sections = []domain.ReportSection{{Title: report.Title}}
	}

	used := make(map[string]int)
	for i, section := range sections {
		sheet := sheetName(section.Title, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if err := writeSection(f, sheet, report, section); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}
	return f, nil
}

func writeSection(f *excelize.File, sheet string, report *domain.Report, section domain.ReportSection) error {
	row := 1
	set := func(col, r int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, r)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	title := report.Title
	if report.Subtitle != "" {
		title += " - " + report.Subtitle
	}
	if err := set(1, row, title); err != nil {
		return err
	}
	row++
	if report.Unit != "" {
		if err := set(1, row, report.Unit); err != nil {
			return err
		}
		row++
	}
	row++

	for _, key := range slices.Sorted(maps.Keys(section.Summary)) {
		if err := set(1, row, key); err != nil {
			return err
		}
		if err := set(2, row, section.Summary[key]); err != nil {
			return err
		}
		row++
	}
	if len(section.Summary) > 0 {
		row++
	}

	headers := append([]string{section.Title}, report.Periods...)
	headers = append(headers, "Beschrijving")
	for i, h := range headers {
		if err := set(i+1, row, h); err != nil {
			return err
		}
	}
	row++

	for _, r := range section.Rows {
		if err := set(1, row, r.Name); err != nil {
			return err
		}
		for i := range report.Periods {
			var v any = domain.MissingValue
			if i < len(r.Values) && r.Values[i].Present {
				v = r.Values[i].Amount
			}
			if err := set(i+2, row, v); err != nil {
				return err
			}
		}
		if err := set(len(report.Periods)+2, row, r.Description); err != nil {
			return err
		}
		row++
	}

	for _, note := range section.Notes {
		row++
		if err := set(1, row, note); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", nameColWidth); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(report.Periods) + 2)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", last, valueColWidth)
}

// sheetName strips characters Excel rejects, caps the length and keeps names unique.
func sheetName(title string, index int, used map[string]int) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]'`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = fmt.Sprintf("Blad%d", index+1)
	}
	name = capRunes(name, maxSheetName)

	used[name]++
	if n := used[name]; n > 1 {
		suffix := fmt.Sprintf(" (%d)", n)
		name = capRunes(name, maxSheetName-len(suffix)) + suffix
	}
	return name
}

func capRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

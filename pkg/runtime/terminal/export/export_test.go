package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/de-tools/invest-atlas/pkg/models/domain"
	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title:    "Geplande investeringen",
		Subtitle: "Per beleidsdomein",
		Unit:     "€ per inwoner",
		Periods:  []string{"2014-2019", "2020-2025"},
		Sections: []domain.ReportSection{
			{
				Title:   "Limburg",
				Summary: map[string]any{"items": 3},
				Rows: []domain.ReportRow{
					{Name: "Cultuur", Values: []domain.Value{domain.Some(60), domain.None()}},
					{Name: "Totaal", Values: []domain.Value{domain.Some(100.5)}},
				},
				Notes: []string{"Bedragen in euro per inwoner."},
			},
			{Title: "Luik: provincie"},
		},
	}
}

func TestReporter_Handle(t *testing.T) {
	// Given
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	// When
	err := reporter.Handle(sampleReport())

	// Then
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Geplande investeringen - Per beleidsdomein")
	assert.Contains(t, out, "=== Limburg ===")
	assert.Contains(t, out, "items: 3")
	assert.Contains(t, out, "2014-2019")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "100.50")
	assert.Contains(t, out, "* Bedragen in euro per inwoner.")

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "| Cultuur") {
			assert.Contains(t, line, " - |", "absent values render as -")
		}
	}
}

func TestReporter_NilReport(t *testing.T) {
	assert.Error(t, NewReporter(&bytes.Buffer{}).Handle(nil))
}

func TestListReporter_Handle(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewListReporter(&buf).Handle(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "- Cultuur")
	assert.Contains(t, out, "2014-2019: 60.00")
	assert.Contains(t, out, "2020-2025: -")
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(sampleReport())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Limburg", "Luik_ provincie"}, f.GetSheetList())

	// Title, unit, blank, one summary line, blank, header.
	header, err := f.GetCellValue("Limburg", "B6")
	require.NoError(t, err)
	assert.Equal(t, "2014-2019", header)

	name, err := f.GetCellValue("Limburg", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Cultuur", name)

	missing, err := f.GetCellValue("Limburg", "C7")
	require.NoError(t, err)
	assert.Equal(t, "-", missing)
}

func TestXLSXWriter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXWriter(&buf).Handle(sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 2)
}

func TestSheetName(t *testing.T) {
	used := make(map[string]int)
	assert.Equal(t, "a_b", sheetName("a/b", 0, used))
	assert.Equal(t, "a_b (2)", sheetName("a:b", 1, used))
	assert.Equal(t, "Blad3", sheetName("  ", 2, used))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40), 3, used)), 31)
}

func sampleChart(stacked bool) dashboard.Chart {
	return dashboard.Chart{
		Title:   "Test",
		Unit:    "€",
		Periods: []string{"2014", "2015"},
		Stacked: stacked,
		Panels: []dashboard.Panel{
			{Title: "Gent", Series: []dashboard.Series{
				{Label: "Cultuur", Kind: dashboard.Nominal, Values: []domain.Value{domain.Some(10), domain.Some(12)}},
				{Label: "Cultuur", Kind: dashboard.Adjusted, Values: []domain.Value{domain.Some(10), domain.Some(11)}},
				{Label: "Sport", Kind: dashboard.Nominal, Values: []domain.Value{domain.Some(5), domain.None()}},
				{Label: "Sport", Kind: dashboard.Adjusted, Values: []domain.Value{domain.Some(5), domain.None()}},
			}},
			{Title: "Aalst", Series: []dashboard.Series{
				{Label: "Aalst", Kind: dashboard.Nominal, Values: []domain.Value{domain.Some(3), domain.Some(4)}},
			}},
		},
	}
}

func TestPlotWriter(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		pw, err := NewPlotWriter(&buf, "PNG")
		require.NoError(t, err)
		require.NoError(t, pw.Write(sampleChart(false)))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})

	t.Run("stacked svg", func(t *testing.T) {
		var buf bytes.Buffer
		pw, err := NewPlotWriter(&buf, ".svg")
		require.NoError(t, err)
		require.NoError(t, pw.Write(sampleChart(true)))
		assert.Contains(t, buf.String(), "<svg")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := NewPlotWriter(&bytes.Buffer{}, "bmp")
		assert.Error(t, err)
	})

	t.Run("empty chart", func(t *testing.T) {
		pw, err := NewPlotWriter(&bytes.Buffer{}, "png")
		require.NoError(t, err)
		assert.Error(t, pw.Write(dashboard.Chart{Title: "leeg"}))
	})
}

func TestSeriesColor(t *testing.T) {
	r, g, b, a := seriesColor("#ff0000", dashboard.Nominal).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xffff), a)

	_, _, _, a = seriesColor("#ff0000", dashboard.Adjusted).RGBA()
	assert.Less(t, a, uint32(0xffff))
}

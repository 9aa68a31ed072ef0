package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/de-tools/invest-atlas/pkg/services/dashboard"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type PlotConfig struct {
	PanelWidth  vg.Length
	PanelHeight vg.Length
	Columns     int
	BarWidth    vg.Length
}

func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		PanelWidth:  6 * vg.Inch,
		PanelHeight: 4 * vg.Inch,
		Columns:     3,
		BarWidth:    vg.Points(12),
	}
}

// PlotWriter draws a chart as a grid of panels in png, svg or pdf.
type PlotWriter struct {
	writer io.Writer
	format string
	config PlotConfig
}

func NewPlotWriter(writer io.Writer, format string) (*PlotWriter, error) {
	format, err := PlotFormat(format)
	if err != nil {
		return nil, err
	}
	return &PlotWriter{writer: writer, format: format, config: DefaultPlotConfig()}, nil
}

// PlotFormat normalises a format name or file extension such as ".SVG".
func PlotFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	switch format {
	case "png", "svg", "pdf":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported plot format %q", format)
	}
}

func (pw *PlotWriter) WithConfig(config PlotConfig) *PlotWriter {
	pw.config = config
	return pw
}

func (pw *PlotWriter) Write(chart dashboard.Chart) error {
	if len(chart.Panels) == 0 {
		return fmt.Errorf("chart %q has no panels to plot", chart.Title)
	}

	cols := max(1, min(pw.config.Columns, len(chart.Panels)))
	rows := (len(chart.Panels) + cols - 1) / cols

	grid := make([][]*plot.Plot, rows)
	for r := range grid {
		grid[r] = make([]*plot.Plot, cols)
	}
	for i, panel := range chart.Panels {
		p, err := PanelPlot(panel, chart.Periods, chart.Stacked, i, pw.config.BarWidth)
		if err != nil {
			return fmt.Errorf("failed to plot panel %s: %w", panel.Title, err)
		}
		p.Y.Label.Text = chart.Unit
		grid[i/cols][i%cols] = p
	}

	c, err := draw.NewFormattedCanvas(
		vg.Length(cols)*pw.config.PanelWidth,
		vg.Length(rows)*pw.config.PanelHeight,
		pw.format,
	)
	if err != nil {
		return fmt.Errorf("failed to create %s canvas: %w", pw.format, err)
	}

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(grid, tiles, draw.New(c))
	for r := range grid {
		for col, p := range grid[r] {
			if p != nil {
				p.Draw(canvases[r][col])
			}
		}
	}

	if _, err := c.WriteTo(pw.writer); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

// PanelPlot draws one panel as grouped bars, or as stacked bars per view when stacked.
func PanelPlot(panel dashboard.Panel, periods []string, stacked bool, index int, barWidth vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Legend.Top = true
	p.NominalX(periods...)
	p.Add(plotter.NewGrid())

	if stacked {
		return p, addStacks(p, panel, barWidth)
	}

	for i, s := range panel.Series {
		bars, err := plotter.NewBarChart(barValues(s, len(periods)), barWidth)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = seriesColor(dashboard.RegionPalette[index%len(dashboard.RegionPalette)], s.Kind)
		bars.Offset = vg.Length(float64(i)-float64(len(panel.Series)-1)/2) * barWidth
		p.Add(bars)
		p.Legend.Add(s.Label, bars)
	}
	return p, nil
}

func addStacks(p *plot.Plot, panel dashboard.Panel, barWidth vg.Length) error {
	kinds := 0
	seen := make(map[dashboard.SeriesKind]bool)
	for _, s := range panel.Series {
		if !seen[s.Kind] {
			seen[s.Kind] = true
			kinds++
		}
	}

	tops := make(map[dashboard.SeriesKind]*plotter.BarChart)
	ranks := make(map[dashboard.SeriesKind]int)
	for _, s := range panel.Series {
		bars, err := plotter.NewBarChart(barValues(s, len(s.Values)), barWidth)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		rank := ranks[s.Kind]
		ranks[s.Kind]++
		bars.Color = seriesColor(dashboard.DomainPalette[rank%len(dashboard.DomainPalette)], s.Kind)
		if kinds > 1 {
			bars.Offset = barWidth / 2
			if s.Kind == dashboard.Nominal {
				bars.Offset = -barWidth / 2
			}
		}
		if top := tops[s.Kind]; top != nil {
			bars.StackOn(top)
		}
		tops[s.Kind] = bars
		p.Add(bars)
		if s.Kind == dashboard.Nominal || kinds == 1 {
			p.Legend.Add(s.Label, bars)
		}
	}
	return nil
}

func barValues(s dashboard.Series, n int) plotter.Values {
	values := make(plotter.Values, n)
	for i := range values {
		if i < len(s.Values) && s.Values[i].Present && !math.IsNaN(s.Values[i].Amount) && !math.IsInf(s.Values[i].Amount, 0) {
			values[i] = s.Values[i].Amount
		}
	}
	return values
}

// seriesColor parses a #rrggbb colour; adjusted series get a lighter tint.
func seriesColor(hex string, kind dashboard.SeriesKind) color.Color {
	var c color.NRGBA
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.Black
	}
	c.A = 0xff
	if kind == dashboard.Adjusted {
		c.A = 0x99
	}
	return c
}

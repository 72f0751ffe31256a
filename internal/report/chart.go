package report

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/amishk599/skillradar/internal/tagger"
)

// ErrNoCounts is returned by RenderChart when there is nothing to plot.
var ErrNoCounts = errors.New("no skill counts to chart")

// ChartOptions controls chart labels and size. Zero fields take the defaults.
type ChartOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// DefaultChartOptions returns the labels and 12x10 inch size used when
// rendering the skill demand chart.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  "Most In-Demand Skills for Python Jobs",
		XLabel: "Number of Job Postings Mentioning Skill",
		YLabel: "Technical Skill",
		Width:  12 * vg.Inch,
		Height: 10 * vg.Inch,
	}
}

func (o ChartOptions) withDefaults() ChartOptions {
	d := DefaultChartOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.XLabel == "" {
		o.XLabel = d.XLabel
	}
	if o.YLabel == "" {
		o.YLabel = d.YLabel
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

var barColor = color.RGBA{R: 33, G: 145, B: 140, A: 255}

// RenderChart draws counts as a horizontal bar chart and saves it to path.
// The first count is drawn at the top. The image format follows the file
// extension (png, svg, pdf, ...).
func RenderChart(path string, counts []tagger.SkillCount, opts ChartOptions) error {
	if len(counts) == 0 {
		return ErrNoCounts
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.X.Label.Text = opts.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = opts.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)
	p.X.Tick.Label.Font.Size = vg.Points(12)
	p.Y.Tick.Label.Font.Size = vg.Points(12)
	p.X.Min = 0

	// Bars are laid out bottom-up, so reverse to keep the highest count on top.
	n := len(counts)
	values := make(plotter.Values, n)
	names := make([]string, n)
	for i, c := range counts {
		values[n-1-i] = float64(c.Count)
		names[n-1-i] = c.Skill
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p.Add(bars, plotter.NewGrid())
	p.NominalY(names...)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating chart directory: %w", err)
		}
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}

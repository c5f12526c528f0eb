package reports

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/linesmerrill/avenue-police-api/models"
)

var chartBlue = color.RGBA{R: 37, G: 99, B: 235, A: 255}

// WriteTopStatutesChart renders the statute leaderboard as a PNG bar chart.
func WriteTopStatutesChart(w io.Writer, entries []models.StatuteCount, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = "Most charged statutes"
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = "Arrests"
	p.BackgroundColor = color.White

	if len(entries) > 0 {
		values := make(plotter.Values, len(entries))
		names := make([]string, len(entries))
		for i, e := range entries {
			values[i] = float64(e.Count)
			names[i] = e.Article
		}

		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return fmt.Errorf("failed to build bar chart: %w", err)
		}
		bars.Color = chartBlue
		bars.LineStyle.Width = 0

		p.Add(bars, plotter.NewGrid())
		p.NominalX(names...)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
		p.Y.Min = 0
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

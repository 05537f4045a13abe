// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoHistory indicates a chart was requested for an empty residual history.
var ErrNoHistory = errors.New("report: empty residual history")

// Chart dimensions.
const (
	ChartWidth  = 6 * vg.Inch
	ChartHeight = 4 * vg.Inch
)

// ConvergencePlot builds a log-scale chart of the residual norm per iteration.
func ConvergencePlot(title string, history []float64) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, ErrNoHistory
	}
	// Exact zeros sit one decade below the smallest positive norm on the log axis.
	floor := 1.0
	for _, v := range history {
		if v > 0 && v < floor {
			floor = v
		}
	}
	floor /= 10

	pts := make(plotter.XYs, len(history))
	for i, v := range history {
		pts[i].X = float64(i)
		pts[i].Y = math.Max(v, floor)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "|R| (inf-norm)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("convergence plot: %w", err)
	}
	p.Add(plotter.NewGrid(), line, points)

	return p, nil
}

// SaveConvergence writes the convergence chart to path; the extension picks
// the format (png, svg, pdf, ...).
func SaveConvergence(path, title string, history []float64) error {
	p, err := ConvergencePlot(title, history)
	if err != nil {
		return err
	}

	return p.Save(ChartWidth, ChartHeight, path)
}

// WriteConvergence renders the chart in the given format to w.
func WriteConvergence(w io.Writer, format, title string, history []float64) error {
	p, err := ConvergencePlot(title, history)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ChartWidth, ChartHeight, format)
	if err != nil {
		return fmt.Errorf("convergence plot: %w", err)
	}
	_, err = wt.WriteTo(w)

	return err
}

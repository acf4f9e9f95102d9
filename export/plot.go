package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotSpectrum renders a spectrum as a PNG line plot. xLabel names the axis
// unit, typically "Pixel" before calibration or "Wavenumber (cm⁻¹)" after.
func PlotSpectrum(path, title, xLabel string, x, y []float64) error {
	if len(x) != len(y) {
		return ErrLengthMismatch
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Intensity"

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	p.Add(line, plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}

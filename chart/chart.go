package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-nmr/analysis"
)

// File names written by Render.
const (
	EchoesFile = "se_curves.png"
	MaximaFile = "se_maxima.png"
	ModelFile  = "fid_model.png"
	BuiltFile  = "fid_built.png"
)

var (
	red     = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	magenta = color.RGBA{R: 200, G: 0, B: 200, A: 255}
	blue    = color.RGBA{R: 20, G: 60, B: 220, A: 255}
	cyan    = color.RGBA{R: 0, G: 190, B: 210, A: 255}
	dashed  = []vg.Length{vg.Points(6), vg.Points(3)}
)

// Size of every rendered figure.
var (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

// Render writes the four figures of r into dir and returns their paths.
func Render(r analysis.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	figures := []struct {
		name  string
		build func(analysis.Report) (*plot.Plot, error)
	}{
		{EchoesFile, Echoes},
		{MaximaFile, Maxima},
		{ModelFile, Model},
		{BuiltFile, Built},
	}
	paths := make([]string, 0, len(figures))
	for _, f := range figures {
		p, err := f.build(r)
		if err != nil {
			return paths, fmt.Errorf("chart: %s: %w", f.name, err)
		}
		path := filepath.Join(dir, f.name)
		if err := p.Save(Width, Height, path); err != nil {
			return paths, fmt.Errorf("chart: %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Echoes plots every baseline-subtracted solid echo and the FID.
func Echoes(r analysis.Report) (*plot.Plot, error) {
	p := newPlot("Solid echo", "Time, μs", "Amplitude")
	for i, d := range r.Echo.Curves {
		l, err := line(d.Time, d.Amp, plotutil.Color(i))
		if err != nil {
			return nil, err
		}
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("%d μs", d.EchoTime), l)
	}
	fid, err := line(r.FIDCurve.Time, r.FIDCurve.Amp, red)
	if err != nil {
		return nil, err
	}
	p.Add(fid)
	p.Legend.Add("FID", fid)
	return p, nil
}

// Maxima plots the echo maxima, their Gaussian fit and the value
// extrapolated to echo time 0.
func Maxima(r analysis.Report) (*plot.Plot, error) {
	p := newPlot("Max amplitudes of solid echo", "Echo time, μs", "Amplitude max")
	pts, err := scatter(r.Echo.EchoTimes, r.Echo.Maxima, blue)
	if err != nil {
		return nil, err
	}
	extra, err := scatter([]float64{0}, []float64{r.Extrapolation}, red)
	if err != nil {
		return nil, err
	}
	fit, err := line(r.SEFitTrace.Time, r.SEFitTrace.Amp, red)
	if err != nil {
		return nil, err
	}
	fit.Dashes = dashed
	p.Add(fit, pts, extra)
	p.Legend.Add("Max SE amplitude", pts)
	p.Legend.Add("Extrapolated to t=0", extra)
	p.Legend.Add("Gaussian fit", fit)
	return p, nil
}

// Model plots the fixed-amplitude FID model against the measured FID with
// every crossing marked.
func Model(r analysis.Report) (*plot.Plot, error) {
	p := newPlot("FID model", "Time, μs", "Amplitude")
	model, err := line(r.Model.Time, r.Model.Amp, red)
	if err != nil {
		return nil, err
	}
	fid, err := line(r.FIDCurve.Time, r.FIDCurve.Amp, magenta)
	if err != nil {
		return nil, err
	}
	norm, err := line(r.Normalized.Time, r.Normalized.Amp, cyan)
	if err != nil {
		return nil, err
	}
	norm.Dashes = dashed
	p.Add(model, fid, norm)
	p.Legend.Add("FID built", model)
	p.Legend.Add("Original", fid)
	p.Legend.Add("Normalized fit", norm)

	xs := make([]float64, len(r.Built.Intersections))
	ys := make([]float64, len(r.Built.Intersections))
	for i, x := range r.Built.Intersections {
		xs[i], ys[i] = x.Time, x.Amp
	}
	if len(xs) > 0 {
		cross, err := scatter(xs, ys, blue)
		if err != nil {
			return nil, err
		}
		p.Add(cross)
		p.Legend.Add("Intersections", cross)
	}
	return p, nil
}

// Built plots the built-up FID against the original FID, the water curve
// and the water display window.
func Built(r analysis.Report) (*plot.Plot, error) {
	p := newPlot("FID built", "Time, μs", "Amplitude")
	built, err := line(r.Built.Time, r.Built.Amp, red)
	if err != nil {
		return nil, err
	}
	fid, err := line(r.FIDCurve.Time, r.FIDCurve.Amp, magenta)
	if err != nil {
		return nil, err
	}
	fid.Dashes = dashed
	water, err := line(r.WaterCurve.Time, r.WaterCurve.Amp, blue)
	if err != nil {
		return nil, err
	}
	p.Add(built, fid, water)
	p.Legend.Add("FID built", built)
	p.Legend.Add("Original", fid)
	p.Legend.Add("FID water", water)

	if len(r.WaterWindow.Time) > 0 {
		win, err := line(r.WaterWindow.Time, r.WaterWindow.Amp, cyan)
		if err != nil {
			return nil, err
		}
		win.Dashes = dashed
		win.Width = vg.Points(2)
		p.Add(win)
		p.Legend.Add("Mean", win)
	}
	return p, nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func xys(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("length mismatch: x=%d y=%d", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return pts, nil
}

func line(x, y []float64, c color.Color) (*plotter.Line, error) {
	pts, err := xys(x, y)
	if err != nil {
		return nil, err
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = vg.Points(1.5)
	return l, nil
}

func scatter(x, y []float64, c color.Color) (*plotter.Scatter, error) {
	pts, err := xys(x, y)
	if err != nil {
		return nil, err
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(4)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	return s, nil
}

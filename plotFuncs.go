package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"gonum.org/v1/plot"

	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bob-anderson-ok/RingOccDiffraction/ringocc"
)

func makeLightcurvePlotImage(points []ringocc.Point, wPx, hPx float64, e RingOccEvent) (image.Image, error) {

	p := plot.New()

	p.Y.Min = -0.2
	p.Y.Max = 1.5

	// Modify the font fields directly on existing styles
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	timeSpan := points[len(points)-1].TimeSec - points[0].TimeSec
	fmt.Printf("Time span is %0.3f seconds\n", timeSpan)

	p.Title.Text = "Ring occultation lightcurve"
	p.X.Label.Text = fmt.Sprintf("time from mid-ring (s) at %0.3f km/second event velocity", e.EventVelocityKmPerSec)
	p.Y.Label.Text = "normalized stellar flux"
	p.X.Tick.Marker = StepTicks{Step: timeSpan / 20, Format: "%.2f"}

	p.Y.Tick.Marker = StepTicks{Step: 0.2, Format: "%.2f"}
	p.Add(plotter.NewGrid()) // grid + ticks

	// Data
	n := len(points)
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = points[i].TimeSec
		pts[i].Y = points[i].Flux
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255} // blue

	p.Add(line)

	// Mark the geometric edges of the ring with red dashed verticals
	edgeTime := e.RingWidthKm / 2.0 / e.EventVelocityKmPerSec
	for _, edge := range []float64{-edgeTime, edgeTime} {
		vpts := plotter.XYs{
			{X: edge, Y: -0.1},
			{X: edge, Y: 1.3},
		}

		vline, err := plotter.NewLine(vpts)
		if err != nil {
			return nil, err
		}

		p.Add(vline)

		vline.Dashes = []vg.Length{
			vg.Points(6), // dash length
			vg.Points(4), // gap length
		}
		vline.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255} // red
	}

	hpts := plotter.XYs{
		{X: points[0].TimeSec, Y: 0.0},
		{X: points[n-1].TimeSec, Y: 0.0},
	}

	hline, err := plotter.NewLine(hpts)
	if err != nil {
		return nil, err
	}

	p.Add(hline)

	hline.Dashes = []vg.Length{
		vg.Points(6), // dash length
		vg.Points(4), // gap length
	}
	hline.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255} // black

	// Render into an in-memory image
	// Choose a "virtual" size in vg units and map to pixels via DPI.
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := draw.New(c)
	p.Draw(dc)

	return c.Image(), nil
}

func saveImagePNG(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

func MakeProfilePlot(offsetsKm, taus []float64, filename string) {
	p := plot.New()

	// Modify the font fields directly on existing styles
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Title.Text = "Radial ring profile"
	p.X.Label.Text = "Radial ring position from midpoint (km)"
	p.Y.Label.Text = "Optical depth"

	maxTau := 0.0
	for _, tau := range taus {
		maxTau = math.Max(maxTau, tau)
	}
	p.Y.Min = 0.0
	p.Y.Max = maxTau*1.1 + 0.01

	// Data
	n := len(offsetsKm)
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = offsetsKm[i]
		pts[i].Y = taus[i]
	}

	linePoints, scatterPoints, err := plotter.NewLinePoints(pts)
	if err != nil {
		log.Fatal(err)
	}
	linePoints.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	linePoints.Width = vg.Points(1)

	scatterPoints.Shape = draw.CircleGlyph{}
	scatterPoints.Radius = vg.Points(2)
	scatterPoints.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}

	p.Add(linePoints, scatterPoints)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		log.Fatal(err)
	}
}

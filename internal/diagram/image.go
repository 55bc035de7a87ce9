package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/section"
)

var (
	curveColor    = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	fillColor     = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	centroidColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	zeroColor     = color.Gray{Y: 128}
)

// PlotGroups are the figures written by the plot command, one file each.
var PlotGroups = map[string][]beam.Kind{
	"bending": {beam.Shear, beam.Moment},
	"axial":   {beam.Axial},
	"torque":  {beam.Torque},
	"sigma":   {beam.NormalStress},
	"tau":     {beam.ShearStress},
}

// newCanvas picks a vector or raster canvas from the file extension.
func newCanvas(filename string, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return vgimg.PngCanvas{Canvas: vgimg.New(w, h)}, nil
	case ".jpg", ".jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.New(w, h)}, nil
	case ".svg":
		return vgsvg.New(w, h), nil
	case ".pdf":
		return vgpdf.New(w, h), nil
	}
	return nil, fmt.Errorf("unsupported image format %q (use .png, .jpg, .svg or .pdf)", filepath.Ext(filename))
}

func writeCanvas(c vg.CanvasWriterTo, filename string) error {
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// distributionPlot draws one sampled distribution with its zero line and the
// extreme value labelled.
func distributionPlot(sol *beam.Solution, k beam.Kind, samples int, fraction float64) (*plot.Plot, error) {
	xs, ys, err := sol.Sample(k, samples, fraction)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = k.Title()
	p.X.Label.Text = "x"
	p.Y.Label.Text = k.String()
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	peak := 0
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
		if abs(ys[i]) > abs(ys[peak]) {
			peak = i
		}
	}

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: sol.Length(), Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Color = zeroColor
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = curveColor
	p.Add(line)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{pts[peak]},
		Labels: []string{fmt.Sprintf("%.4g at x=%.3g", ys[peak], xs[peak])},
	})
	if err != nil {
		return nil, err
	}
	p.Add(lbl)

	return p, nil
}

// ExportDistributions writes the given distributions stacked in one figure.
// The format follows the file extension.
func ExportDistributions(sol *beam.Solution, kinds []beam.Kind, samples int, fraction float64, filename string) error {
	if len(kinds) == 0 {
		return fmt.Errorf("no distributions to plot")
	}

	plots := make([][]*plot.Plot, len(kinds))
	for i, k := range kinds {
		p, err := distributionPlot(sol, k, samples, fraction)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}

	width := 8 * vg.Inch
	height := vg.Length(len(kinds)) * 3 * vg.Inch
	c, err := newCanvas(filename, width, height)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows: len(kinds),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 4 * vg.Millimeter,

		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  4 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	return writeCanvas(c, filename)
}

// ExportSectionDiagram draws the section outline with its centroidal axis.
func ExportSectionDiagram(sec section.ISection, props *section.Properties, filename string) error {
	p := plot.New()
	p.Title.Text = "I-Section"
	p.X.Label.Text = "z"
	p.Y.Label.Text = "y"

	halfF, halfW := sec.FlangeWidth/2, sec.WebThickness/2
	top := sec.WebHeight + sec.FlangeThickness/2
	under := sec.WebHeight - sec.FlangeThickness/2
	// counter-clockwise from the bottom left of the web
	outline := plotter.XYs{
		{X: -halfW, Y: 0},
		{X: halfW, Y: 0},
		{X: halfW, Y: under},
		{X: halfF, Y: under},
		{X: halfF, Y: top},
		{X: -halfF, Y: top},
		{X: -halfF, Y: under},
		{X: -halfW, Y: under},
	}
	poly, err := plotter.NewPolygon(outline)
	if err != nil {
		return err
	}
	poly.Color = fillColor
	poly.LineStyle.Color = curveColor
	p.Add(poly)

	axis, err := plotter.NewLine(plotter.XYs{
		{X: -halfF * 1.2, Y: props.CentroidY},
		{X: halfF * 1.2, Y: props.CentroidY},
	})
	if err != nil {
		return err
	}
	axis.LineStyle.Width = vg.Points(1.5)
	axis.LineStyle.Color = centroidColor
	axis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(axis)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: halfF * 1.2, Y: props.CentroidY}},
		Labels: []string{fmt.Sprintf("y_cm=%.4g", props.CentroidY)},
	})
	if err != nil {
		return err
	}
	p.Add(lbl)

	c, err := newCanvas(filename, 6*vg.Inch, 6*vg.Inch)
	if err != nil {
		return err
	}
	p.Draw(draw.New(c))
	return writeCanvas(c, filename)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

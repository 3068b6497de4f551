package bindcurve

import (
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// ShowPlot finalizes the accumulated plot and writes any configured PNG and
// SVG outputs. Rendering is deterministic for identical curves and options.
func (bc *BindingCurve) ShowPlot(option ...PlotOption) (err error) {
	opts := plotOptionNew(option...)

	p, err := bc.renderCurves(bc.curves, opts)
	if err != nil {
		return
	}

	if opts.pngFile != "" {
		err = writePNG(p, opts.pngFile, opts.style)
		if err != nil {
			return
		}
	}

	if opts.svgFile != "" {
		err = writeSVG(p, opts.svgFile, opts.style)
		if err != nil {
			return
		}
	}

	return
}

// RenderPlot builds the gonum plot without writing it anywhere.
func (bc *BindingCurve) RenderPlot(option ...PlotOption) (*plot.Plot, error) {
	return bc.renderCurves(bc.curves, plotOptionNew(option...))
}

func (bc *BindingCurve) renderCurves(curves []*Curve, opts *PlotOptions) (p *plot.Plot, err error) {
	style := opts.style

	p = plot.New()

	p.Title.Text = opts.title
	p.Title.TextStyle.Font.Size = vg.Points(style.TitleSize)

	p.X.Label.Text = opts.xLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = "[" + strings.ToUpper(bc.lastChangingParameter) + "]"
	}

	p.Y.Label.Text = opts.yLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = "[" + strings.ToUpper(bc.lastReadout) + "]"
	}

	p.X.Label.TextStyle.Font.Size = vg.Points(style.AxisLabelSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(style.AxisLabelSize)
	p.X.Tick.Label.Font.Size = vg.Points(style.XTickLabelSize)
	p.Y.Tick.Label.Font.Size = vg.Points(style.YTickLabelSize)
	p.Legend.TextStyle.Font.Size = vg.Points(style.LegendFontSize)

	p.Add(plotter.NewGrid())

	for idx, c := range curves {
		var line *plotter.Line

		line, err = plotter.NewLine(curveXYs(c.X, c.Y, opts))
		if err != nil {
			return
		}

		line.LineStyle.Width = vg.Points(style.LineWidth)
		line.LineStyle.Color = plotutil.Color(idx)

		p.Add(line)

		if !opts.hideLegend {
			p.Legend.Add(c.Name, line)
		}
	}

	for idx, s := range bc.scatter {
		var sc *plotter.Scatter

		sc, err = plotter.NewScatter(curveXYs(s.X, s.Y, opts))
		if err != nil {
			return
		}

		sc.GlyphStyle.Color = plotutil.Color(len(curves) + idx)

		p.Add(sc)
	}

	bc.applyBounds(p, opts)

	return
}

// applyBounds sets axis limits from the running accumulated bounds, caller
// overrides winning. Y max gets 10% headroom unless given explicitly. On a
// logarithmic axis non-positive limits are clipped to the smallest positive
// value on that axis.
func (bc *BindingCurve) applyBounds(p *plot.Plot, opts *PlotOptions) {
	minX, maxX := bc.minX, bc.maxX
	minY, maxY := bc.minY, bc.maxY

	// A scatter-only plot never extended the X bounds.
	if minX == maxX {
		for _, s := range bc.scatter {
			for _, x := range s.X {
				minX = nanMin(minX, x)
				maxX = nanMax(maxX, x)
			}
		}
	}

	if opts.minX != nil {
		minX = *opts.minX
	}

	if opts.maxX != nil {
		maxX = *opts.maxX
	}

	if opts.minY != nil {
		minY = *opts.minY
	}

	if opts.maxY != nil {
		maxY = *opts.maxY
	} else {
		maxY *= 1.1
	}

	if opts.logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}

		minX = clipPositive(minX, bc.smallestPositiveX(), maxX)
	}

	if opts.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

		minY = clipPositive(minY, bc.smallestPositiveY(), maxY)
	}

	if maxX > minX {
		p.X.Min = minX
		p.X.Max = maxX
	}

	if maxY > minY {
		p.Y.Min = minY
		p.Y.Max = maxY
	}
}

// curveXYs pairs up coordinates, dropping points a logarithmic axis cannot
// represent.
func curveXYs(xs, ys []float64, opts *PlotOptions) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}

	pts := make(plotter.XYs, 0, n)

	for i := 0; i < n; i++ {
		if opts.logX && xs[i] <= 0 {
			continue
		}

		if opts.logY && ys[i] <= 0 {
			continue
		}

		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}

	return pts
}

func clipPositive(v, fallback, limit float64) float64 {
	if v > 0 {
		return v
	}

	if fallback > 0 {
		return fallback
	}

	if limit > 0 {
		return limit / 1000
	}

	return 1e-9
}

func (bc *BindingCurve) smallestPositiveX() float64 {
	smallest := 0.0

	visit := func(x float64) {
		if x > 0 && (smallest == 0 || x < smallest) {
			smallest = x
		}
	}

	for _, c := range bc.curves {
		for _, x := range c.X {
			visit(x)
		}
	}

	for _, s := range bc.scatter {
		for _, x := range s.X {
			visit(x)
		}
	}

	return smallest
}

func (bc *BindingCurve) smallestPositiveY() float64 {
	smallest := 0.0

	visit := func(y float64) {
		if y > 0 && (smallest == 0 || y < smallest) {
			smallest = y
		}
	}

	for _, c := range bc.curves {
		for _, y := range c.Y {
			visit(y)
		}
	}

	for _, s := range bc.scatter {
		for _, y := range s.Y {
			visit(y)
		}
	}

	return smallest
}

func writePNG(p *plot.Plot, fileName string, style PlotStyle) (err error) {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(style.FigureWidth)*vg.Inch, vg.Length(style.FigureHeight)*vg.Inch),
		vgimg.UseDPI(style.DPI))

	p.Draw(draw.New(c))

	f, err := os.Create(fileName)
	if err != nil {
		return
	}

	defer func() {
		_ = f.Close()
	}()

	png := vgimg.PngCanvas{Canvas: c}

	_, err = png.WriteTo(f)

	return
}

func writeSVG(p *plot.Plot, fileName string, style PlotStyle) (err error) {
	c := vgsvg.New(vg.Length(style.FigureWidth)*vg.Inch, vg.Length(style.FigureHeight)*vg.Inch)

	p.Draw(draw.New(c))

	f, err := os.Create(fileName)
	if err != nil {
		return
	}

	defer func() {
		_ = f.Close()
	}()

	_, err = c.WriteTo(f)

	return
}

package bindcurve

// PlotStyle carries the rendering configuration for one render call.
// There is no shared mutable default; take DefaultPlotStyle and adjust.
type PlotStyle struct {
	AxisLabelSize  float64 `yaml:"axisLabelSize"`
	TitleSize      float64 `yaml:"titleSize"`
	XTickLabelSize float64 `yaml:"xTickLabelSize"`
	YTickLabelSize float64 `yaml:"yTickLabelSize"`
	LegendFontSize float64 `yaml:"legendFontSize"`
	LineWidth      float64 `yaml:"lineWidth"`

	FigureWidth  float64 `yaml:"figureWidth"`  // inches
	FigureHeight float64 `yaml:"figureHeight"` // inches
	DPI          int     `yaml:"dpi"`
}

func DefaultPlotStyle() PlotStyle {
	return PlotStyle{
		AxisLabelSize:  12,
		TitleSize:      12,
		XTickLabelSize: 10,
		YTickLabelSize: 10,
		LegendFontSize: 9,
		LineWidth:      2,
		FigureWidth:    6,
		FigureHeight:   4.8,
		DPI:            300,
	}
}

type PlotOptions struct {
	title  string
	xLabel string
	yLabel string

	minX, maxX *float64
	minY, maxY *float64

	logX, logY bool

	style PlotStyle

	pngFile string
	svgFile string

	hideLegend bool
}

type PlotOption func(o *PlotOptions)

func plotOptionNew(option ...PlotOption) *PlotOptions {
	opts := &PlotOptions{
		title: "System simulation",
		style: DefaultPlotStyle(),
	}

	for _, o := range option {
		o(opts)
	}

	return opts
}

func TitleOption(title string) PlotOption {
	return func(o *PlotOptions) {
		o.title = title
	}
}

func XLabelOption(label string) PlotOption {
	return func(o *PlotOptions) {
		o.xLabel = label
	}
}

func YLabelOption(label string) PlotOption {
	return func(o *PlotOptions) {
		o.yLabel = label
	}
}

func MinXOption(v float64) PlotOption {
	return func(o *PlotOptions) {
		o.minX = &v
	}
}

func MaxXOption(v float64) PlotOption {
	return func(o *PlotOptions) {
		o.maxX = &v
	}
}

func MinYOption(v float64) PlotOption {
	return func(o *PlotOptions) {
		o.minY = &v
	}
}

func MaxYOption(v float64) PlotOption {
	return func(o *PlotOptions) {
		o.maxY = &v
	}
}

func LogXAxisOption() PlotOption {
	return func(o *PlotOptions) {
		o.logX = true
	}
}

func LogYAxisOption() PlotOption {
	return func(o *PlotOptions) {
		o.logY = true
	}
}

func StyleOption(style PlotStyle) PlotOption {
	return func(o *PlotOptions) {
		o.style = style
	}
}

func PNGFileOption(fileName string) PlotOption {
	return func(o *PlotOptions) {
		o.pngFile = fileName
	}
}

func SVGFileOption(fileName string) PlotOption {
	return func(o *PlotOptions) {
		o.svgFile = fileName
	}
}

func HideLegendOption() PlotOption {
	return func(o *PlotOptions) {
		o.hideLegend = true
	}
}

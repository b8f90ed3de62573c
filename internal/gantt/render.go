package gantt

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// Fixed chart geometry, in pixels.
const (
	chartWidth   = 1000
	rowHeight    = 28
	barPadding   = 5
	marginLeft   = 150
	marginRight  = 180 // leaves room for the legend
	marginTop    = 60
	marginBottom = 55
)

var pageTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body { margin: 0; } img { width: 100%; height: auto; }</style>
</head>
<body>
<img alt="{{.Title}}" {{.Src}}/>
</body>
</html>
`))

// Render writes the chart as a self-contained HTML page embedding the
// drawn SVG as a base64 data URI. The src attribute is assembled outside
// the template so the auto-escaper leaves the URI's "+" characters alone
// (base64 only emits attribute-safe characters).
func Render(c *Chart, w io.Writer) error {
	var buf bytes.Buffer
	if err := RenderSVG(c, &buf); err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return pageTemplate.Execute(w, struct {
		Title string
		Src   template.HTMLAttr
	}{
		Title: c.Title,
		Src:   template.HTMLAttr(`src="data:image/svg+xml;base64,` + encoded + `"`),
	})
}

// RenderSVG draws the chart as an SVG document: one row per axis
// category (top to bottom in bar order), one bar per interval, vertical
// marker lines for the chart's shapes, gridlines and a resource legend.
func RenderSVG(c *Chart, w io.Writer) error {
	rows := rowLabels(c.Bars)
	if len(rows) == 0 {
		return fmt.Errorf("chart %q has no data", c.Title)
	}
	rowIndex := make(map[string]int, len(rows))
	for i, label := range rows {
		rowIndex[label] = i
	}

	plotWidth := chartWidth - marginLeft - marginRight
	plotHeight := rowHeight * len(rows)
	height := marginTop + plotHeight + marginBottom
	xmax := xExtent(c)
	scaleX := func(x float64) int {
		return marginLeft + int(math.Round(x/xmax*float64(plotWidth)))
	}

	canvas := svg.New(w)
	canvas.Start(chartWidth, height)
	canvas.Rect(0, 0, chartWidth, height, "fill:white")
	canvas.Text(chartWidth/2, marginTop/2, c.Title,
		"text-anchor:middle;font-size:16px;font-family:sans-serif")

	// Row stripes, gridlines and category labels
	for i, label := range rows {
		y := marginTop + i*rowHeight
		if i%2 == 1 {
			canvas.Rect(marginLeft, y, plotWidth, rowHeight, "fill:rgb(245,245,245)")
		}
		canvas.Line(marginLeft, y, marginLeft+plotWidth, y,
			"stroke:rgb(220,220,220);stroke-width:1")
		canvas.Text(marginLeft-8, y+rowHeight/2+4, label,
			"text-anchor:end;font-size:12px;font-family:sans-serif")
	}
	canvas.Line(marginLeft, marginTop+plotHeight, marginLeft+plotWidth, marginTop+plotHeight,
		"stroke:rgb(120,120,120);stroke-width:1")

	// X ticks: plain measure numbers, never dates
	step := tickStep(xmax)
	for x := 0.0; x <= xmax; x += step {
		px := scaleX(x)
		canvas.Line(px, marginTop, px, marginTop+plotHeight,
			"stroke:rgb(230,230,230);stroke-width:1")
		canvas.Text(px, marginTop+plotHeight+18, fmt.Sprintf("%g", x),
			"text-anchor:middle;font-size:11px;font-family:sans-serif")
	}
	canvas.Text(marginLeft+plotWidth/2, height-12, c.XTitle,
		"text-anchor:middle;font-size:13px;font-family:sans-serif")
	canvas.TranslateRotate(18, marginTop+plotHeight/2, -90)
	canvas.Text(0, 0, c.YTitle, "text-anchor:middle;font-size:13px;font-family:sans-serif")
	canvas.Gend()

	// Bars; zero-length placeholders only reserve their row
	for _, bar := range c.Bars {
		if bar.Finish <= bar.Start {
			continue
		}
		y := marginTop + rowIndex[bar.Label]*rowHeight + barPadding
		x0, x1 := scaleX(bar.Start), scaleX(bar.Finish)
		width := x1 - x0
		if width < 1 {
			width = 1
		}
		canvas.Rect(x0, y, width, rowHeight-2*barPadding,
			fmt.Sprintf("fill:%s", color(c, bar.Resource)))
	}

	// Marker lines (phrase boundaries and caller-added shapes)
	for _, shape := range c.Shapes {
		px := scaleX(shape.X0)
		canvas.Line(px, marginTop, px, marginTop+plotHeight, lineStyle(shape.Line))
	}

	drawLegend(canvas, c, marginLeft+plotWidth+16)
	canvas.End()
	return nil
}

// rowLabels lists the distinct bar labels in bar order (already sorted
// descending by the chart builder).
func rowLabels(bars []Bar) []string {
	seen := make(map[string]bool)
	var out []string
	for _, bar := range bars {
		if !seen[bar.Label] {
			seen[bar.Label] = true
			out = append(out, bar.Label)
		}
	}
	return out
}

// xExtent returns the rightmost position of bars and shapes, with a
// sane minimum so empty plans still draw a frame.
func xExtent(c *Chart) float64 {
	max := 1.0
	for _, bar := range c.Bars {
		if bar.Finish > max {
			max = bar.Finish
		}
	}
	for _, shape := range c.Shapes {
		if shape.X0 > max {
			max = shape.X0
		}
	}
	return max
}

// tickStep picks an x-axis tick interval giving roughly ten ticks.
func tickStep(xmax float64) float64 {
	raw := xmax / 10
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*magnitude {
			return m * magnitude
		}
	}
	return 10 * magnitude
}

func color(c *Chart, resource string) string {
	if col, ok := c.Colors[resource]; ok {
		return col
	}
	return "rgb(128,128,128)"
}

// lineStyle translates a LineStyle into SVG stroke attributes. Dash
// patterns follow the plotting convention names.
func lineStyle(style LineStyle) string {
	s := fmt.Sprintf("stroke:%s;stroke-width:%g", style.Color, style.Width)
	switch style.Dash {
	case "longdash":
		s += ";stroke-dasharray:14,7"
	case "dash":
		s += ";stroke-dasharray:7,4"
	case "dot":
		s += ";stroke-dasharray:2,3"
	}
	return s
}

// drawLegend renders one swatch per resource that has a configured color
// and at least one bar.
func drawLegend(canvas *svg.SVG, c *Chart, x int) {
	present := make(map[string]bool)
	var order []string
	for _, bar := range c.Bars {
		if !present[bar.Resource] {
			present[bar.Resource] = true
			order = append(order, bar.Resource)
		}
	}
	y := marginTop
	for _, resource := range order {
		canvas.Rect(x, y, 12, 12, fmt.Sprintf("fill:%s", color(c, resource)))
		canvas.Text(x+18, y+10, resource, "font-size:11px;font-family:sans-serif")
		y += 20
	}
}

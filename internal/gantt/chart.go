package gantt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/franz/corpus-pages/internal/pitch"
)

// Axis selects the y-axis representation of tonicized keys.
type Axis string

const (
	AxisSemitones Axis = "semitones"
	AxisFifths    Axis = "fifths"
	AxisNumeral   Axis = "numeral"
)

// ParseAxis validates an axis name from the command line.
func ParseAxis(name string) (Axis, error) {
	switch Axis(name) {
	case AxisSemitones, AxisFifths, AxisNumeral:
		return Axis(name), nil
	}
	return "", fmt.Errorf("invalid y-axis %q (want semitones, fifths or numeral)", name)
}

// Numeric reports whether the axis is a numeric pitch-class scale.
func (a Axis) Numeric() bool {
	return a == AxisSemitones || a == AxisFifths
}

// yAxisTitle is the base y-axis label of modulation plans.
const yAxisTitle = "Tonicized keys"

// LineStyle describes how a shape line is drawn.
type LineStyle struct {
	Color string
	Width float64
	Dash  string
}

// PhraseEndLine is the fixed style of phrase-boundary markers.
var PhraseEndLine = LineStyle{Color: "rgb(0, 0, 0)", Width: 0.2, Dash: "longdash"}

// Shape is a vertical marker line on the chart. The Shapes slice of a
// chart stays open for callers to append further shapes before rendering.
type Shape struct {
	X0, Y0, X1, Y1 float64
	Line           LineStyle
}

// Bar is one rendered interval: an axis category label plus its span.
// Zero-length bars exist only to keep their axis row visible.
type Bar struct {
	Start, Finish float64
	Label         string
	Resource      string
	Description   string
	value         int
}

// Chart is a complete modulation-plan chart description. Rendering is
// separate; callers may still mutate Shapes (and Bars) before that.
type Chart struct {
	Title          string
	Axis           Axis
	Bars           []Bar
	Colors         map[string]string
	Shapes         []Shape
	XTitle, YTitle string
}

// Options configures ModulationPlan.
type Options struct {
	Title string
	Axis  Axis
	// GlobalKey, when set, transposes tonal axes so that labels show
	// absolute key names, and is appended to the title.
	GlobalKey string
	// PhraseEnds are measure positions drawn as vertical dashed lines.
	PhraseEnds []float64
	// Colors overrides DefaultColors when non-nil.
	Colors map[string]string
	// SortAndFill sorts the axis descending and, on numeric axes,
	// synthesizes zero-length bars so the axis has no gaps.
	SortAndFill bool
}

// ModulationPlan builds a styled timeline chart from interval data.
func ModulationPlan(data []Interval, opts Options) (*Chart, error) {
	bars := toBars(data, opts.Axis)
	if opts.SortAndFill {
		bars = sortAndFill(bars, opts.Axis)
	}

	title := opts.Title
	if title == "" {
		title = "Modulation plan"
	}
	if opts.GlobalKey != "" {
		title += fmt.Sprintf(" (%s)", opts.GlobalKey)
		if opts.Axis.Numeric() {
			if err := transpose(bars, opts.Axis, opts.GlobalKey); err != nil {
				return nil, err
			}
		}
	}

	yTitle := yAxisTitle
	if opts.Axis.Numeric() {
		yTitle += fmt.Sprintf(" (%s)", opts.Axis)
	}

	colors := opts.Colors
	if colors == nil {
		colors = DefaultColors
	}

	chart := &Chart{
		Title:  title,
		Axis:   opts.Axis,
		Bars:   bars,
		Colors: colors,
		XTitle: "Measures",
		YTitle: yTitle,
	}
	for _, position := range opts.PhraseEnds {
		chart.Shapes = append(chart.Shapes, Shape{
			X0: position, Y0: 0, X1: position, Y1: 20,
			Line: PhraseEndLine,
		})
	}
	return chart, nil
}

// toBars projects intervals onto the chosen axis.
func toBars(data []Interval, axis Axis) []Bar {
	bars := make([]Bar, len(data))
	for i, iv := range data {
		bar := Bar{
			Start:       iv.Start,
			Finish:      iv.Finish,
			Resource:    iv.Resource,
			Description: iv.Description,
		}
		switch axis {
		case AxisSemitones:
			bar.value = iv.Semitones
			bar.Label = strconv.Itoa(iv.Semitones)
		case AxisFifths:
			bar.value = iv.Fifths
			bar.Label = strconv.Itoa(iv.Fifths)
		default:
			bar.Label = iv.Numeral
		}
		bars[i] = bar
	}
	return bars
}

// sortAndFill orders bars by descending axis value. On numeric axes the
// integer range between the minimum (clamped to include zero, since the
// fifths representation can be negative) and the maximum is made
// contiguous by synthesizing zero-length placeholder bars.
func sortAndFill(bars []Bar, axis Axis) []Bar {
	if !axis.Numeric() {
		sort.SliceStable(bars, func(i, j int) bool {
			return strings.ToUpper(bars[i].Label) > strings.ToUpper(bars[j].Label)
		})
		return bars
	}
	if len(bars) == 0 {
		return bars
	}
	present := make(map[int]bool)
	lo, hi := bars[0].value, bars[0].value
	for _, b := range bars {
		present[b.value] = true
		if b.value < lo {
			lo = b.value
		}
		if b.value > hi {
			hi = b.value
		}
	}
	if lo > 0 {
		lo = 0
	}
	for v := lo; v < hi; v++ {
		if !present[v] {
			bars = append(bars, Bar{
				Resource: ResourceLocal,
				Label:    strconv.Itoa(v),
				value:    v,
			})
		}
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].value > bars[j].value
	})
	return bars
}

// transpose shifts every bar's axis value by the offset of the global key
// and relabels bars with absolute key names.
func transpose(bars []Bar, axis Axis, globalKey string) error {
	switch axis {
	case AxisFifths:
		tonic, err := pitch.NameToFifths(globalKey)
		if err != nil {
			return fmt.Errorf("global key %q: %w", globalKey, err)
		}
		for i := range bars {
			bars[i].value += tonic
			bars[i].Label = pitch.FifthsToName(bars[i].value)
		}
	case AxisSemitones:
		tonic, err := pitch.NameToPC(globalKey)
		if err != nil {
			return fmt.Errorf("global key %q: %w", globalKey, err)
		}
		for i := range bars {
			bars[i].value += tonic
			bars[i].Label = pitch.PCToName(bars[i].value)
		}
	}
	return nil
}

package ghstats

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// PiePNG renders a completion ratio as a PNG pie chart and returns the
// image bytes. Zero-sized slices are left out since the chart library
// rejects them.
func PiePNG(ratio Ratio) ([]byte, error) {
	var values []chart.Value
	if ratio.Done > 0 {
		values = append(values, chart.Value{
			Value: float64(ratio.Done),
			Label: fmt.Sprintf("%s (%d)", ratio.DoneName, ratio.Done),
		})
	}
	if ratio.Open > 0 {
		values = append(values, chart.Value{
			Value: float64(ratio.Open),
			Label: fmt.Sprintf("%s (%d)", ratio.OpenName, ratio.Open),
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("pie chart %q has no values", ratio.Title)
	}
	pie := chart.PieChart{
		Title:  ratio.Title,
		Width:  400,
		Height: 400,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering pie chart %q: %w", ratio.Title, err)
	}
	return buf.Bytes(), nil
}

// PieHTML renders each ratio as an inline base64 PNG wrapped in the
// pie_container markup the stylesheet styles.
func PieHTML(ratios []Ratio) (string, error) {
	var sb bytes.Buffer
	for _, ratio := range ratios {
		png, err := PiePNG(ratio)
		if err != nil {
			return "", err
		}
		encoded := base64.StdEncoding.EncodeToString(png)
		fmt.Fprintf(&sb, `<div class="pie_container"><img class="pie" src="data:image/png;base64, %s"/></div>`, encoded)
	}
	return sb.String(), nil
}

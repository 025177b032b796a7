// Package plot draws a cumulative winnings graph to PNG and keeps the
// last drawing around for export.
package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/series"
)

var (
	colorProfit      = drawing.ColorFromHex("2e9b3a")
	colorShowdown    = drawing.ColorFromHex("1f5fd1")
	colorNonShowdown = drawing.ColorFromHex("d62828")
	colorEV          = drawing.ColorFromHex("f08c00")
)

// Size is the output size in pixels.
type Size struct {
	Width  int
	Height int
}

// Result is a graph ready to draw. Title lines are separated by "\n".
type Result struct {
	Graph   *series.Graph
	Title   string
	Options filter.GraphOptions
}

// Render draws r and returns the PNG bytes along with the decoded image.
// On failure the image is a blank canvas of the requested size so callers
// always have something to show.
func Render(r Result, size Size) ([]byte, image.Image, error) {
	if size.Width <= 0 || size.Height <= 0 {
		size = Size{Width: 1000, Height: 600}
	}
	if r.Graph == nil || len(r.Graph.Profit) == 0 {
		return nil, blank(size), fmt.Errorf("render: empty graph")
	}

	ch := chart.Chart{
		Title:      chartTitle(r.Title),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Hands"},
		YAxis:      chart.YAxis{Name: fmt.Sprintf("Profit (%s)", r.Graph.Unit)},
		Series:     buildSeries(r),
	}
	if lo, hi, flat := flatRange(ch.Series); flat {
		ch.YAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, blank(size), fmt.Errorf("render chart: %w", err)
	}
	data := buf.Bytes()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, blank(size), fmt.Errorf("decode chart: %w", err)
	}
	return data, img, nil
}

func buildSeries(r Result) []chart.Series {
	g := r.Graph
	xs := make([]float64, len(g.Profit))
	for i := range xs {
		xs[i] = float64(i)
	}
	labels := LegendLabels(g)

	// The placeholder always shows its sample showdown split.
	out := []chart.Series{line(labels.Profit, xs, g.Profit, colorProfit)}
	if (r.Options.Showdown || g.Placeholder) && len(g.Showdown) == len(xs) {
		out = append(out, line(labels.Showdown, xs, g.Showdown, colorShowdown))
	}
	if (r.Options.NonShowdown || g.Placeholder) && len(g.NonShowdown) == len(xs) {
		out = append(out, line(labels.NonShowdown, xs, g.NonShowdown, colorNonShowdown))
	}
	if r.Options.EV && len(g.EV) == len(xs) {
		out = append(out, line(labels.EV, xs, g.EV, colorEV))
	}
	return out
}

func line(name string, xs, ys []float64, c drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: c,
			StrokeWidth: 1.5,
		},
	}
}

// flatRange reports whether every plotted value is the same. go-chart
// refuses a zero-height range, so a flat graph gets one unit of headroom.
func flatRange(ss []chart.Series) (float64, float64, bool) {
	first := true
	var v float64
	for _, s := range ss {
		cs, ok := s.(chart.ContinuousSeries)
		if !ok {
			continue
		}
		for _, y := range cs.YValues {
			if first {
				v, first = y, false
				continue
			}
			if y != v {
				return 0, 0, false
			}
		}
	}
	return v - 1, v + 1, true
}

// Labels are the legend entries of each series.
type Labels struct {
	Profit      string
	Showdown    string
	NonShowdown string
	EV          string
}

// LegendLabels formats the legend with the hand count and final values.
func LegendLabels(g *series.Graph) Labels {
	u := g.Unit
	return Labels{
		Profit:      fmt.Sprintf("Hands: %s  Profit (%s): %.2f", humanize.Comma(int64(g.Hands)), u, series.Last(g.Profit)),
		Showdown:    fmt.Sprintf("Showdown (%s): %.2f", u, series.Last(g.Showdown)),
		NonShowdown: fmt.Sprintf("Non-showdown (%s): %.2f", u, series.Last(g.NonShowdown)),
		EV:          fmt.Sprintf("All-in EV (%s): %.2f", u, series.Last(g.EV)),
	}
}

// chartTitle folds a multi-line title onto one line; the chart draws a
// single title row.
func chartTitle(title string) string {
	lines := strings.FieldsFunc(title, func(r rune) bool { return r == '\n' })
	return strings.Join(lines, "  |  ")
}

func blank(size Size) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	bg := color.RGBA{R: 250, G: 250, B: 250, A: 255}
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}

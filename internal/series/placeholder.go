package series

import "github.com/AkatukiSora/pokergraph/internal/filter"

var placeholderProfit = []float64{
	0, 0, 0, 0, 500, 1000, 900, 800,
	700, 600, 500, 400, 300, 200, 100, 0,
	500, 1000, 1000, 1000, 1000, 1000, 1000, 1000,
	1000, 1000, 1000, 1000, 1000, 1000, 875, 750,
	625, 500, 375, 250, 125, 0, 0, 0,
	0, 500, 1000, 900, 800, 700, 600, 500,
	400, 300, 200, 100, 0, 500, 1000, 1000,
}

var placeholderNonShowdown = []float64{
	0, 0, 0, 0, 500, 1000, 900, 800,
	700, 600, 500, 400, 300, 200, 100, 0,
	0, 0, 0, 0, 0, 0, 125, 250,
	375, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 375, 250, 125, 0, 0, 0,
	0, 500, 1000, 900, 800, 700, 600, 500,
	400, 300, 200, 100, 0, 500, 1000, 1000,
}

var placeholderShowdown = []float64{
	0, 0, 0, 0, 500, 1000, 900, 800,
	700, 600, 500, 400, 300, 200, 100, 0,
	0, 0, 0, 0, 0, 0, 125, 250,
	375, 500, 625, 750, 875, 1000, 875, 750,
	625, 500, 375, 250, 125, 0, 0, 0,
	0, 500, 1000, 900, 800, 700, 600, 500,
	400, 300, 200, 100, 0, 500, 1000, 1000,
}

// Placeholder is the illustrative graph drawn when no hands matched. It has
// no EV line and its values are shown as-is.
func Placeholder(unit filter.Unit) *Graph {
	return &Graph{
		Unit:        unit,
		Hands:       len(placeholderProfit) - 1,
		Profit:      clone(placeholderProfit),
		Showdown:    clone(placeholderShowdown),
		NonShowdown: clone(placeholderNonShowdown),
		Placeholder: true,
	}
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// Package series turns per-hand results into cumulative winnings series.
package series

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

// ErrNoData is returned by Build when no hands matched. Callers draw the
// Placeholder graph instead of an empty chart.
var ErrNoData = errors.New("no hands matched the current filters")

// HandResult is one hand as returned by the profit queries. Amounts are in
// minor units (cents, or big blinds times 100).
type HandResult struct {
	HandID   int64   `db:"hand_id"`
	Profit   float64 `db:"profit"`
	Showdown bool    `db:"showdown"`
	AllInEV  float64 `db:"all_in_ev"`
}

// Graph holds four parallel running totals. Each series has Hands+1
// points and starts at 0.
type Graph struct {
	Unit        filter.Unit
	Hands       int
	Profit      []float64
	Showdown    []float64
	NonShowdown []float64
	EV          []float64
	Placeholder bool
}

var hundred = decimal.NewFromInt(100)

// Build accumulates rows in order. Profit and EV take every hand, showdown
// takes only hands that reached showdown and non-showdown the rest, so
// Profit[i] == Showdown[i] + NonShowdown[i] for every i.
func Build(rows []HandResult, unit filter.Unit) (*Graph, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	n := len(rows) + 1
	g := &Graph{
		Unit:        unit,
		Hands:       len(rows),
		Profit:      make([]float64, n),
		Showdown:    make([]float64, n),
		NonShowdown: make([]float64, n),
		EV:          make([]float64, n),
	}

	var total, sd, nsd, ev decimal.Decimal
	for i, r := range rows {
		p := decimal.NewFromFloat(r.Profit)
		total = total.Add(p)
		if r.Showdown {
			sd = sd.Add(p)
		} else {
			nsd = nsd.Add(p)
		}
		ev = ev.Add(decimal.NewFromFloat(r.AllInEV))

		g.Profit[i+1] = total.Div(hundred).InexactFloat64()
		g.Showdown[i+1] = sd.Div(hundred).InexactFloat64()
		g.NonShowdown[i+1] = nsd.Div(hundred).InexactFloat64()
		g.EV[i+1] = ev.Div(hundred).InexactFloat64()
	}
	return g, nil
}

// Last returns the final value of s, or 0 for an empty series.
func Last(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

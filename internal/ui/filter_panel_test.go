package ui

import (
	"reflect"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

func panelOptions() filter.Options {
	return filter.Options{
		Sites:      []string{"PokerStars", "Full Tilt Poker"},
		Heroes:     map[string]string{"PokerStars": "hero"},
		Games:      []string{"holdem", "razz"},
		Currencies: []string{"USD", "EUR"},
		Limits: []filter.LimitOption{
			{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 100, Type: filter.LimitNo}},
			{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 20, Type: filter.LimitNo}},
			{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 20, Type: filter.LimitFixed}},
		},
		GameTypes:         []filter.GameType{filter.GameTypeRing},
		TourneyCategories: []string{"holdem"},
		TourneyLimits:     []string{"nl"},
		TourneyBuyins:     []int{500, 1000},
	}
}

func TestFilterPanelSectionsFollowDisplay(t *testing.T) {
	test.NewTempApp(t)

	tests := []struct {
		name    string
		display filter.Display
		want    int
	}{
		{name: "ring", display: filter.GraphDisplay(), want: 10},
		{name: "tourney", display: filter.TourneyDisplay(), want: 7},
		{name: "empty", display: filter.Display{}, want: 0},
		{name: "type and groups", display: filter.Display{Type: true, Groups: true}, want: 2},
	}
	for _, tt := range tests {
		p := newFilterPanel(filter.NewState(panelOptions(), tt.display, 0))
		if got := len(p.content.Objects); got != tt.want {
			t.Fatalf("%s: sections = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFilterPanelTypeAndGroups(t *testing.T) {
	test.NewTempApp(t)

	p := newFilterPanel(filter.NewState(panelOptions(), filter.Display{Type: true, Groups: true}, 0))
	p.dispatchAndRebuild(filter.SetGameType{Type: filter.GameTypeTour})
	if got := p.State().Type; got != filter.GameTypeTour {
		t.Fatalf("type = %v, want %v", got, filter.GameTypeTour)
	}
	p.dispatchAndRebuild(filter.ToggleGroup{Group: filter.GroupSeats, On: true})
	p.dispatchAndRebuild(filter.SetMinHands{Hands: -5})
	g := p.State().Groups
	if !g.Seats || g.MinHands != 0 {
		t.Fatalf("groups = %+v, want seats on and min hands 0", g)
	}
	if got := len(p.content.Objects); got != 2 {
		t.Fatalf("sections after rebuild = %d, want 2", got)
	}
}

func TestFilterPanelDispatchKeepsSnapshots(t *testing.T) {
	test.NewTempApp(t)

	p := newFilterPanel(filter.NewState(panelOptions(), filter.GraphDisplay(), 0))
	before := p.State()

	p.dispatchAndRebuild(filter.SetAll{Category: filter.CategorySites, On: false})
	if got := p.State().Sites.Selected(); len(got) != 0 {
		t.Fatalf("sites selected = %v, want none", got)
	}
	if got := before.Sites.Selected(); len(got) != 2 {
		t.Fatalf("earlier snapshot changed: %v", got)
	}
	if got := len(p.content.Objects); got != 10 {
		t.Fatalf("sections after rebuild = %d, want 10", got)
	}

	p.dispatchAndRebuild(filter.SetSeatsFrom{Seats: 9})
	p.dispatchAndRebuild(filter.SetSeatsTo{Seats: 4})
	if s := p.State().Seats; s.From != 4 || s.To != 4 {
		t.Fatalf("seats = %+v, want 4..4", s)
	}
}

func TestCardGridTapTogglesCell(t *testing.T) {
	test.NewTempApp(t)

	p := newFilterPanel(filter.NewState(panelOptions(), filter.GraphDisplay(), 0))
	cell := p.cards.cells["AKs"]
	if cell == nil || !cell.on {
		t.Fatalf("AKs cell missing or not selected initially")
	}

	test.Tap(cell.tap)
	if p.State().Cards.IsSelected("AKs") {
		t.Fatalf("AKs still selected after tap")
	}
	if cell.on || cell.bg.FillColor != cardOff {
		t.Fatalf("cell not repainted: on=%v fill=%v", cell.on, cell.bg.FillColor)
	}

	test.Tap(cell.tap)
	if !p.State().Cards.IsSelected("AKs") || cell.bg.FillColor != cardOnSuited {
		t.Fatalf("second tap did not reselect AKs")
	}
}

func TestBlindsOfType(t *testing.T) {
	t.Parallel()

	st := filter.NewState(panelOptions(), filter.GraphDisplay(), 0)
	st = filter.Apply(st, filter.SetAll{Category: filter.CategoryLimits, On: false})

	if got := blindsOfType(st.Limits, filter.LimitNo); !reflect.DeepEqual(got, []int{20, 100}) {
		t.Fatalf("nl blinds = %v, want [20 100] even when unselected", got)
	}
	if got := blindsOfType(st.Limits, filter.LimitPot); got != nil {
		t.Fatalf("pl blinds = %v, want none", got)
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{got: positionLabel("0"), want: "0 (BTN)"},
		{got: positionLabel("S"), want: "SB"},
		{got: positionLabel("9"), want: "9"},
		{got: centsLabel(5), want: "0.05"},
		{got: centsLabel(1050), want: "10.50"},
		{got: limitLabel(filter.Limit{BigBlind: 200, Type: filter.LimitCapped}), want: "CAP 2.00"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("label = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestParseEntryDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-09", "20240309"} {
		got, ok := parseEntryDate(in)
		if !ok || !got.Equal(want) {
			t.Fatalf("parseEntryDate(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := parseEntryDate("09/03/2024"); ok {
		t.Fatalf("unexpected parse of slash date")
	}
}

func TestEdgeFade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want float32
	}{
		{in: 0, want: 0},
		{in: 0.1, want: 0},
		{in: 0.2, want: 0.5},
		{in: 0.5, want: 1},
		{in: 0.95, want: 0},
	}
	for _, tt := range tests {
		if got := edgeFade(tt.in); got < tt.want-1e-4 || got > tt.want+1e-4 {
			t.Fatalf("edgeFade(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

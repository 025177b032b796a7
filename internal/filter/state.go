// Package filter holds the hand-history filter selection and the pure
// intent dispatch that updates it. Nothing here depends on the UI toolkit.
package filter

import "time"

// Unit selects how profit amounts are expressed.
type Unit string

const (
	UnitCurrency Unit = "$"
	UnitBigBlind Unit = "BB"
)

const (
	MinSeats = 2
	MaxSeats = 10
)

// DateLayout is the wire format for date bounds handed to the store.
const DateLayout = "2006-01-02 15:04:05"

var (
	DefaultStartDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	DefaultEndDate   = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Position is a seat label as stored in handsplayers.position.
type Position string

// Positions is the fixed list offered by the panel: seats counted back
// from the button, then small and big blind.
var Positions = []Position{"0", "1", "2", "3", "4", "5", "6", "7", "S", "B"}

// SeatRange is the inclusive table-size window. From never exceeds To.
type SeatRange struct {
	From int
	To   int
}

// DateRange is a pair of calendar dates interpreted in Loc. DayStart shifts
// the start of each day by that many hours.
type DateRange struct {
	Start    time.Time
	End      time.Time
	DayStart float64
	Loc      *time.Location
}

func (d DateRange) location() *time.Location {
	if d.Loc == nil {
		return time.Local
	}
	return d.Loc
}

// Bounds returns the first and last instant covered by the range.
func (d DateRange) Bounds() (time.Time, time.Time) {
	loc := d.location()
	offset := time.Duration(int64(d.DayStart*3600)) * time.Second
	start := time.Date(d.Start.Year(), d.Start.Month(), d.Start.Day(), 0, 0, 0, 0, loc).Add(offset)
	end := time.Date(d.End.Year(), d.End.Month(), d.End.Day(), 0, 0, 0, 0, loc).
		Add(offset + 24*time.Hour - time.Second)
	return start, end
}

// UTCStrings formats Bounds in UTC using DateLayout.
func (d DateRange) UTCStrings() (string, string) {
	start, end := d.Bounds()
	return start.UTC().Format(DateLayout), end.UTC().Format(DateLayout)
}

// GraphOptions toggles the optional series. Profit is always drawn.
type GraphOptions struct {
	Showdown    bool
	NonShowdown bool
	EV          bool
}

// Groups mirrors the grouping checkboxes used by the stats screens.
type Groups struct {
	Limits     bool
	Positions  bool
	Seats      bool
	AllPlayers bool
	MinHands   int
}

// Display chooses which panel sections are shown. UseType pins the game
// type; empty means "let the data decide".
type Display struct {
	Heroes     bool
	Sites      bool
	Games      bool
	Type       bool
	Currencies bool
	Limits     bool
	LimitSep   bool
	LimitType  bool
	Positions  bool
	Seats      bool
	Dates      bool
	Cards      bool
	Groups     bool
	GraphOps   bool
	Tourney    bool
	UseType    GameType
}

// GraphDisplay is the section layout used by the profit graph screen.
func GraphDisplay() Display {
	return Display{
		Heroes:     true,
		Sites:      true,
		Games:      true,
		Currencies: true,
		Limits:     true,
		LimitSep:   true,
		LimitType:  true,
		Positions:  true,
		Seats:      true,
		Dates:      true,
		Cards:      true,
		GraphOps:   true,
		UseType:    GameTypeRing,
	}
}

// TourneyDisplay is the layout of the tournament results graph.
func TourneyDisplay() Display {
	return Display{
		Heroes:   true,
		Sites:    true,
		Dates:    true,
		GraphOps: true,
		Tourney:  true,
		UseType:  GameTypeTour,
	}
}

// Options is what the store offers for each category.
type Options struct {
	Sites             []string
	Heroes            map[string]string
	Games             []string
	Currencies        []string
	Limits            []LimitOption
	GameTypes         []GameType
	TourneyCategories []string
	TourneyLimits     []string
	TourneyBuyins     []int
}

// State is the full filter selection. Copy it by value; Apply never
// mutates the maps of the State it was given.
type State struct {
	Display Display

	Sites  Set[string]
	Heroes map[string]string

	Games      Set[string]
	Limits     Set[Limit]
	Currencies Set[string]
	Positions  Set[Position]
	Type       GameType

	TourneyCategories Set[string]
	TourneyLimits     Set[string]
	TourneyBuyins     Set[int]

	Dates DateRange
	Seats SeatRange
	Cards Set[string]

	Unit   Unit
	Graph  GraphOptions
	Groups Groups
}

// NewState builds the initial selection: every option selected, dates
// spanning 1970-01-01 to 2100-01-01, all seat counts, all cards.
func NewState(opts Options, display Display, dayStart float64) State {
	heroes := make(map[string]string, len(opts.Heroes))
	for site, name := range opts.Heroes {
		heroes[site] = name
	}

	gameType := resolveGameType(display.UseType, opts.GameTypes)

	limits := make([]Limit, 0, len(opts.Limits))
	for _, lo := range opts.Limits {
		if display.UseType != "" && lo.GameType != display.UseType {
			continue
		}
		limits = append(limits, lo.Limit)
	}

	return State{
		Display:           display,
		Sites:             NewSet(opts.Sites, true),
		Heroes:            heroes,
		Games:             NewSet(opts.Games, true),
		Limits:            NewSet(limits, true),
		Currencies:        NewSet(opts.Currencies, true),
		Positions:         NewSet(Positions, true),
		Type:              gameType,
		TourneyCategories: NewSet(opts.TourneyCategories, true),
		TourneyLimits:     NewSet(opts.TourneyLimits, true),
		TourneyBuyins:     NewSet(opts.TourneyBuyins, true),
		Dates: DateRange{
			Start:    DefaultStartDate,
			End:      DefaultEndDate,
			DayStart: dayStart,
			Loc:      time.Local,
		},
		Seats: SeatRange{From: MinSeats, To: MaxSeats},
		Cards: NewSet(CardAbbreviations(), true),
		Unit:  UnitCurrency,
	}
}

// resolveGameType picks the pinned type, else the only type present, else
// ring.
func resolveGameType(pinned GameType, found []GameType) GameType {
	if pinned != "" {
		return pinned
	}
	if len(found) == 1 {
		return found[0]
	}
	return GameTypeRing
}

// Hero returns the configured hero for site; empty when unset.
func (s State) Hero(site string) string {
	return s.Heroes[site]
}

package filter

import "time"

// Intent is a user action on the filter panel. Apply turns (State, Intent)
// into the next State; widgets only build intents.
type Intent interface {
	apply(*State)
}

// Apply returns the state that results from in. s is left unchanged.
func Apply(s State, in Intent) State {
	next := s
	if in != nil {
		in.apply(&next)
	}
	return next
}

// Category names a selection group for the All/None buttons.
type Category int

const (
	CategorySites Category = iota
	CategoryGames
	CategoryLimits
	CategoryCurrencies
	CategoryPositions
	CategoryTourneyCategories
	CategoryTourneyLimits
	CategoryTourneyBuyins
	CategoryCards
)

// GraphOption names one of the optional graph series.
type GraphOption int

const (
	GraphShowdown GraphOption = iota
	GraphNonShowdown
	GraphEV
)

// Group names a grouping checkbox.
type Group int

const (
	GroupLimits Group = iota
	GroupPositions
	GroupSeats
	GroupAllPlayers
)

type ToggleSite struct {
	Site string
	On   bool
}

func (i ToggleSite) apply(s *State) { s.Sites = s.Sites.with(i.Site, i.On) }

// SetHero replaces the hero screen name for one site.
type SetHero struct {
	Site string
	Name string
}

func (i SetHero) apply(s *State) {
	heroes := make(map[string]string, len(s.Heroes)+1)
	for k, v := range s.Heroes {
		heroes[k] = v
	}
	heroes[i.Site] = i.Name
	s.Heroes = heroes
}

type ToggleGame struct {
	Game string
	On   bool
}

func (i ToggleGame) apply(s *State) { s.Games = s.Games.with(i.Game, i.On) }

type ToggleLimit struct {
	Limit Limit
	On    bool
}

func (i ToggleLimit) apply(s *State) { s.Limits = s.Limits.with(i.Limit, i.On) }

// SelectLimitType checks every limit of one type. Other limits keep their
// current state.
type SelectLimitType struct {
	Type LimitType
}

func (i SelectLimitType) apply(s *State) {
	s.Limits = s.Limits.withFunc(func(l Limit) bool {
		return l.Type == i.Type || s.Limits.IsSelected(l)
	})
}

type ToggleCurrency struct {
	Currency string
	On       bool
}

func (i ToggleCurrency) apply(s *State) { s.Currencies = s.Currencies.with(i.Currency, i.On) }

type TogglePosition struct {
	Position Position
	On       bool
}

func (i TogglePosition) apply(s *State) { s.Positions = s.Positions.with(i.Position, i.On) }

type ToggleTourneyCategory struct {
	Category string
	On       bool
}

func (i ToggleTourneyCategory) apply(s *State) {
	s.TourneyCategories = s.TourneyCategories.with(i.Category, i.On)
}

type ToggleTourneyLimit struct {
	Limit string
	On    bool
}

func (i ToggleTourneyLimit) apply(s *State) { s.TourneyLimits = s.TourneyLimits.with(i.Limit, i.On) }

type ToggleTourneyBuyin struct {
	Buyin int
	On    bool
}

func (i ToggleTourneyBuyin) apply(s *State) { s.TourneyBuyins = s.TourneyBuyins.with(i.Buyin, i.On) }

// SetAll is the All/None button of a category.
type SetAll struct {
	Category Category
	On       bool
}

func (i SetAll) apply(s *State) {
	switch i.Category {
	case CategorySites:
		s.Sites = s.Sites.withAll(i.On)
	case CategoryGames:
		s.Games = s.Games.withAll(i.On)
	case CategoryLimits:
		s.Limits = s.Limits.withAll(i.On)
	case CategoryCurrencies:
		s.Currencies = s.Currencies.withAll(i.On)
	case CategoryPositions:
		s.Positions = s.Positions.withAll(i.On)
	case CategoryTourneyCategories:
		s.TourneyCategories = s.TourneyCategories.withAll(i.On)
	case CategoryTourneyLimits:
		s.TourneyLimits = s.TourneyLimits.withAll(i.On)
	case CategoryTourneyBuyins:
		s.TourneyBuyins = s.TourneyBuyins.withAll(i.On)
	case CategoryCards:
		s.Cards = s.Cards.withAll(i.On)
	}
}

type SetGameType struct {
	Type GameType
}

func (i SetGameType) apply(s *State) {
	if i.Type == GameTypeRing || i.Type == GameTypeTour {
		s.Type = i.Type
	}
}

// SetSeatsFrom moves the lower seat bound, pushing the upper bound up when
// needed.
type SetSeatsFrom struct {
	Seats int
}

func (i SetSeatsFrom) apply(s *State) {
	v := clampSeats(i.Seats)
	s.Seats.From = v
	if s.Seats.To < v {
		s.Seats.To = v
	}
}

// SetSeatsTo moves the upper seat bound, pulling the lower bound down when
// needed.
type SetSeatsTo struct {
	Seats int
}

func (i SetSeatsTo) apply(s *State) {
	v := clampSeats(i.Seats)
	s.Seats.To = v
	if s.Seats.From > v {
		s.Seats.From = v
	}
}

func clampSeats(v int) int {
	if v < MinSeats {
		return MinSeats
	}
	if v > MaxSeats {
		return MaxSeats
	}
	return v
}

// SetStartDate moves the start date; a start after the end drags the end
// along.
type SetStartDate struct {
	Date time.Time
}

func (i SetStartDate) apply(s *State) {
	d := civilDate(i.Date)
	s.Dates.Start = d
	if civilDate(s.Dates.End).Before(d) {
		s.Dates.End = d
	}
}

// SetEndDate moves the end date; an end before the start drags the start
// along.
type SetEndDate struct {
	Date time.Time
}

func (i SetEndDate) apply(s *State) {
	d := civilDate(i.Date)
	s.Dates.End = d
	if civilDate(s.Dates.Start).After(d) {
		s.Dates.Start = d
	}
}

type ClearStartDate struct{}

func (ClearStartDate) apply(s *State) { s.Dates.Start = DefaultStartDate }

type ClearEndDate struct{}

func (ClearEndDate) apply(s *State) { s.Dates.End = DefaultEndDate }

// civilDate drops the clock and zone so dates compare by calendar day.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type ToggleCard struct {
	Abbr string
	On   bool
}

func (i ToggleCard) apply(s *State) { s.Cards = s.Cards.with(i.Abbr, i.On) }

type SetCards struct {
	Preset CardPreset
}

func (i SetCards) apply(s *State) { s.Cards = s.Cards.withFunc(i.Preset.includes) }

type SetUnit struct {
	Unit Unit
}

func (i SetUnit) apply(s *State) {
	if i.Unit == UnitCurrency || i.Unit == UnitBigBlind {
		s.Unit = i.Unit
	}
}

type ToggleGraphOption struct {
	Option GraphOption
	On     bool
}

func (i ToggleGraphOption) apply(s *State) {
	switch i.Option {
	case GraphShowdown:
		s.Graph.Showdown = i.On
	case GraphNonShowdown:
		s.Graph.NonShowdown = i.On
	case GraphEV:
		s.Graph.EV = i.On
	}
}

type ToggleGroup struct {
	Group Group
	On    bool
}

func (i ToggleGroup) apply(s *State) {
	switch i.Group {
	case GroupLimits:
		s.Groups.Limits = i.On
	case GroupPositions:
		s.Groups.Positions = i.On
	case GroupSeats:
		s.Groups.Seats = i.On
	case GroupAllPlayers:
		s.Groups.AllPlayers = i.On
	}
}

// SetMinHands sets the minimum hand count for the all-players grouping.
// Negative values are treated as zero.
type SetMinHands struct {
	Hands int
}

func (i SetMinHands) apply(s *State) {
	if i.Hands < 0 {
		s.Groups.MinHands = 0
		return
	}
	s.Groups.MinHands = i.Hands
}

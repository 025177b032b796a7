package ui

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

// filterPanel renders a filter.State and turns widget events into intents.
// All methods run on the fyne main goroutine.
type filterPanel struct {
	state   filter.State
	content *fyne.Container
	root    fyne.CanvasObject
	cards   *cardGrid
}

func newFilterPanel(st filter.State) *filterPanel {
	p := &filterPanel{state: st}
	p.content = container.NewVBox()
	p.root = container.NewVScroll(p.content)
	p.rebuild()
	return p
}

func (p *filterPanel) CanvasObject() fyne.CanvasObject {
	return p.root
}

// State returns a snapshot. The sets inside are copy-on-write, so the
// snapshot stays valid while the user keeps editing.
func (p *filterPanel) State() filter.State {
	return p.state
}

func (p *filterPanel) dispatch(in filter.Intent) {
	p.state = filter.Apply(p.state, in)
}

// dispatchAndRebuild is used for intents that change widgets other than
// the one that fired them (bulk selection, coupled ranges).
func (p *filterPanel) dispatchAndRebuild(in filter.Intent) {
	p.dispatch(in)
	p.rebuild()
}

func (p *filterPanel) rebuild() {
	d := p.state.Display
	var sections []fyne.CanvasObject
	if d.Heroes {
		sections = append(sections, p.heroesSection())
	}
	if d.Sites {
		sections = append(sections, p.sitesSection())
	}
	if d.Type {
		sections = append(sections, p.typeSection())
	}
	if d.Games {
		sections = append(sections, p.gamesSection())
	}
	if d.Limits {
		sections = append(sections, p.limitsSection())
	}
	if d.Currencies {
		sections = append(sections, p.currenciesSection())
	}
	if d.Tourney {
		sections = append(sections, p.tourneySections()...)
	}
	if d.Positions {
		sections = append(sections, p.positionsSection())
	}
	if d.Seats {
		sections = append(sections, p.seatsSection())
	}
	if d.Dates {
		sections = append(sections, p.datesSection())
	}
	if d.Cards {
		sections = append(sections, p.cardsSection())
	}
	if d.Groups {
		sections = append(sections, p.groupsSection())
	}
	if d.GraphOps {
		sections = append(sections, p.graphSection())
	}
	p.content.Objects = sections
	p.content.Refresh()
}

func filterSection(title string, body fyne.CanvasObject, actions ...fyne.CanvasObject) fyne.CanvasObject {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	header := container.NewBorder(nil, nil, heading, container.NewHBox(actions...))
	return newSectionCard(container.NewVBox(header, body))
}

func (p *filterPanel) allNone(cat filter.Category) []fyne.CanvasObject {
	all := widget.NewButton(lang.X("filter.all", "All"), func() {
		p.dispatchAndRebuild(filter.SetAll{Category: cat, On: true})
	})
	none := widget.NewButton(lang.X("filter.none", "None"), func() {
		p.dispatchAndRebuild(filter.SetAll{Category: cat, On: false})
	})
	all.Importance = widget.LowImportance
	none.Importance = widget.LowImportance
	return []fyne.CanvasObject{all, none}
}

// checkList lays out one checkbox per option. The initial state is set
// without firing the change handler.
func checkList[K comparable](set filter.Set[K], label func(K) string, onToggle func(K, bool)) fyne.CanvasObject {
	opts := set.Options()
	if len(opts) == 0 {
		return newSubtleText(lang.X("filter.no_options", "Nothing found in the database."))
	}
	items := make([]fyne.CanvasObject, 0, len(opts))
	for _, opt := range opts {
		opt := opt
		c := widget.NewCheck(label(opt), nil)
		c.Checked = set.IsSelected(opt)
		c.OnChanged = func(on bool) { onToggle(opt, on) }
		items = append(items, c)
	}
	return container.NewGridWithColumns(2, items...)
}

func identity(s string) string { return s }

func (p *filterPanel) heroesSection() fyne.CanvasObject {
	form := widget.NewForm()
	for _, site := range p.state.Sites.Options() {
		site := site
		entry := newCommitEntry()
		entry.SetPlaceHolder(lang.X("filter.heroes.placeholder", "Screen name"))
		entry.SetText(p.state.Hero(site))
		commit := func(name string) {
			if name == p.state.Hero(site) {
				return
			}
			p.dispatch(filter.SetHero{Site: site, Name: name})
		}
		entry.onCommit = commit
		entry.OnSubmitted = commit
		form.Append(site, entry)
	}
	return filterSection(lang.X("filter.heroes.title", "Hero"), form)
}

func (p *filterPanel) sitesSection() fyne.CanvasObject {
	body := checkList(p.state.Sites, identity, func(site string, on bool) {
		p.dispatch(filter.ToggleSite{Site: site, On: on})
	})
	return filterSection(lang.X("filter.sites.title", "Sites"), body, p.allNone(filter.CategorySites)...)
}

func (p *filterPanel) typeSection() fyne.CanvasObject {
	ring := lang.X("filter.type.ring", "Ring")
	tour := lang.X("filter.type.tour", "Tourney")
	radio := widget.NewRadioGroup([]string{ring, tour}, nil)
	radio.Horizontal = true
	radio.Required = true
	if p.state.Type == filter.GameTypeTour {
		radio.Selected = tour
	} else {
		radio.Selected = ring
	}
	radio.OnChanged = func(sel string) {
		t := filter.GameTypeRing
		if sel == tour {
			t = filter.GameTypeTour
		}
		p.dispatch(filter.SetGameType{Type: t})
	}
	return filterSection(lang.X("filter.type.title", "Type"), radio)
}

func (p *filterPanel) gamesSection() fyne.CanvasObject {
	body := checkList(p.state.Games, filter.GameName, func(game string, on bool) {
		p.dispatch(filter.ToggleGame{Game: game, On: on})
	})
	return filterSection(lang.X("filter.games.title", "Games"), body, p.allNone(filter.CategoryGames)...)
}

func limitLabel(l filter.Limit) string {
	return l.Type.Label() + " " + centsLabel(l.BigBlind)
}

// blindsOfType lists every offered big blind of one limit type, ascending.
func blindsOfType(limits filter.Set[filter.Limit], lt filter.LimitType) []int {
	var out []int
	for _, l := range limits.Options() {
		if l.Type == lt {
			out = append(out, l.BigBlind)
		}
	}
	slices.Sort(out)
	return out
}

func (p *filterPanel) limitsSection() fyne.CanvasObject {
	toggle := func(l filter.Limit, on bool) {
		p.dispatch(filter.ToggleLimit{Limit: l, On: on})
	}
	d := p.state.Display
	if !d.LimitSep {
		body := checkList(p.state.Limits, limitLabel, toggle)
		return filterSection(lang.X("filter.limits.title", "Limits"), body, p.allNone(filter.CategoryLimits)...)
	}

	rows := container.NewVBox()
	for _, lt := range filter.LimitTypes {
		blinds := blindsOfType(p.state.Limits, lt)
		if len(blinds) == 0 {
			continue
		}
		lt := lt
		heading := widget.NewLabel(lt.Label())
		var pick fyne.CanvasObject = container.NewHBox()
		if d.LimitType {
			btn := widget.NewButton(lang.X("filter.limits.select_type", "Select {{.Type}}", map[string]any{"Type": lt.Label()}), func() {
				p.dispatchAndRebuild(filter.SelectLimitType{Type: lt})
			})
			btn.Importance = widget.LowImportance
			pick = btn
		}
		checks := make([]fyne.CanvasObject, 0, len(blinds))
		for _, bb := range blinds {
			l := filter.Limit{BigBlind: bb, Type: lt}
			c := widget.NewCheck(centsLabel(bb), nil)
			c.Checked = p.state.Limits.IsSelected(l)
			c.OnChanged = func(on bool) { toggle(l, on) }
			checks = append(checks, c)
		}
		rows.Add(container.NewBorder(nil, nil, heading, pick))
		rows.Add(container.NewGridWithColumns(4, checks...))
	}
	if len(rows.Objects) == 0 {
		rows.Add(newSubtleText(lang.X("filter.no_options", "Nothing found in the database.")))
	}
	return filterSection(lang.X("filter.limits.title", "Limits"), rows, p.allNone(filter.CategoryLimits)...)
}

func (p *filterPanel) currenciesSection() fyne.CanvasObject {
	body := checkList(p.state.Currencies, filter.CurrencyName, func(cur string, on bool) {
		p.dispatch(filter.ToggleCurrency{Currency: cur, On: on})
	})
	return filterSection(lang.X("filter.currencies.title", "Currencies"), body, p.allNone(filter.CategoryCurrencies)...)
}

func (p *filterPanel) tourneySections() []fyne.CanvasObject {
	cats := checkList(p.state.TourneyCategories, filter.GameName, func(c string, on bool) {
		p.dispatch(filter.ToggleTourneyCategory{Category: c, On: on})
	})
	limits := checkList(p.state.TourneyLimits, func(l string) string { return filter.LimitType(l).Label() }, func(l string, on bool) {
		p.dispatch(filter.ToggleTourneyLimit{Limit: l, On: on})
	})
	buyins := checkList(p.state.TourneyBuyins, centsLabel, func(b int, on bool) {
		p.dispatch(filter.ToggleTourneyBuyin{Buyin: b, On: on})
	})
	return []fyne.CanvasObject{
		filterSection(lang.X("filter.tourney.categories", "Tourney games"), cats, p.allNone(filter.CategoryTourneyCategories)...),
		filterSection(lang.X("filter.tourney.limits", "Tourney limits"), limits, p.allNone(filter.CategoryTourneyLimits)...),
		filterSection(lang.X("filter.tourney.buyins", "Buy-ins"), buyins, p.allNone(filter.CategoryTourneyBuyins)...),
	}
}

// centsLabel formats an amount stored in minor units.
func centsLabel(cents int) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

var positionNames = map[filter.Position]string{
	"0": "BTN",
	"1": "CO",
	"2": "MP",
	"3": "MP",
	"4": "EP",
	"5": "EP",
	"6": "EP",
	"7": "EP",
	"S": "SB",
	"B": "BB",
}

// positionLabel shows seat numbers next to their usual name; the blinds
// only by name.
func positionLabel(pos filter.Position) string {
	name, ok := positionNames[pos]
	switch {
	case !ok:
		return string(pos)
	case pos == "S" || pos == "B":
		return name
	default:
		return fmt.Sprintf("%s (%s)", pos, name)
	}
}

func (p *filterPanel) positionsSection() fyne.CanvasObject {
	body := checkList(p.state.Positions, positionLabel, func(pos filter.Position, on bool) {
		p.dispatch(filter.TogglePosition{Position: pos, On: on})
	})
	return filterSection(lang.X("filter.positions.title", "Positions"), body, p.allNone(filter.CategoryPositions)...)
}

func seatOptions() []string {
	out := make([]string, 0, filter.MaxSeats-filter.MinSeats+1)
	for n := filter.MinSeats; n <= filter.MaxSeats; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}

func (p *filterPanel) seatsSection() fyne.CanvasObject {
	from := widget.NewSelect(seatOptions(), nil)
	from.Selected = strconv.Itoa(p.state.Seats.From)
	from.OnChanged = func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			p.dispatchAndRebuild(filter.SetSeatsFrom{Seats: n})
		}
	}
	to := widget.NewSelect(seatOptions(), nil)
	to.Selected = strconv.Itoa(p.state.Seats.To)
	to.OnChanged = func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			p.dispatchAndRebuild(filter.SetSeatsTo{Seats: n})
		}
	}
	row := container.NewHBox(
		widget.NewLabel(lang.X("filter.seats.between", "Between:")), from,
		widget.NewLabel(lang.X("filter.seats.and", "And:")), to,
	)
	return filterSection(lang.X("filter.seats.title", "Number of seats"), row)
}

func (p *filterPanel) datesSection() fyne.CanvasObject {
	startEntry := newDateEntry(p.state.Dates.Start, func(t time.Time) {
		p.dispatchAndRebuild(filter.SetStartDate{Date: t})
	})
	endEntry := newDateEntry(p.state.Dates.End, func(t time.Time) {
		p.dispatchAndRebuild(filter.SetEndDate{Date: t})
	})
	clearStart := widget.NewButton(lang.X("filter.dates.clear", "Clear"), func() {
		p.dispatchAndRebuild(filter.ClearStartDate{})
	})
	clearEnd := widget.NewButton(lang.X("filter.dates.clear", "Clear"), func() {
		p.dispatchAndRebuild(filter.ClearEndDate{})
	})
	clearStart.Importance = widget.LowImportance
	clearEnd.Importance = widget.LowImportance

	entryH := startEntry.MinSize().Height
	form := container.New(
		layout.NewFormLayout(),
		widget.NewLabel(lang.X("filter.dates.start", "Start:")),
		container.NewHBox(container.NewGridWrap(fyne.NewSize(130, entryH), startEntry), clearStart),
		widget.NewLabel(lang.X("filter.dates.end", "End:")),
		container.NewHBox(container.NewGridWrap(fyne.NewSize(130, entryH), endEntry), clearEnd),
	)
	var body fyne.CanvasObject = form
	if off := p.state.Dates.DayStart; off != 0 {
		hint := newSubtleText(lang.X("filter.dates.day_start", "Days start at {{.Hours}}h", map[string]any{"Hours": off}))
		body = container.NewVBox(form, hint)
	}
	return filterSection(lang.X("filter.dates.title", "Date"), body)
}

func (p *filterPanel) cardsSection() fyne.CanvasObject {
	p.cards = newCardGrid(p.state.Cards, func(abbr string, on bool) {
		p.dispatch(filter.ToggleCard{Abbr: abbr, On: on})
		p.cards.update(p.state.Cards)
	})
	preset := func(key, fallback string, pr filter.CardPreset) fyne.CanvasObject {
		b := widget.NewButton(lang.X(key, fallback), func() {
			p.dispatch(filter.SetCards{Preset: pr})
			p.cards.update(p.state.Cards)
		})
		b.Importance = widget.LowImportance
		return b
	}
	presets := container.NewHBox(
		preset("filter.cards.all", "All", filter.CardsAll),
		preset("filter.cards.suited", "Suited", filter.CardsSuited),
		preset("filter.cards.offsuit", "Offsuit", filter.CardsOffsuit),
		preset("filter.cards.pairs", "Pairs", filter.CardsPairs),
		preset("filter.cards.none", "None", filter.CardsNone),
	)
	return filterSection(lang.X("filter.cards.title", "Hole cards"), container.NewVBox(presets, p.cards.CanvasObject()))
}

func (p *filterPanel) groupsSection() fyne.CanvasObject {
	g := p.state.Groups
	check := func(key, fallback string, on bool, grp filter.Group) fyne.CanvasObject {
		c := widget.NewCheck(lang.X(key, fallback), nil)
		c.Checked = on
		c.OnChanged = func(v bool) { p.dispatch(filter.ToggleGroup{Group: grp, On: v}) }
		return c
	}
	minHands := newCommitEntry()
	minHands.SetText(strconv.Itoa(g.MinHands))
	commit := func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			minHands.SetText(strconv.Itoa(p.state.Groups.MinHands))
			return
		}
		p.dispatch(filter.SetMinHands{Hands: n})
		minHands.SetText(strconv.Itoa(p.state.Groups.MinHands))
	}
	minHands.onCommit = commit
	minHands.OnSubmitted = commit

	body := container.NewVBox(
		container.NewGridWithColumns(2,
			check("filter.groups.limits", "Show each limit", g.Limits, filter.GroupLimits),
			check("filter.groups.positions", "Show each position", g.Positions, filter.GroupPositions),
			check("filter.groups.seats", "Show each seat count", g.Seats, filter.GroupSeats),
			check("filter.groups.all_players", "All players", g.AllPlayers, filter.GroupAllPlayers),
		),
		container.NewHBox(
			widget.NewLabel(lang.X("filter.groups.min_hands", "Min hands:")),
			container.NewGridWrap(fyne.NewSize(80, minHands.MinSize().Height), minHands),
		),
	)
	return filterSection(lang.X("filter.groups.title", "Grouping"), body)
}

func (p *filterPanel) graphSection() fyne.CanvasObject {
	opt := func(key, fallback string, on bool, o filter.GraphOption) fyne.CanvasObject {
		c := widget.NewCheck(lang.X(key, fallback), nil)
		c.Checked = on
		c.OnChanged = func(v bool) { p.dispatch(filter.ToggleGraphOption{Option: o, On: v}) }
		return c
	}
	g := p.state.Graph

	unit := widget.NewRadioGroup([]string{string(filter.UnitCurrency), string(filter.UnitBigBlind)}, nil)
	unit.Horizontal = true
	unit.Required = true
	unit.Selected = string(p.state.Unit)
	unit.OnChanged = func(sel string) {
		p.dispatch(filter.SetUnit{Unit: filter.Unit(sel)})
	}

	body := container.NewVBox(
		opt("filter.graph.showdown", "Showdown winnings", g.Showdown, filter.GraphShowdown),
		opt("filter.graph.non_showdown", "Non-showdown winnings", g.NonShowdown, filter.GraphNonShowdown),
		opt("filter.graph.ev", "All-in EV", g.EV, filter.GraphEV),
		container.NewHBox(widget.NewLabel(lang.X("filter.graph.unit", "Unit:")), unit),
	)
	return filterSection(lang.X("filter.graph.title", "Graphing"), body)
}

package querytpl

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

type fakeResolver struct {
	sites   map[string]int64
	players map[int64]map[string]int64
	err     error
	calls   int
}

func (f *fakeResolver) SiteID(_ context.Context, site string) (int64, bool, error) {
	f.calls++
	if f.err != nil {
		return 0, false, f.err
	}
	id, ok := f.sites[site]
	return id, ok, nil
}

func (f *fakeResolver) PlayerID(_ context.Context, siteID int64, name string) (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	id, ok := f.players[siteID][name]
	return id, ok, nil
}

func newResolver() *fakeResolver {
	return &fakeResolver{
		sites: map[string]int64{"PokerStars": 2, "Winamax": 7},
		players: map[int64]map[string]int64{
			2: {"hero": 11},
			7: {"l'autre": 42},
		},
	}
}

func baseState() filter.State {
	st := filter.NewState(filter.Options{
		Sites:      []string{"PokerStars", "Winamax", "Unknown"},
		Heroes:     map[string]string{"PokerStars": "hero", "Winamax": "l'autre", "Unknown": "x"},
		Games:      []string{"holdem", "omahahi"},
		Currencies: []string{"USD", "EUR"},
		Limits: []filter.LimitOption{
			{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 2, Type: filter.LimitNo}},
			{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 5, Type: filter.LimitNo}},
			{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 10, Type: filter.LimitFixed}},
			{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 4, Type: filter.LimitPot}},
		},
	}, filter.GraphDisplay(), 0)
	st.Dates.Loc = time.UTC
	return st
}

func TestLimitClauseScenario(t *testing.T) {
	t.Parallel()

	q := LimitClause(filter.MustParseLimits("2nl", "5nl", "10fl"))
	want := "(gt.limitType = 'fl' AND gt.bigBlind IN (10)) OR " +
		"(gt.limitType = 'pl' AND gt.bigBlind IN (-1)) OR " +
		"(gt.limitType = 'nl' AND gt.bigBlind IN (2,5)) OR " +
		"(gt.limitType = 'hp' AND gt.bigBlind IN (-1)) OR " +
		"(gt.limitType = 'cn' AND gt.bigBlind IN (-1))"
	if got := Inline(q); got != want {
		t.Fatalf("LimitClause =\n%s\nwant\n%s", got, want)
	}
	if n := strings.Count(q.SQL, "?"); n != len(q.Args) {
		t.Fatalf("bind markers = %d, args = %d", n, len(q.Args))
	}
}

func TestLimitClauseOneTermPerType(t *testing.T) {
	t.Parallel()

	selections := [][]string{
		nil,
		{"2nl"},
		{"5nl", "2nl", "2nl"},
		{"1fl", "2pl", "3nl", "4hp", "5cn"},
	}
	for _, sel := range selections {
		q := LimitClause(filter.MustParseLimits(sel...))
		for _, lt := range filter.LimitTypes {
			needle := "(gt.limitType = '" + string(lt) + "' AND gt.bigBlind IN ("
			if c := strings.Count(Inline(q), needle); c != 1 {
				t.Fatalf("selection %v: %d terms for %s, want 1", sel, c, lt)
			}
		}
		if strings.Count(q.SQL, "(") != strings.Count(q.SQL, ")") {
			t.Fatalf("selection %v: unbalanced parens in %s", sel, q.SQL)
		}
	}
}

func TestLimitClauseDeterministicOrder(t *testing.T) {
	t.Parallel()

	a := Inline(LimitClause(filter.MustParseLimits("5nl", "2nl", "10fl")))
	b := Inline(LimitClause(filter.MustParseLimits("10fl", "2nl", "5nl")))
	if a != b {
		t.Fatalf("order dependent output:\n%s\n%s", a, b)
	}
}

func TestExpandGameTest(t *testing.T) {
	t.Parallel()

	tpl := New(newResolver())

	tests := []struct {
		name  string
		games []string
		want  string
	}{
		{name: "all", games: []string{"holdem", "omahahi"}, want: "AND gt.category IN ('holdem','omahahi')"},
		{name: "single value keeps list syntax", games: []string{"holdem"}, want: "AND gt.category IN ('holdem')"},
		{name: "none forces no match", games: nil, want: "AND gt.category IS NULL"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := filter.Apply(baseState(), filter.SetAll{Category: filter.CategoryGames, On: false})
			for _, g := range tt.games {
				st = filter.Apply(st, filter.ToggleGame{Game: g, On: true})
			}
			q, err := tpl.Expand(context.Background(), "<game_test>", st)
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			if got := Inline(q); got != tt.want {
				t.Fatalf("game_test = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandPlayerAndSiteTests(t *testing.T) {
	t.Parallel()

	r := newResolver()
	tpl := New(r)
	q, err := tpl.Expand(context.Background(), "hp.playerId IN <player_test> AND s.id IN <site_test>", baseState())
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if want := []any{int64(11), int64(42), int64(2), int64(7)}; !reflect.DeepEqual(q.Args, want) {
		t.Fatalf("args = %v, want %v", q.Args, want)
	}
	if got, want := q.SQL, "hp.playerId IN (?,?) AND s.id IN (?,?)"; got != want {
		t.Fatalf("sql = %q, want %q", got, want)
	}
	if r.calls != 3 {
		t.Fatalf("site lookups = %d, want 3 (resolved once per expand)", r.calls)
	}
}

func TestExpandSkipsUnresolvedHeroes(t *testing.T) {
	t.Parallel()

	st := filter.Apply(baseState(), filter.SetHero{Site: "Winamax", Name: "nobody"})
	st = filter.Apply(st, filter.SetHero{Site: "PokerStars", Name: "  "})
	q, err := New(newResolver()).Expand(context.Background(), "IN <player_test>", st)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if q.SQL != "IN (NULL)" || len(q.Args) != 0 {
		t.Fatalf("player_test = %q %v, want empty list", q.SQL, q.Args)
	}
}

func TestExpandResolverError(t *testing.T) {
	t.Parallel()

	r := newResolver()
	r.err = errors.New("database is locked")
	_, err := New(r).Expand(context.Background(), "<player_test>", baseState())
	if err == nil || !strings.Contains(err.Error(), "database is locked") {
		t.Fatalf("err = %v, want wrapped resolver error", err)
	}
}

func TestExpandPositionQuotesLabels(t *testing.T) {
	t.Parallel()

	st := filter.Apply(baseState(), filter.SetAll{Category: filter.CategoryPositions, On: false})
	st = filter.Apply(st, filter.TogglePosition{Position: "S", On: true})
	st = filter.Apply(st, filter.TogglePosition{Position: "0", On: true})

	q, err := New(nil).Expand(context.Background(), "<position_test>", st)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got, want := Inline(q), "AND hp.position IN ('0','S')"; got != want {
		t.Fatalf("position_test = %q, want %q", got, want)
	}
}

func TestExpandValuesAreBoundNotSpliced(t *testing.T) {
	t.Parallel()

	hostile := "x') OR 1=1 --"
	st := filter.NewState(filter.Options{Currencies: []string{hostile}}, filter.GraphDisplay(), 0)

	q, err := New(nil).Expand(context.Background(), "<currency_test>", st)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if strings.Contains(q.SQL, hostile) {
		t.Fatalf("value spliced into SQL: %q", q.SQL)
	}
	if q.SQL != "AND gt.currency IN (?)" || q.Args[0] != hostile {
		t.Fatalf("currency_test = %q %v", q.SQL, q.Args)
	}
	if got, want := Inline(q), "AND gt.currency IN ('x'') OR 1=1 --')"; got != want {
		t.Fatalf("inline = %q, want %q", got, want)
	}
}

func TestExpandDates(t *testing.T) {
	t.Parallel()

	st := baseState()
	st.Dates.DayStart = 5
	st = filter.Apply(st, filter.SetStartDate{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	st = filter.Apply(st, filter.SetEndDate{Date: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)})

	q, err := New(nil).Expand(context.Background(), "h.startTime >= <startdate_test> AND h.startTime <= <enddate_test>", st)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := "h.startTime >= '2024-06-01 05:00:00' AND h.startTime <= '2024-07-01 04:59:59'"
	if got := Inline(q); got != want {
		t.Fatalf("dates = %q, want %q", got, want)
	}
}

func TestExpandCardsAndSeats(t *testing.T) {
	t.Parallel()

	st := baseState()
	q, err := New(nil).Expand(context.Background(), "x <cards_test> <seats_test>", st)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got, want := Inline(q), "x  AND h.seats BETWEEN 2 AND 10"; got != want {
		t.Fatalf("all cards = %q, want %q", got, want)
	}

	st = filter.Apply(st, filter.SetCards{Preset: filter.CardsNone})
	st = filter.Apply(st, filter.ToggleCard{Abbr: "AKs", On: true})
	st = filter.Apply(st, filter.SetSeatsFrom{Seats: 6})
	q, err = New(nil).Expand(context.Background(), "<cards_test> <seats_test>", st)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got, want := Inline(q), "AND hp.startCards IN ('AKs') AND h.seats BETWEEN 6 AND 10"; got != want {
		t.Fatalf("partial cards = %q, want %q", got, want)
	}
}

func TestExpandLeavesUnknownPlaceholders(t *testing.T) {
	t.Parallel()

	in := "SELECT 1 WHERE 1=1 <mystery_test> <game_test> <not a token>"
	q, err := New(nil).Expand(context.Background(), in, baseState())
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !strings.Contains(q.SQL, "<mystery_test>") || !strings.Contains(q.SQL, "<not a token>") {
		t.Fatalf("unknown tokens were touched: %q", q.SQL)
	}
	if strings.Contains(q.SQL, "<game_test>") {
		t.Fatalf("known token left in place: %q", q.SQL)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	t.Parallel()

	tpl := New(newResolver())
	first, err := tpl.Expand(context.Background(), ringProfitFixture, baseState())
	if err != nil {
		t.Fatalf("first expand: %v", err)
	}
	second, err := tpl.Expand(context.Background(), first.SQL, baseState())
	if err != nil {
		t.Fatalf("second expand: %v", err)
	}
	if second.SQL != first.SQL || len(second.Args) != 0 {
		t.Fatalf("re-expansion changed the query:\n%s\n%s (args %v)", first.SQL, second.SQL, second.Args)
	}
	if n := strings.Count(first.SQL, "?"); n != len(first.Args) {
		t.Fatalf("bind markers = %d, args = %d", n, len(first.Args))
	}
}

const ringProfitFixture = `SELECT hp.handId, hp.totalProfit
FROM HandsPlayers hp
INNER JOIN Hands h ON h.id = hp.handId
INNER JOIN Gametypes gt ON gt.id = h.gametypeId
WHERE hp.playerId IN <player_test>
  AND h.startTime >= <startdate_test>
  AND h.startTime <= <enddate_test>
  <limit_test>
  <game_test>
  <currency_test>
  <type_test>
ORDER BY h.startTime`

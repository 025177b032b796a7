package persistence

import (
	"context"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/AkatukiSora/pokergraph/internal/config"
	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/querytpl"
	"github.com/AkatukiSora/pokergraph/internal/series"
)

const pokerStarsID = 2

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), config.Database{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "hands.db"),
		MaxOpenConns: 1,
		BusyTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ev(v int64) *int64 { return &v }

// seedRing stores three NL hold'em hands for "hero" on PokerStars plus one
// hand for another player that must never show up.
func seedRing(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	hero, err := store.EnsurePlayer(ctx, pokerStarsID, "hero")
	if err != nil {
		t.Fatalf("ensure hero: %v", err)
	}
	villain, err := store.EnsurePlayer(ctx, pokerStarsID, "villain")
	if err != nil {
		t.Fatalf("ensure villain: %v", err)
	}
	nl, err := store.InsertGametype(ctx, Gametype{
		SiteID: pokerStarsID, Currency: "USD", Type: filter.GameTypeRing,
		Category: "holdem", LimitType: filter.LimitNo, SmallBlind: 50, BigBlind: 100,
	})
	if err != nil {
		t.Fatalf("insert gametype: %v", err)
	}
	fl, err := store.InsertGametype(ctx, Gametype{
		SiteID: pokerStarsID, Currency: "EUR", Type: filter.GameTypeRing,
		Category: "razz", LimitType: filter.LimitFixed, SmallBlind: 10, BigBlind: 20,
	})
	if err != nil {
		t.Fatalf("insert gametype: %v", err)
	}

	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	hands := []Hand{
		{SiteHandNo: "1", GametypeID: nl, StartTime: base, Seats: 6, Players: []HandPlayer{
			{PlayerID: hero, Position: "B", StartCards: "AKs", TotalProfit: 500, SawShowdown: true, AllInEV: ev(400)},
			{PlayerID: villain, Position: "S", TotalProfit: -500},
		}},
		{SiteHandNo: "2", GametypeID: nl, StartTime: base.Add(time.Minute), Seats: 6, Players: []HandPlayer{
			{PlayerID: hero, Position: "0", StartCards: "72o", TotalProfit: -200},
		}},
		{SiteHandNo: "3", GametypeID: fl, StartTime: base.Add(2 * time.Minute), Seats: 8, Players: []HandPlayer{
			{PlayerID: hero, Position: "3", TotalProfit: 40, SawShowdown: true},
		}},
	}
	if err := store.InsertHands(ctx, hands); err != nil {
		t.Fatalf("insert hands: %v", err)
	}
}

func loadState(t *testing.T, store *Store) filter.State {
	t.Helper()
	ctx := context.Background()
	games, err := store.Games(ctx)
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	currencies, err := store.Currencies(ctx)
	if err != nil {
		t.Fatalf("currencies: %v", err)
	}
	limits, err := store.CashLimits(ctx)
	if err != nil {
		t.Fatalf("limits: %v", err)
	}
	st := filter.NewState(filter.Options{
		Sites:      []string{"PokerStars"},
		Heroes:     map[string]string{"PokerStars": "hero"},
		Games:      games,
		Currencies: currencies,
		Limits:     limits,
	}, filter.GraphDisplay(), 0)
	st.Dates.Loc = time.UTC
	return st
}

func runProfit(t *testing.T, store *Store, st filter.State) []series.HandResult {
	t.Helper()
	ctx := context.Background()
	q, err := querytpl.New(store).Expand(ctx, ProfitTemplate(st.Type, st.Unit), st)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	rows, err := store.HandResults(ctx, q)
	if err != nil {
		t.Fatalf("hand results: %v", err)
	}
	return rows
}

func TestOpenMigratesAndSeedsSites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	version, err := SchemaVersion(store.DB().DB)
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if version != 3 {
		t.Fatalf("schema version = %d, want 3", version)
	}

	sites, err := store.Sites(ctx)
	if err != nil {
		t.Fatalf("sites: %v", err)
	}
	if len(sites) == 0 || sites[1] != "PokerStars" {
		t.Fatalf("sites = %v, want PokerStars seeded with id 2", sites)
	}

	id, ok, err := store.SiteID(ctx, "Winamax")
	if err != nil || !ok || id != 15 {
		t.Fatalf("SiteID(Winamax) = %d, %v, %v", id, ok, err)
	}
	if _, ok, err := store.SiteID(ctx, "Nowhere"); err != nil || ok {
		t.Fatalf("SiteID(Nowhere) found = %v, err = %v", ok, err)
	}
}

func TestLookups(t *testing.T) {
	store := openTestStore(t)
	seedRing(t, store)
	ctx := context.Background()

	games, err := store.Games(ctx)
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	if !reflect.DeepEqual(games, []string{"holdem", "razz"}) {
		t.Fatalf("games = %v", games)
	}

	limits, err := store.CashLimits(ctx)
	if err != nil {
		t.Fatalf("limits: %v", err)
	}
	want := []filter.LimitOption{
		{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 100, Type: filter.LimitNo}},
		{GameType: filter.GameTypeRing, Limit: filter.Limit{BigBlind: 20, Type: filter.LimitFixed}},
	}
	if !reflect.DeepEqual(limits, want) {
		t.Fatalf("limits = %v, want %v", limits, want)
	}

	types, err := store.GameTypes(ctx)
	if err != nil || !reflect.DeepEqual(types, []filter.GameType{filter.GameTypeRing}) {
		t.Fatalf("game types = %v, %v", types, err)
	}

	id, ok, err := store.PlayerID(ctx, pokerStarsID, "hero")
	if err != nil || !ok || id == 0 {
		t.Fatalf("PlayerID(hero) = %d, %v, %v", id, ok, err)
	}
	if _, ok, _ := store.PlayerID(ctx, 15, "hero"); ok {
		t.Fatalf("hero found on the wrong site")
	}

	count, err := store.HandCount(ctx)
	if err != nil || count != 3 {
		t.Fatalf("hand count = %d, %v, want 3", count, err)
	}
}

func TestHandResultsEndToEnd(t *testing.T) {
	store := openTestStore(t)
	seedRing(t, store)

	st := loadState(t, store)
	rows := runProfit(t, store, st)
	if len(rows) != 3 {
		t.Fatalf("rows = %+v, want 3 hero hands", rows)
	}
	gotProfit := []float64{rows[0].Profit, rows[1].Profit, rows[2].Profit}
	if !reflect.DeepEqual(gotProfit, []float64{500, -200, 40}) {
		t.Fatalf("profits = %v", gotProfit)
	}
	if !rows[0].Showdown || rows[1].Showdown {
		t.Fatalf("showdown flags = %v %v", rows[0].Showdown, rows[1].Showdown)
	}
	if rows[0].AllInEV != 400 || rows[1].AllInEV != -200 {
		t.Fatalf("all-in ev = %v %v, want 400 and profit fallback -200", rows[0].AllInEV, rows[1].AllInEV)
	}

	g, err := series.Build(rows, st.Unit)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := series.Last(g.Profit); got != 3.4 {
		t.Fatalf("final profit = %v, want 3.4", got)
	}
}

func TestHandResultsFilters(t *testing.T) {
	store := openTestStore(t)
	seedRing(t, store)

	tests := []struct {
		name   string
		intent filter.Intent
		want   int
	}{
		{name: "all", intent: filter.SetMinHands{Hands: 0}, want: 3},
		{name: "game", intent: filter.ToggleGame{Game: "razz", On: false}, want: 2},
		{name: "limit", intent: filter.ToggleLimit{Limit: filter.Limit{BigBlind: 100, Type: filter.LimitNo}, On: false}, want: 1},
		{name: "currency", intent: filter.ToggleCurrency{Currency: "USD", On: false}, want: 1},
		{name: "position", intent: filter.TogglePosition{Position: "B", On: false}, want: 2},
		{name: "seats", intent: filter.SetSeatsFrom{Seats: 7}, want: 1},
		{name: "cards", intent: filter.SetCards{Preset: filter.CardsSuited}, want: 1},
		{name: "start date", intent: filter.SetStartDate{Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)}, want: 0},
		{name: "no sites", intent: filter.SetAll{Category: filter.CategorySites, On: false}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := filter.Apply(loadState(t, store), tt.intent)
			if got := len(runProfit(t, store, st)); got != tt.want {
				t.Fatalf("rows = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandResultsInBigBlinds(t *testing.T) {
	store := openTestStore(t)
	seedRing(t, store)

	st := filter.Apply(loadState(t, store), filter.SetUnit{Unit: filter.UnitBigBlind})
	rows := runProfit(t, store, st)
	g, err := series.Build(rows, st.Unit)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// +5bb, -2bb, +2bb at the 10/20 razz table.
	if got := series.Last(g.Profit); got != 5 {
		t.Fatalf("final profit = %v bb, want 5", got)
	}
}

func TestTourneyResults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	hero, err := store.EnsurePlayer(ctx, pokerStarsID, "hero")
	if err != nil {
		t.Fatalf("ensure hero: %v", err)
	}
	base := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	for i, tc := range []struct {
		buyin, fee int
		winnings   int64
	}{{1000, 100, 0}, {1000, 100, 4500}, {500, 50, 0}} {
		if err := store.InsertTourney(ctx, Tourney{
			SiteID: pokerStarsID, Currency: "USD", Buyin: tc.buyin, Fee: tc.fee,
			Category: "holdem", LimitType: filter.LimitNo,
			SiteTourneyNo: string(rune('a' + i)), StartTime: base.Add(time.Duration(i) * time.Hour),
			PlayerID: hero, Winnings: tc.winnings,
		}); err != nil {
			t.Fatalf("insert tourney: %v", err)
		}
	}

	buyins, err := store.TourneyBuyins(ctx)
	if err != nil || !reflect.DeepEqual(buyins, []int{500, 1000}) {
		t.Fatalf("buyins = %v, %v", buyins, err)
	}
	cats, _ := store.TourneyCategories(ctx)
	limits, _ := store.TourneyLimits(ctx)

	st := filter.NewState(filter.Options{
		Sites:             []string{"PokerStars"},
		Heroes:            map[string]string{"PokerStars": "hero"},
		TourneyCategories: cats,
		TourneyLimits:     limits,
		TourneyBuyins:     buyins,
	}, filter.TourneyDisplay(), 0)
	st.Dates.Loc = time.UTC

	rows := runProfit(t, store, st)
	got := make([]float64, len(rows))
	for i, r := range rows {
		got[i] = r.Profit
	}
	if !reflect.DeepEqual(got, []float64{-1100, 3400, -550}) {
		t.Fatalf("tourney profits = %v", got)
	}

	st = filter.Apply(st, filter.ToggleTourneyBuyin{Buyin: 500, On: false})
	if n := len(runProfit(t, store, st)); n != 2 {
		t.Fatalf("rows after dropping 5.00 buy-in = %d, want 2", n)
	}
}

func TestDateRangeIncludesBothEnds(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	hero, err := store.EnsurePlayer(ctx, pokerStarsID, "hero")
	if err != nil {
		t.Fatalf("ensure hero: %v", err)
	}
	nl, err := store.InsertGametype(ctx, Gametype{
		SiteID: pokerStarsID, Currency: "USD", Type: filter.GameTypeRing,
		Category: "holdem", LimitType: filter.LimitNo, SmallBlind: 50, BigBlind: 100,
	})
	if err != nil {
		t.Fatalf("insert gametype: %v", err)
	}

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		day.Add(-time.Second),
		day,
		day.Add(12 * time.Hour),
		day.Add(24*time.Hour - time.Second),
		day.Add(24 * time.Hour),
	}
	hands := make([]Hand, len(times))
	for i, at := range times {
		hands[i] = Hand{SiteHandNo: strconv.Itoa(i + 1), GametypeID: nl, StartTime: at, Seats: 6, Players: []HandPlayer{
			{PlayerID: hero, Position: "B", TotalProfit: int64(i + 1)},
		}}
		if err := store.InsertTourney(ctx, Tourney{
			SiteID: pokerStarsID, Currency: "USD", Buyin: 100, Fee: 10,
			Category: "holdem", LimitType: filter.LimitNo,
			SiteTourneyNo: strconv.Itoa(i + 1), StartTime: at, PlayerID: hero,
		}); err != nil {
			t.Fatalf("insert tourney: %v", err)
		}
	}
	if err := store.InsertHands(ctx, hands); err != nil {
		t.Fatalf("insert hands: %v", err)
	}

	ring := loadState(t, store)
	ring = filter.Apply(ring, filter.SetStartDate{Date: day})
	ring = filter.Apply(ring, filter.SetEndDate{Date: day})
	rows := runProfit(t, store, ring)
	got := make([]float64, len(rows))
	for i, r := range rows {
		got[i] = r.Profit
	}
	if !reflect.DeepEqual(got, []float64{2, 3, 4}) {
		t.Fatalf("ring profits = %v, want the 00:00:00, 12:00:00 and 23:59:59 hands", got)
	}

	buyins, _ := store.TourneyBuyins(ctx)
	cats, _ := store.TourneyCategories(ctx)
	limits, _ := store.TourneyLimits(ctx)
	tour := filter.NewState(filter.Options{
		Sites:             []string{"PokerStars"},
		Heroes:            map[string]string{"PokerStars": "hero"},
		TourneyCategories: cats,
		TourneyLimits:     limits,
		TourneyBuyins:     buyins,
	}, filter.TourneyDisplay(), 0)
	tour.Dates.Loc = time.UTC
	tour = filter.Apply(tour, filter.SetStartDate{Date: day})
	tour = filter.Apply(tour, filter.SetEndDate{Date: day})
	if n := len(runProfit(t, store, tour)); n != 3 {
		t.Fatalf("tourney rows = %d, want 3", n)
	}
}

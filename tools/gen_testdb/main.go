// gen_testdb fills a SQLite database with synthetic hands and tournaments
// so the graph viewer has something to draw.
//
// Usage:
//
//	go run ./tools/gen_testdb [flags]
//
// Flags:
//
//	--db          output database path (default: "./testdata/pokergraph.db")
//	--hero        hero screen name (default: "hero")
//	--site-id     site id from the Sites table (default: 2, PokerStars)
//	--hands       number of ring hands (default: 5000)
//	--tourneys    number of tournament results (default: 200)
//	--seed        random seed; 0 = use current time (default: 0)
//	--start-date  timestamp of the first hand, YYYY-MM-DD (default: 2025-01-01)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/AkatukiSora/pokergraph/internal/applog"
	"github.com/AkatukiSora/pokergraph/internal/config"
	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/persistence"
)

const batchSize = 500

// stake blinds are in cents.
type stake struct {
	category string
	limit    filter.LimitType
	currency string
	sb, bb   int
	seats    int
}

var stakes = []stake{
	{category: "holdem", limit: filter.LimitNo, currency: "USD", sb: 1, bb: 2, seats: 6},
	{category: "holdem", limit: filter.LimitNo, currency: "USD", sb: 50, bb: 100, seats: 9},
	{category: "holdem", limit: filter.LimitFixed, currency: "USD", sb: 100, bb: 200, seats: 9},
	{category: "omahahi", limit: filter.LimitPot, currency: "EUR", sb: 25, bb: 50, seats: 6},
	{category: "razz", limit: filter.LimitFixed, currency: "EUR", sb: 250, bb: 500, seats: 8},
}

var tourneyBuyins = [][2]int{{500, 50}, {1000, 100}, {2000, 200}}

func main() {
	dbPath := flag.String("db", filepath.Join(".", "testdata", "pokergraph.db"), "output database path")
	hero := flag.String("hero", "hero", "hero screen name")
	siteID := flag.Int64("site-id", 2, "site id")
	hands := flag.Int("hands", 5000, "number of ring hands")
	tourneys := flag.Int("tourneys", 200, "number of tournament results")
	seed := flag.Int64("seed", 0, "random seed; 0 = current time")
	startDate := flag.String("start-date", "2025-01-01", "first hand date, YYYY-MM-DD")
	flag.Parse()

	closeLog := applog.Init(applog.Options{File: "-"})
	defer closeLog()

	start, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --start-date: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	g := generator{
		rng:    rand.New(rand.NewSource(*seed)),
		siteID: *siteID,
		start:  start,
	}
	if err := g.run(context.Background(), *dbPath, *hero, *hands, *tourneys); err != nil {
		fmt.Fprintf(os.Stderr, "gen_testdb: %v\n", err)
		os.Exit(1)
	}
	slog.Info("database generated",
		"path", *dbPath,
		"hands", humanize.Comma(int64(*hands)),
		"tourneys", *tourneys,
		"seed", *seed,
	)
}

type generator struct {
	rng    *rand.Rand
	siteID int64
	start  time.Time
}

func (g generator) run(ctx context.Context, path, hero string, nHands, nTourneys int) error {
	store, err := persistence.Open(ctx, config.Database{
		Driver:       config.DriverSQLite,
		Path:         path,
		MaxOpenConns: 1,
		BusyTimeout:  5 * time.Second,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	heroID, err := store.EnsurePlayer(ctx, g.siteID, hero)
	if err != nil {
		return err
	}
	gametypes := make([]int64, len(stakes))
	for i, s := range stakes {
		id, err := store.InsertGametype(ctx, persistence.Gametype{
			SiteID: g.siteID, Currency: s.currency, Type: filter.GameTypeRing,
			Category: s.category, LimitType: s.limit, SmallBlind: s.sb, BigBlind: s.bb,
		})
		if err != nil {
			return err
		}
		gametypes[i] = id
	}

	cards := filter.CardAbbreviations()
	t := g.start
	batch := make([]persistence.Hand, 0, batchSize)
	for i := 0; i < nHands; i++ {
		si := g.rng.Intn(len(stakes))
		s := stakes[si]
		t = t.Add(time.Duration(30+g.rng.Intn(90)) * time.Second)
		batch = append(batch, persistence.Hand{
			SiteHandNo: strconv.Itoa(100000 + i),
			TableName:  fmt.Sprintf("Table %d", si+1),
			GametypeID: gametypes[si],
			StartTime:  t,
			Seats:      2 + g.rng.Intn(s.seats-1),
			Players: []persistence.HandPlayer{
				g.heroLine(heroID, s, cards),
			},
		})
		if len(batch) == batchSize {
			if err := store.InsertHands(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := store.InsertHands(ctx, batch); err != nil {
			return err
		}
	}

	for i := 0; i < nTourneys; i++ {
		b := tourneyBuyins[g.rng.Intn(len(tourneyBuyins))]
		rank := 1 + g.rng.Intn(90)
		var winnings int64
		if rank <= 10 {
			winnings = int64(b[0]) * int64(11-rank) * 2
		}
		if err := store.InsertTourney(ctx, persistence.Tourney{
			SiteID: g.siteID, Currency: "USD", Buyin: b[0], Fee: b[1],
			Category: "holdem", LimitType: filter.LimitNo,
			SiteTourneyNo: strconv.Itoa(900000 + i),
			StartTime:     g.start.Add(time.Duration(i) * 3 * time.Hour),
			PlayerID:      heroID, Rank: rank, Winnings: winnings,
		}); err != nil {
			return err
		}
	}
	return nil
}

// heroLine draws a result in big blinds with a slight winning edge. About
// a quarter of the hands reach showdown and one in twenty is an all-in.
func (g generator) heroLine(heroID int64, s stake, cards []string) persistence.HandPlayer {
	profitBB := g.rng.NormFloat64()*4 + 0.05
	p := persistence.HandPlayer{
		PlayerID:    heroID,
		Position:    filter.Positions[g.rng.Intn(len(filter.Positions))],
		StartCards:  cards[g.rng.Intn(len(cards))],
		TotalProfit: int64(profitBB * float64(s.bb)),
		SawShowdown: g.rng.Intn(4) == 0,
	}
	if g.rng.Intn(20) == 0 {
		ev := int64(float64(p.TotalProfit) * (0.5 + g.rng.Float64()))
		p.AllInEV = &ev
	}
	return p
}

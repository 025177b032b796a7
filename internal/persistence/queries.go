package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/querytpl"
	"github.com/AkatukiSora/pokergraph/internal/series"
)

// Profit query templates. Amounts stay in minor units; the big-blind
// variant is scaled by 100 so both come back as hundredths.
const (
	RingProfitInDollars = `SELECT hp.handId AS hand_id,
       hp.totalProfit AS profit,
       hp.sawShowdown AS showdown,
       COALESCE(hp.allInEV, hp.totalProfit) AS all_in_ev
FROM HandsPlayers hp
INNER JOIN Hands h ON h.id = hp.handId
INNER JOIN Gametypes gt ON gt.id = h.gametypeId
INNER JOIN Players p ON p.id = hp.playerId
INNER JOIN Sites s ON s.id = p.siteId
WHERE hp.playerId IN <player_test>
  AND s.id IN <site_test>
  AND h.startTime >= <startdate_test>
  AND h.startTime <= <enddate_test>
  <limit_test>
  <game_test>
  <currency_test>
  <type_test>
  <position_test>
  <seats_test>
  <cards_test>
  AND hp.tourneysPlayersId IS NULL
ORDER BY h.startTime, hp.handId`

	RingProfitInBB = `SELECT hp.handId AS hand_id,
       COALESCE(hp.totalProfit * 100.0 / NULLIF(gt.bigBlind, 0), 0) AS profit,
       hp.sawShowdown AS showdown,
       COALESCE(COALESCE(hp.allInEV, hp.totalProfit) * 100.0 / NULLIF(gt.bigBlind, 0), 0) AS all_in_ev
FROM HandsPlayers hp
INNER JOIN Hands h ON h.id = hp.handId
INNER JOIN Gametypes gt ON gt.id = h.gametypeId
INNER JOIN Players p ON p.id = hp.playerId
INNER JOIN Sites s ON s.id = p.siteId
WHERE hp.playerId IN <player_test>
  AND s.id IN <site_test>
  AND h.startTime >= <startdate_test>
  AND h.startTime <= <enddate_test>
  <limit_test>
  <game_test>
  <currency_test>
  <type_test>
  <position_test>
  <seats_test>
  <cards_test>
  AND hp.tourneysPlayersId IS NULL
ORDER BY h.startTime, hp.handId`

	// TourneyResults yields one row per finished tournament: winnings
	// minus buy-in and fee. Tournaments have no showdown split.
	TourneyResults = `SELECT tp.id AS hand_id,
       tp.winnings - tt.buyin - tt.fee AS profit,
       0 AS showdown,
       tp.winnings - tt.buyin - tt.fee AS all_in_ev
FROM TourneysPlayers tp
INNER JOIN Tourneys t ON t.id = tp.tourneyId
INNER JOIN TourneyTypes tt ON tt.id = t.tourneyTypeId
INNER JOIN Sites s ON s.id = tt.siteId
WHERE tp.playerId IN <player_test>
  AND s.id IN <site_test>
  AND t.startTime >= <startdate_test>
  AND t.startTime <= <enddate_test>
  <tourney_test>
ORDER BY t.startTime, tp.id`
)

// ProfitTemplate picks the template for the selected game type and unit.
func ProfitTemplate(gameType filter.GameType, unit filter.Unit) string {
	if gameType == filter.GameTypeTour {
		return TourneyResults
	}
	if unit == filter.UnitBigBlind {
		return RingProfitInBB
	}
	return RingProfitInDollars
}

func (s *Store) SiteID(ctx context.Context, site string) (int64, bool, error) {
	var id int64
	found, err := s.getOne(ctx, &id, `SELECT id FROM Sites WHERE name = ?`, site)
	if err != nil {
		return 0, false, fmt.Errorf("lookup site %q: %w", site, err)
	}
	return id, found, nil
}

func (s *Store) PlayerID(ctx context.Context, siteID int64, name string) (int64, bool, error) {
	var id int64
	found, err := s.getOne(ctx, &id, `SELECT id FROM Players WHERE name = ? AND siteId = ?`, name, siteID)
	if err != nil {
		return 0, false, fmt.Errorf("lookup player %q on site %d: %w", name, siteID, err)
	}
	return id, found, nil
}

// Sites lists every known site in id order.
func (s *Store) Sites(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.selectAll(ctx, &names, `SELECT name FROM Sites ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return names, nil
}

func (s *Store) Games(ctx context.Context) ([]string, error) {
	var games []string
	if err := s.selectAll(ctx, &games, `SELECT DISTINCT category FROM Gametypes ORDER BY category`); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *Store) Currencies(ctx context.Context) ([]string, error) {
	var currencies []string
	if err := s.selectAll(ctx, &currencies, `SELECT DISTINCT currency FROM Gametypes ORDER BY currency`); err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	return currencies, nil
}

type limitRow struct {
	Type      string `db:"type"`
	LimitType string `db:"limit_type"`
	BigBlind  int    `db:"big_blind"`
}

// CashLimits lists the distinct blind levels per game type, in the order
// the filter panel shows them. Rows with an unknown limit code are skipped.
func (s *Store) CashLimits(ctx context.Context) ([]filter.LimitOption, error) {
	var rows []limitRow
	err := s.selectAll(ctx, &rows, `SELECT DISTINCT type AS type, limitType AS limit_type, bigBlind AS big_blind
		FROM Gametypes
		ORDER BY type, limitType DESC, bigBlind DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cash limits: %w", err)
	}
	out := make([]filter.LimitOption, 0, len(rows))
	for _, r := range rows {
		lt := filter.LimitType(r.LimitType)
		if !lt.Valid() {
			slog.Debug("skipping unknown limit type", "limit_type", r.LimitType, "big_blind", r.BigBlind)
			continue
		}
		out = append(out, filter.LimitOption{
			GameType: filter.GameType(r.Type),
			Limit:    filter.Limit{BigBlind: r.BigBlind, Type: lt},
		})
	}
	return out, nil
}

func (s *Store) GameTypes(ctx context.Context) ([]filter.GameType, error) {
	var types []string
	if err := s.selectAll(ctx, &types, `SELECT DISTINCT type FROM Gametypes ORDER BY type`); err != nil {
		return nil, fmt.Errorf("list game types: %w", err)
	}
	out := make([]filter.GameType, len(types))
	for i, t := range types {
		out[i] = filter.GameType(t)
	}
	return out, nil
}

func (s *Store) TourneyCategories(ctx context.Context) ([]string, error) {
	var cats []string
	if err := s.selectAll(ctx, &cats, `SELECT DISTINCT category FROM TourneyTypes ORDER BY category`); err != nil {
		return nil, fmt.Errorf("list tourney categories: %w", err)
	}
	return cats, nil
}

func (s *Store) TourneyLimits(ctx context.Context) ([]string, error) {
	var limits []string
	if err := s.selectAll(ctx, &limits, `SELECT DISTINCT limitType FROM TourneyTypes ORDER BY limitType`); err != nil {
		return nil, fmt.Errorf("list tourney limits: %w", err)
	}
	return limits, nil
}

func (s *Store) TourneyBuyins(ctx context.Context) ([]int, error) {
	var buyins []int
	if err := s.selectAll(ctx, &buyins, `SELECT DISTINCT buyin FROM TourneyTypes ORDER BY buyin`); err != nil {
		return nil, fmt.Errorf("list tourney buyins: %w", err)
	}
	return buyins, nil
}

func (s *Store) HandResults(ctx context.Context, q querytpl.Query) ([]series.HandResult, error) {
	var rows []series.HandResult
	if err := s.selectAll(ctx, &rows, q.SQL, q.Args...); err != nil {
		return nil, fmt.Errorf("query hand results: %w", err)
	}
	return rows, nil
}

// HandCount returns the number of stored hands.
func (s *Store) HandCount(ctx context.Context) (int64, error) {
	var n int64
	if _, err := s.getOne(ctx, &n, `SELECT COUNT(*) FROM Hands`); err != nil {
		return 0, fmt.Errorf("count hands: %w", err)
	}
	return n, nil
}

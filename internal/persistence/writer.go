package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

// The writers below exist for seeding a SQLite database (tests and the
// synthetic data generator). Real databases are filled by an importer.

// Gametype describes one game/stake combination.
type Gametype struct {
	SiteID     int64
	Currency   string
	Type       filter.GameType
	Category   string
	LimitType  filter.LimitType
	SmallBlind int
	BigBlind   int
}

// HandPlayer is the hero's line in a hand. Amounts are in cents.
type HandPlayer struct {
	PlayerID    int64
	Position    filter.Position
	StartCards  string
	TotalProfit int64
	SawShowdown bool
	// AllInEV is nil when the hand had no all-in.
	AllInEV *int64
}

// Hand is one dealt hand with the seated players we track.
type Hand struct {
	SiteHandNo string
	TableName  string
	GametypeID int64
	StartTime  time.Time
	Seats      int
	Players    []HandPlayer
}

// Tourney is one tournament entry for a single player.
type Tourney struct {
	SiteID        int64
	Currency      string
	Buyin         int
	Fee           int
	Category      string
	LimitType     filter.LimitType
	SiteTourneyNo string
	StartTime     time.Time
	PlayerID      int64
	Rank          int
	Winnings      int64
}

// EnsurePlayer returns the id of name on siteID, creating the player when
// needed.
func (s *Store) EnsurePlayer(ctx context.Context, siteID int64, name string) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO Players(name, siteId) VALUES(?, ?) ON CONFLICT(name, siteId) DO NOTHING`), name, siteID); err != nil {
			return err
		}
		return tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM Players WHERE name = ? AND siteId = ?`), name, siteID)
	})
	if err != nil {
		return 0, fmt.Errorf("ensure player %q: %w", name, err)
	}
	return id, nil
}

// InsertGametype returns the id of g, inserting it when it does not exist.
func (s *Store) InsertGametype(ctx context.Context, g Gametype) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO Gametypes(
			siteId, currency, type, category, limitType, smallBlind, bigBlind
		) VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(siteId, currency, type, category, limitType, smallBlind, bigBlind) DO NOTHING`),
			g.SiteID, g.Currency, string(g.Type), g.Category, string(g.LimitType), g.SmallBlind, g.BigBlind,
		); err != nil {
			return err
		}
		return tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM Gametypes
			WHERE siteId = ? AND currency = ? AND type = ? AND category = ? AND limitType = ? AND smallBlind = ? AND bigBlind = ?`),
			g.SiteID, g.Currency, string(g.Type), g.Category, string(g.LimitType), g.SmallBlind, g.BigBlind)
	})
	if err != nil {
		return 0, fmt.Errorf("insert gametype: %w", err)
	}
	return id, nil
}

// InsertHands stores hands in one transaction.
func (s *Store) InsertHands(ctx context.Context, hands []Hand) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, h := range hands {
			var handID int64
			if err := tx.GetContext(ctx, &handID, tx.Rebind(`INSERT INTO Hands(
				tableName, siteHandNo, gametypeId, startTime, seats
			) VALUES(?, ?, ?, ?, ?) RETURNING id`),
				h.TableName, h.SiteHandNo, h.GametypeID, h.StartTime.UTC().Format(filter.DateLayout), h.Seats,
			); err != nil {
				return fmt.Errorf("hand %s: %w", h.SiteHandNo, err)
			}
			for _, p := range h.Players {
				if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO HandsPlayers(
					handId, playerId, position, startCards, totalProfit, sawShowdown, allInEV
				) VALUES(?, ?, ?, ?, ?, ?, ?)`),
					handID, p.PlayerID, string(p.Position), nullIfEmpty(p.StartCards), p.TotalProfit, boolToInt(p.SawShowdown), p.AllInEV,
				); err != nil {
					return fmt.Errorf("hand %s player %d: %w", h.SiteHandNo, p.PlayerID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert hands: %w", err)
	}
	return nil
}

// InsertTourney stores a tournament, its type and the player's result.
func (s *Store) InsertTourney(ctx context.Context, t Tourney) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var typeID int64
		if err := tx.GetContext(ctx, &typeID, tx.Rebind(`INSERT INTO TourneyTypes(
			siteId, currency, buyin, fee, category, limitType
		) VALUES(?, ?, ?, ?, ?, ?) RETURNING id`),
			t.SiteID, t.Currency, t.Buyin, t.Fee, t.Category, string(t.LimitType),
		); err != nil {
			return err
		}
		var tourneyID int64
		if err := tx.GetContext(ctx, &tourneyID, tx.Rebind(`INSERT INTO Tourneys(
			tourneyTypeId, siteTourneyNo, startTime
		) VALUES(?, ?, ?) RETURNING id`),
			typeID, t.SiteTourneyNo, t.StartTime.UTC().Format(filter.DateLayout),
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO TourneysPlayers(
			tourneyId, playerId, rank, winnings
		) VALUES(?, ?, ?, ?)`), tourneyID, t.PlayerID, t.Rank, t.Winnings)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert tourney %s: %w", t.SiteTourneyNo, err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up00002, Down00002)
}

// Site ids follow the numbering used by existing hand-history databases so
// a copied database keeps its foreign keys.
var supportedSites = []struct {
	id   int
	name string
	code string
}{
	{1, "Full Tilt Poker", "FT"},
	{2, "PokerStars", "PS"},
	{3, "Everleaf", "EV"},
	{9, "PartyPoker", "PP"},
	{10, "PacificPoker", "P8"},
	{14, "iPoker", "IP"},
	{15, "Winamax", "WM"},
	{17, "Cake", "CK"},
	{21, "Bovada", "BV"},
	{24, "WinningPoker", "WP"},
	{27, "GGPoker", "GG"},
	{30, "Unibet", "UN"},
}

func Up00002(ctx context.Context, tx *sql.Tx) error {
	for _, s := range supportedSites {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO Sites(id, name, code) VALUES(?, ?, ?)`,
			s.id, s.name, s.code,
		); err != nil {
			return fmt.Errorf("seed site %s: %w", s.name, err)
		}
	}
	return nil
}

func Down00002(ctx context.Context, tx *sql.Tx) error {
	for _, s := range supportedSites {
		if _, err := tx.ExecContext(ctx, `DELETE FROM Sites WHERE id = ?`, s.id); err != nil {
			return fmt.Errorf("remove site %s: %w", s.name, err)
		}
	}
	return nil
}

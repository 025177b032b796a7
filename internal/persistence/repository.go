package persistence

import (
	"context"

	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/querytpl"
	"github.com/AkatukiSora/pokergraph/internal/series"
)

// Repository is the read side of a hand-history database.
type Repository interface {
	querytpl.PlayerResolver

	Sites(ctx context.Context) ([]string, error)
	Games(ctx context.Context) ([]string, error)
	Currencies(ctx context.Context) ([]string, error)
	CashLimits(ctx context.Context) ([]filter.LimitOption, error)
	GameTypes(ctx context.Context) ([]filter.GameType, error)
	TourneyCategories(ctx context.Context) ([]string, error)
	TourneyLimits(ctx context.Context) ([]string, error)
	TourneyBuyins(ctx context.Context) ([]int, error)

	// HandResults runs an expanded profit query. Rows come back in the
	// query's order.
	HandResults(ctx context.Context, q querytpl.Query) ([]series.HandResult, error)

	Close() error
}

var _ Repository = (*Store)(nil)

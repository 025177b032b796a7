package application

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/AkatukiSora/pokergraph/internal/config"
	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/metrics"
	"github.com/AkatukiSora/pokergraph/internal/persistence"
	"github.com/AkatukiSora/pokergraph/internal/plot"
	"github.com/AkatukiSora/pokergraph/internal/querytpl"
	"github.com/AkatukiSora/pokergraph/internal/series"
)

// Refresh aborts. None of them is shown to the user as an error dialog.
var (
	ErrNoSites   = errors.New("no sites selected")
	ErrNoPlayers = errors.New("no player ids found")
	ErrNoLimits  = errors.New("no limits selected")
)

const (
	ringTitle    = "Profit graph for ring games"
	tourneyTitle = "Results graph for tournaments"
	noDataTitle  = "No Data for Player(s) Found"
)

// AppService is the interface that the UI layer depends on for filter
// options, graph refreshes and export. application.Service satisfies it.
type AppService interface {
	LoadOptions(ctx context.Context) (filter.Options, error)
	NewFilterState(ctx context.Context, display filter.Display) (filter.State, error)
	GenerateGraph(ctx context.Context, st filter.State, size plot.Size) (*GraphResult, error)
	Export(path string) (string, bool, error)
	LastPNG() []byte
	Close() error
}

// GraphResult is one finished refresh.
type GraphResult struct {
	Title   string
	Graph   *series.Graph
	PNG     []byte
	Image   image.Image
	Elapsed time.Duration
}

type Service struct {
	repo      persistence.Repository
	templater *querytpl.Templater
	exporter  *plot.Exporter
	sites     []config.Site
	dayStart  float64
}

var _ AppService = (*Service)(nil)

// NewService builds the graph service. cfg supplies the configured sites
// with their heroes and the day start offset.
func NewService(repo persistence.Repository, cfg config.Config) *Service {
	return &Service{
		repo:      repo,
		templater: querytpl.New(repo),
		exporter:  plot.NewExporter(),
		sites:     append([]config.Site(nil), cfg.Sites...),
		dayStart:  cfg.DayStart,
	}
}

// LoadOptions reads every selectable value from the database. Configured
// sites take precedence over the database's site list.
func (s *Service) LoadOptions(ctx context.Context) (filter.Options, error) {
	var opts filter.Options
	var err error

	opts.Heroes = make(map[string]string, len(s.sites))
	for _, site := range s.sites {
		opts.Sites = append(opts.Sites, site.Name)
		opts.Heroes[site.Name] = site.Hero
	}
	if len(opts.Sites) == 0 {
		if opts.Sites, err = s.repo.Sites(ctx); err != nil {
			return filter.Options{}, err
		}
	}
	if opts.Games, err = s.repo.Games(ctx); err != nil {
		return filter.Options{}, err
	}
	if opts.Currencies, err = s.repo.Currencies(ctx); err != nil {
		return filter.Options{}, err
	}
	if opts.Limits, err = s.repo.CashLimits(ctx); err != nil {
		return filter.Options{}, err
	}
	if opts.GameTypes, err = s.repo.GameTypes(ctx); err != nil {
		return filter.Options{}, err
	}
	if opts.TourneyCategories, err = s.repo.TourneyCategories(ctx); err != nil {
		return filter.Options{}, err
	}
	if opts.TourneyLimits, err = s.repo.TourneyLimits(ctx); err != nil {
		return filter.Options{}, err
	}
	if opts.TourneyBuyins, err = s.repo.TourneyBuyins(ctx); err != nil {
		return filter.Options{}, err
	}
	slog.Debug("filter options loaded",
		"sites", len(opts.Sites),
		"games", len(opts.Games),
		"limits", len(opts.Limits),
		"currencies", len(opts.Currencies),
	)
	return opts, nil
}

// NewFilterState loads the options and returns the default selection for
// the given section layout.
func (s *Service) NewFilterState(ctx context.Context, display filter.Display) (filter.State, error) {
	opts, err := s.LoadOptions(ctx)
	if err != nil {
		return filter.State{}, fmt.Errorf("load filter options: %w", err)
	}
	return filter.NewState(opts, display, s.dayStart), nil
}

// GenerateGraph runs one refresh for st. It returns one of the abort
// errors when the selection cannot produce a graph, and draws the
// placeholder graph when the query matched no hands.
func (s *Service) GenerateGraph(ctx context.Context, st filter.State, size plot.Size) (*GraphResult, error) {
	start := time.Now()

	if len(st.Sites.Selected()) == 0 {
		return nil, abort(ErrNoSites, metrics.ReasonNoSites)
	}
	resolved, err := s.templater.Resolve(ctx, st)
	if err != nil {
		return nil, err
	}
	if len(resolved.Heroes) == 0 {
		return nil, abort(ErrNoPlayers, metrics.ReasonNoPlayers)
	}
	if st.Type != filter.GameTypeTour && len(st.Limits.Selected()) == 0 {
		return nil, abort(ErrNoLimits, metrics.ReasonNoLimits)
	}

	q, err := s.templater.ExpandResolved(ctx, persistence.ProfitTemplate(st.Type, st.Unit), st, resolved)
	if err != nil {
		return nil, fmt.Errorf("expand profit query: %w", err)
	}
	rows, err := s.repo.HandResults(ctx, q)
	if err != nil {
		return nil, err
	}

	g, err := series.Build(rows, st.Unit)
	title := graphTitle(st.Type, resolved.Heroes)
	switch {
	case errors.Is(err, series.ErrNoData):
		g = series.Placeholder(st.Unit)
		title = noDataTitle
	case err != nil:
		return nil, fmt.Errorf("build series: %w", err)
	}

	png, img, err := plot.Render(plot.Result{Graph: g, Title: title, Options: st.Graph}, size)
	if err != nil {
		s.exporter.Store(nil)
		return nil, err
	}
	s.exporter.Store(png)

	elapsed := time.Since(start)
	metrics.RefreshDuration.Observe(elapsed.Seconds())
	if !g.Placeholder {
		metrics.GraphHands.Set(float64(g.Hands))
	} else {
		metrics.GraphHands.Set(0)
	}
	slog.Info("graph generated",
		"hands", len(rows),
		"unit", st.Unit,
		"type", st.Type,
		"elapsed", elapsed.Round(time.Millisecond),
	)
	return &GraphResult{Title: title, Graph: g, PNG: png, Image: img, Elapsed: elapsed}, nil
}

func abort(err error, reason string) error {
	slog.Warn("graph refresh aborted", "reason", err)
	metrics.RefreshAborts.WithLabelValues(reason).Inc()
	return err
}

func graphTitle(t filter.GameType, heroes []querytpl.Hero) string {
	var b strings.Builder
	if t == filter.GameTypeTour {
		b.WriteString(tourneyTitle)
	} else {
		b.WriteString(ringTitle)
	}
	for _, h := range heroes {
		fmt.Fprintf(&b, "\n%s on %s", h.Name, h.Site)
	}
	return b.String()
}

// Export writes the last graph to path, or to graph.png in the working
// directory when path is empty. It reports false, without error, when no
// graph has been drawn yet.
func (s *Service) Export(path string) (string, bool, error) {
	if path == "" {
		p, err := plot.DefaultExportPath()
		if err != nil {
			return "", false, err
		}
		path = p
	}
	ok, err := s.exporter.Export(path)
	if err != nil {
		return "", false, err
	}
	if !ok {
		slog.Debug("export skipped, nothing rendered")
		return "", false, nil
	}
	metrics.GraphExports.Inc()
	slog.Info("graph exported", "path", path)
	return path, true, nil
}

// LastPNG returns the most recent rendering, or nil.
func (s *Service) LastPNG() []byte {
	return s.exporter.PNG()
}

func (s *Service) Close() error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Close()
}

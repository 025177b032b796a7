package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/pokergraph/internal/application"
	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/metrics"
	"github.com/AkatukiSora/pokergraph/internal/plot"
	"github.com/AkatukiSora/pokergraph/internal/watcher"
)

type appService interface {
	NewFilterState(ctx context.Context, display filter.Display) (filter.State, error)
	GenerateGraph(ctx context.Context, st filter.State, size plot.Size) (*application.GraphResult, error)
	Export(path string) (string, bool, error)
	Close() error
}

// Meta carries startup details the window needs.
type Meta struct {
	Version string
	// DBPath is watched for new hands; empty disables the watcher.
	DBPath    string
	GraphSize plot.Size
}

type graphMode int

const (
	modeRing graphMode = iota
	modeTourney
)

func (m graphMode) display() filter.Display {
	if m == modeTourney {
		return filter.TourneyDisplay()
	}
	return filter.GraphDisplay()
}

// App is the main application controller
type App struct {
	ctx       context.Context
	cancel    context.CancelFunc
	fyneApp   fyne.App
	win       fyne.Window
	service   appService
	meta      Meta
	watcher   *watcher.DBWatcher
	closeOnce sync.Once
	mu        sync.Mutex

	mode       graphMode
	refreshGen uint64
	filterGen  uint64

	panel      *filterPanel
	graph      *graphView
	panelHost  *fyne.Container
	statusText *widget.Label
}

// Run starts the application
func Run(service appService, meta Meta) {
	if service == nil {
		return
	}

	a := app.New()
	a.Settings().SetTheme(newPokerTheme())

	title := lang.X("app.window.title", "Poker Graph")
	if meta.Version != "" {
		title += " " + meta.Version
	}
	win := a.NewWindow(title)
	win.Resize(fyne.NewSize(1280, 820))
	win.SetMaster()

	ctx, cancel := context.WithCancel(context.Background())

	appCtrl := &App{
		ctx:     ctx,
		cancel:  cancel,
		fyneApp: a,
		win:     win,
		service: service,
		meta:    meta,
	}
	win.SetCloseIntercept(func() {
		appCtrl.shutdown()
		win.SetCloseIntercept(nil)
		win.Close()
	})

	win.SetContent(appCtrl.buildUI())
	go appCtrl.loadFilters()
	appCtrl.startWatcher()
	win.ShowAndRun()
}

func (a *App) buildUI() fyne.CanvasObject {
	a.statusText = widget.NewLabel(lang.X("app.status.initializing", "Initializing..."))
	a.statusText.Wrapping = fyne.TextWrapOff

	statusRow := container.NewHBox(widget.NewIcon(theme.InfoIcon()), a.statusText)
	statusBar := newSectionCard(statusRow)

	a.graph = newGraphView(graphActions{
		onRefresh:  a.refreshGraph,
		onExport:   func() { a.exportGraph("") },
		onExportAs: a.exportGraphAs,
	})

	modeOptions := []string{
		lang.X("app.mode.ring", "Ring games"),
		lang.X("app.mode.tourney", "Tournaments"),
	}
	modeSelect := widget.NewSelect(modeOptions, nil)
	modeSelect.SetSelectedIndex(int(a.mode))
	modeSelect.OnChanged = func(string) {
		a.mu.Lock()
		a.mode = graphMode(modeSelect.SelectedIndex())
		a.mu.Unlock()
		go a.loadFilters()
	}

	a.panelHost = container.NewStack(newCenteredEmptyState(lang.X("app.status.loading_filters", "Loading filters...")))
	left := container.NewBorder(
		container.NewVBox(modeSelect, newSectionDivider()),
		nil, nil, nil,
		a.panelHost,
	)

	split := container.NewHSplit(newSectionCard(left), a.graph.CanvasObject())
	split.SetOffset(0.3)

	return container.NewBorder(
		nil,
		container.NewPadded(statusBar),
		nil,
		nil,
		split,
	)
}

// loadFilters reads the filter options for the current mode and installs a
// fresh panel. Runs off the main goroutine. A load overtaken by a later
// mode switch is dropped.
func (a *App) loadFilters() {
	mode, gen := a.beginFilterLoad()
	a.doSetStatus(lang.X("app.status.loading_filters", "Loading filters..."))
	st, err := a.service.NewFilterState(a.ctx, mode.display())
	fyne.Do(func() {
		if !a.filterLoadCurrent(gen) {
			return
		}
		if err != nil {
			a.statusText.SetText(lang.X("app.error.load_filters", "Failed to load filters: {{.Error}}", map[string]any{"Error": err}))
			return
		}
		a.panel = newFilterPanel(st)
		a.panelHost.Objects = []fyne.CanvasObject{a.panel.CanvasObject()}
		a.panelHost.Refresh()
		a.statusText.SetText(lang.X("app.status.ready", "Ready. Adjust the filters and press Refresh."))
	})
}

// beginFilterLoad snapshots the mode and claims a new load generation.
func (a *App) beginFilterLoad() (graphMode, uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filterGen++
	return a.mode, a.filterGen
}

func (a *App) filterLoadCurrent(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gen == a.filterGen
}

// refreshGraph snapshots the filter state on the main goroutine and runs
// the query and rendering in the background.
func (a *App) refreshGraph() {
	if a.panel == nil {
		return
	}
	st := a.panel.State()

	a.mu.Lock()
	a.refreshGen++
	gen := a.refreshGen
	a.mu.Unlock()

	a.graph.SetBusy(true)
	a.statusText.SetText(lang.X("app.status.refreshing", "Refreshing graph..."))

	size := a.meta.GraphSize
	go func() {
		res, err := a.service.GenerateGraph(a.ctx, st, size)
		fyne.Do(func() {
			a.mu.Lock()
			stale := gen != a.refreshGen
			a.mu.Unlock()
			if stale {
				return
			}
			a.graph.SetBusy(false)
			switch {
			case errors.Is(err, application.ErrNoSites):
				a.statusText.SetText(lang.X("app.abort.no_sites", "No sites selected."))
			case errors.Is(err, application.ErrNoPlayers):
				a.statusText.SetText(lang.X("app.abort.no_players", "No player ids found. Check the hero names."))
			case errors.Is(err, application.ErrNoLimits):
				a.statusText.SetText(lang.X("app.abort.no_limits", "No limits selected."))
			case err != nil:
				a.statusText.SetText(lang.X("app.error.refresh", "Refresh failed: {{.Error}}", map[string]any{"Error": err}))
			default:
				a.graph.SetResult(res)
				a.statusText.SetText(lang.X("app.status.generated", "Graph generated in {{.Elapsed}}.",
					map[string]any{"Elapsed": res.Elapsed.Round(time.Millisecond).String()}))
			}
		})
	}()
}

func (a *App) exportGraph(path string) {
	written, ok, err := a.service.Export(path)
	switch {
	case err != nil:
		dialog.ShowError(err, a.win)
	case !ok:
		a.statusText.SetText(lang.X("app.export.nothing", "Nothing to export yet. Refresh the graph first."))
	default:
		dialog.ShowInformation(
			lang.X("app.export.title", "Graph exported"),
			lang.X("app.export.done", "Saved to {{.Path}}", map[string]any{"Path": shortPath(written)}),
			a.win,
		)
	}
}

func (a *App) exportGraphAs() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()
		a.exportGraph(path)
	}, a.win)
	d.SetFileName(plot.DefaultExportName)
	d.Show()
}

func (a *App) startWatcher() {
	if a.meta.DBPath == "" {
		return
	}
	w, err := watcher.NewDBWatcher(a.meta.DBPath, watcher.WatcherConfig{
		OnChange: func() {
			metrics.DatabaseChanges.Inc()
			a.doSetStatus(lang.X("app.status.new_hands", "New hands available. Press Refresh to update the graph."))
		},
		OnError: func(err error) {
			a.doSetStatus(lang.X("app.error.watcher", "Watcher error: {{.Error}}", map[string]any{"Error": err}))
		},
	})
	if err != nil {
		a.doSetStatus(lang.X("app.error.watcher", "Watcher error: {{.Error}}", map[string]any{"Error": err}))
		return
	}
	if err := w.Start(); err != nil {
		a.doSetStatus(lang.X("app.error.watcher_start", "Failed to start watcher: {{.Error}}", map[string]any{"Error": err}))
		w.Stop()
		return
	}
	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()
}

func (a *App) shutdown() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.refreshGen++
		a.filterGen++
		if a.cancel != nil {
			a.cancel()
		}
		w := a.watcher
		a.watcher = nil
		a.mu.Unlock()

		if w != nil {
			w.Stop()
		}
		if a.service != nil {
			_ = a.service.Close()
		}
	})
}

// doSetStatus safely updates the status bar label from any goroutine.
func (a *App) doSetStatus(msg string) {
	fyne.Do(func() {
		if a.statusText != nil {
			a.statusText.SetText(msg)
		}
	})
}

func shortPath(path string) string {
	if len(path) > 60 {
		return "..." + path[len(path)-57:]
	}
	return path
}


package ui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/AkatukiSora/pokergraph/internal/application"
	"github.com/AkatukiSora/pokergraph/internal/series"
)

type graphActions struct {
	onRefresh  func()
	onExport   func()
	onExportAs func()
}

// graphView shows the rendered graph with its toolbar.
type graphView struct {
	image    *canvas.Image
	title    *widget.Label
	summary  *canvas.Text
	chips    *fyne.Container
	progress *widget.ProgressBarInfinite
	body     *fyne.Container
	root     fyne.CanvasObject

	refreshBtn  *widget.Button
	exportBtn   *widget.Button
	exportAsBtn *widget.Button
}

func newGraphView(actions graphActions) *graphView {
	v := &graphView{}

	v.image = canvas.NewImageFromImage(nil)
	v.image.FillMode = canvas.ImageFillContain
	v.image.ScaleMode = canvas.ImageScaleSmooth
	v.image.SetMinSize(fyne.NewSize(480, 320))

	v.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.title.Wrapping = fyne.TextWrapWord
	v.summary = newSubtleText("")
	v.chips = container.NewHBox()

	v.progress = widget.NewProgressBarInfinite()
	v.progress.Stop()
	v.progress.Hide()

	v.refreshBtn = widget.NewButtonWithIcon(lang.X("graph.refresh", "Refresh"), theme.ViewRefreshIcon(), actions.onRefresh)
	v.refreshBtn.Importance = widget.HighImportance
	v.exportBtn = widget.NewButtonWithIcon(lang.X("graph.export", "Export"), theme.DocumentSaveIcon(), actions.onExport)
	v.exportAsBtn = widget.NewButton(lang.X("graph.export_as", "Export as..."), actions.onExportAs)
	v.exportBtn.Disable()
	v.exportAsBtn.Disable()

	toolbar := container.NewHBox(v.refreshBtn, v.exportBtn, v.exportAsBtn)
	v.body = container.NewStack(newCenteredEmptyState(lang.X("graph.empty", "Press Refresh to draw the profit graph.")))

	header := container.NewVBox(toolbar, v.progress, newSectionDivider(), v.title, v.chips, v.summary)
	v.root = newHeroCard(container.NewBorder(header, nil, nil, nil, v.body))
	return v
}

func (v *graphView) CanvasObject() fyne.CanvasObject {
	return v.root
}

// SetBusy shows progress and blocks a second refresh while one is running.
func (v *graphView) SetBusy(busy bool) {
	if busy {
		v.refreshBtn.Disable()
		v.progress.Show()
		v.progress.Start()
		return
	}
	v.progress.Stop()
	v.progress.Hide()
	v.refreshBtn.Enable()
}

// SetResult shows a finished refresh. Must run on the main goroutine.
func (v *graphView) SetResult(res *application.GraphResult) {
	if res == nil {
		return
	}
	v.setImage(res.Image)
	v.title.SetText(res.Title)
	v.chips.Objects = nil
	v.summary.Text = ""
	switch g := res.Graph; {
	case g == nil:
	case g.Placeholder:
		v.summary.Text = lang.X("graph.placeholder_hint", "Sample data shown. No hands matched the filters.")
	default:
		v.chips.Objects = resultChips(g)
	}
	v.chips.Refresh()
	v.summary.Refresh()
	v.exportBtn.Enable()
	v.exportAsBtn.Enable()
}

func resultChips(g *series.Graph) []fyne.CanvasObject {
	final := series.Last(g.Profit)
	accent := uiSuccessAccent
	if final < 0 {
		accent = uiDangerAccent
	}
	chips := []fyne.CanvasObject{
		newMetricChip(lang.X("graph.chip.hands", "{{.Hands}} hands", map[string]any{"Hands": humanize.Comma(int64(g.Hands))}), uiNeutralChipAccent),
		newMetricChip(fmt.Sprintf("%s %.2f", g.Unit, final), accent),
	}
	if len(g.EV) == len(g.Profit) {
		chips = append(chips, newMetricChip(lang.X("graph.chip.ev", "EV {{.Value}}", map[string]any{"Value": fmt.Sprintf("%.2f", series.Last(g.EV))}), uiInfoAccent))
	}
	return chips
}

func (v *graphView) setImage(img image.Image) {
	v.image.Image = img
	v.image.Refresh()
	v.body.Objects = []fyne.CanvasObject{v.image}
	v.body.Refresh()
}

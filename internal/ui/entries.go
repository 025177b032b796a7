package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
)

const entryDateLayout = "2006-01-02"

// commitEntry is a widget.Entry that fires onCommit when the user presses
// Enter (wire OnSubmitted to the same func) or moves focus away. Typing
// alone changes nothing.
type commitEntry struct {
	widget.Entry
	onCommit func(string)
}

func newCommitEntry() *commitEntry {
	e := &commitEntry{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *commitEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.onCommit != nil {
		e.onCommit(e.Text)
	}
}

// newDateEntry accepts YYYY-MM-DD or YYYYMMDD. Invalid input snaps back to
// the last accepted date.
func newDateEntry(initial time.Time, onChange func(time.Time)) *commitEntry {
	entry := newCommitEntry()
	entry.SetPlaceHolder(lang.X("filter.dates.hint", "YYYY-MM-DD"))

	lastValid := initial
	if !initial.IsZero() {
		entry.SetText(initial.Format(entryDateLayout))
	}

	// SetText inside commit must not re-enter it.
	committing := false
	commit := func(s string) {
		if committing {
			return
		}
		t, ok := parseEntryDate(s)
		committing = true
		if ok {
			entry.SetText(t.Format(entryDateLayout))
		} else if !lastValid.IsZero() {
			entry.SetText(lastValid.Format(entryDateLayout))
		} else {
			entry.SetText("")
		}
		committing = false
		if ok && !t.Equal(lastValid) {
			lastValid = t
			onChange(t)
		}
	}
	entry.onCommit = commit
	entry.OnSubmitted = commit
	return entry
}

func parseEntryDate(s string) (time.Time, bool) {
	for _, layout := range []string{entryDateLayout, "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// tapArea is an invisible widget laid over canvas objects to make them
// tappable.
type tapArea struct {
	widget.BaseWidget
	onTap func()
}

func newTapArea(onTap func()) *tapArea {
	t := &tapArea{onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tapArea) Tapped(*fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

func (t *tapArea) TappedSecondary(*fyne.PointEvent) {}

func (t *tapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

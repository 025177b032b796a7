package main

import (
	"go/parser"
	"go/token"
	"reflect"
	"strings"
	"testing"
)

func analyzeSource(t *testing.T, src string) report {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "internal/ui/sample.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return analyzeFile(fset, file)
}

func TestAnalyzeFileDetectsInitLangCall(t *testing.T) {
	t.Parallel()

	r := analyzeSource(t, `package ui

import "fyne.io/fyne/v2/lang"

func init() {
	_ = lang.X("graph.refresh", "Refresh")
}
`)
	if len(r.violations) != 1 {
		t.Fatalf("violations = %v, want 1", r.violations)
	}
	if !strings.Contains(r.violations[0].message, "package init") {
		t.Fatalf("message = %q", r.violations[0].message)
	}
}

func TestAnalyzeFileDetectsPackageVarLangCall(t *testing.T) {
	t.Parallel()

	r := analyzeSource(t, `package ui

import "fyne.io/fyne/v2/lang"

var labels = []string{
	lang.X("filter.all", "All"),
}
`)
	if len(r.violations) != 1 {
		t.Fatalf("violations = %v, want 1", r.violations)
	}
}

func TestAnalyzeFileBareLiteralAndKeys(t *testing.T) {
	t.Parallel()

	r := analyzeSource(t, `package ui

import (
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
)

func build() {
	widget.NewLabel("Sites")
	widget.NewLabel(lang.X("filter.sites.title", "Sites"))
	widget.NewButton(lang.X("filter.none", "None"), nil)
	widget.NewLabel("") 
	widget.NewLabel("BB") //i18n:ignore unit symbol
}
`)
	if len(r.violations) != 1 || r.violations[0].line != 9 {
		t.Fatalf("violations = %v, want one on line 9", r.violations)
	}
	if want := []string{"filter.sites.title", "filter.none"}; !reflect.DeepEqual(r.keys, want) {
		t.Fatalf("keys = %v, want %v", r.keys, want)
	}
}

func TestAnalyzeFileIgnoreWithoutReasonWarns(t *testing.T) {
	t.Parallel()

	r := analyzeSource(t, `package ui

import "fyne.io/fyne/v2/lang"

func init() {
	//i18n:ignore
	_ = lang.X("graph.refresh", "Refresh")
}
`)
	if len(r.violations) != 0 {
		t.Fatalf("violations = %v, want none", r.violations)
	}
	if !reflect.DeepEqual(r.warnings, []int{6}) {
		t.Fatalf("warnings = %v, want [6]", r.warnings)
	}
}

func TestMissingKeys(t *testing.T) {
	t.Parallel()

	keys := map[string]struct{}{"b": {}, "a": {}, "c": {}}
	table := map[string]any{"a": "A"}
	if got := missingKeys(keys, table); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("missing = %v, want [b c]", got)
	}
}

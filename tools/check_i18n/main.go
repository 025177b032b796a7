// check_i18n reports bare string literals passed to fyne widgets in
// internal/ui and lang keys missing from any translations/*.json file.
package main

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	targetDir       = "internal/ui"
	translationsDir = "internal/ui/translations"
	ignoreMarker    = "i18n:ignore"
)

type funcRule struct {
	pkg  string
	name string
	args []int
}

var functionRules = []funcRule{
	{pkg: "widget", name: "NewLabel", args: []int{0}},
	{pkg: "widget", name: "NewLabelWithStyle", args: []int{0}},
	{pkg: "widget", name: "NewButton", args: []int{0}},
	{pkg: "widget", name: "NewButtonWithIcon", args: []int{0}},
	{pkg: "widget", name: "NewCheck", args: []int{0}},
	{pkg: "canvas", name: "NewText", args: []int{0}},
	{pkg: "dialog", name: "ShowInformation", args: []int{0, 1}},
	{pkg: "dialog", name: "ShowConfirm", args: []int{0, 1}},
}

var methodRules = map[string][]int{
	"SetPlaceHolder": {0},
	"SetTitle":       {0},
}

type violation struct {
	line    int
	message string
}

// report is the result of scanning one file.
type report struct {
	violations []violation
	// warnings holds lines carrying an i18n:ignore marker with no reason.
	warnings []int
	keys     []string
}

func main() {
	files, err := collectGoFiles(targetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to collect UI files: %v\n", err)
		os.Exit(1)
	}

	fset := token.NewFileSet()
	failed := false
	keys := map[string]struct{}{}
	for _, path := range files {
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse %s: %v\n", path, err)
			os.Exit(1)
		}
		rel := filepath.ToSlash(path)
		r := analyzeFile(fset, file)
		for _, line := range r.warnings {
			fmt.Printf("WARN %s:%d: //i18n:ignore without reason\n", rel, line)
		}
		for _, v := range r.violations {
			fmt.Printf("%s:%d: %s\n", rel, v.line, v.message)
			failed = true
		}
		for _, k := range r.keys {
			keys[k] = struct{}{}
		}
	}

	tables, err := loadTranslations(translationsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load translations: %v\n", err)
		os.Exit(1)
	}
	for name, table := range tables {
		for _, k := range missingKeys(keys, table) {
			fmt.Printf("%s: missing key %q\n", name, k)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func collectGoFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

func loadTranslations(dir string) (map[string]map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]any)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		table := map[string]any{}
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out[e.Name()] = table
	}
	return out, nil
}

func missingKeys(keys map[string]struct{}, table map[string]any) []string {
	var out []string
	for k := range keys {
		if _, ok := table[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// analyzeFile flags bare UI strings, and lang calls evaluated during
// package init (translations are not loaded yet at that point).
func analyzeFile(fset *token.FileSet, file *ast.File) report {
	var r report
	ignores := collectIgnoreTags(fset, file)
	warned := map[int]bool{}

	skip := func(line int) bool {
		ignored, noReason := ignoreStatus(ignores, line)
		if noReason > 0 && !warned[noReason] {
			warned[noReason] = true
			r.warnings = append(r.warnings, noReason)
		}
		return ignored
	}

	for _, decl := range file.Decls {
		initTime := false
		switch d := decl.(type) {
		case *ast.FuncDecl:
			initTime = d.Recv == nil && d.Name.Name == "init"
		case *ast.GenDecl:
			initTime = d.Tok == token.VAR
		}
		ast.Inspect(decl, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if key, ok := langKey(call); ok {
				r.keys = append(r.keys, key)
				line := fset.Position(call.Pos()).Line
				if initTime && !skip(line) {
					r.violations = append(r.violations, violation{line: line, message: "lang call must not be called during package init"})
				}
				return true
			}
			for _, idx := range targetArgIndexes(call) {
				if idx >= len(call.Args) || !isBareStringLiteral(unwrapExpr(call.Args[idx])) {
					continue
				}
				line := fset.Position(call.Args[idx].Pos()).Line
				if skip(line) {
					continue
				}
				r.violations = append(r.violations, violation{line: line, message: "bare UI string literal (use lang.X or //i18n:ignore <reason>)"})
			}
			return true
		})
	}
	slices.Sort(r.warnings)
	return r
}

type ignoreTag struct {
	line      int
	hasReason bool
}

func collectIgnoreTags(fset *token.FileSet, file *ast.File) map[int][]ignoreTag {
	tags := make(map[int][]ignoreTag)
	for _, group := range file.Comments {
		for _, c := range group.List {
			text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
			idx := strings.Index(text, ignoreMarker)
			if idx < 0 {
				continue
			}
			line := fset.Position(c.Slash).Line
			reason := strings.TrimSpace(text[idx+len(ignoreMarker):])
			tags[line] = append(tags[line], ignoreTag{line: line, hasReason: reason != ""})
		}
	}
	return tags
}

// ignoreStatus looks for a marker on the line itself or the one above.
// The second result is the line of a reasonless marker, or 0.
func ignoreStatus(tags map[int][]ignoreTag, line int) (bool, int) {
	ignored, noReason := false, 0
	for _, l := range []int{line, line - 1} {
		for _, t := range tags[l] {
			ignored = true
			if t.hasReason {
				return true, 0
			}
			if noReason == 0 {
				noReason = t.line
			}
		}
	}
	return ignored, noReason
}

func targetArgIndexes(call *ast.CallExpr) []int {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil
	}
	if id, ok := sel.X.(*ast.Ident); ok {
		for _, rule := range functionRules {
			if id.Name == rule.pkg && sel.Sel.Name == rule.name {
				return rule.args
			}
		}
	}
	return methodRules[sel.Sel.Name]
}

// langKey returns the literal key of a lang.X/L/N/XN call.
func langKey(call *ast.CallExpr) (string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return "", false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok || id.Name != "lang" {
		return "", false
	}
	switch sel.Sel.Name {
	case "X", "L", "N", "XN":
	default:
		return "", false
	}
	if len(call.Args) == 0 {
		return "", false
	}
	lit, ok := unwrapExpr(call.Args[0]).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	key, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return key, true
}

func unwrapExpr(expr ast.Expr) ast.Expr {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}
		expr = paren.X
	}
}

func isBareStringLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return false
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return true
	}
	return unquoted != ""
}

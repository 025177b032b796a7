// Package querytpl expands filter placeholders such as <game_test> inside
// SQL templates into parameterized clauses. Every user-controlled value
// ends up in Query.Args; only fixed column names and operators are spliced
// into the SQL text.
package querytpl

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

// Query is SQL text with "?" bind markers and the matching arguments in
// order of appearance.
type Query struct {
	SQL  string
	Args []any
}

// PlayerResolver maps site names and hero screen names to store ids.
// Lookups that find nothing return ok=false and a nil error.
type PlayerResolver interface {
	SiteID(ctx context.Context, site string) (int64, bool, error)
	PlayerID(ctx context.Context, siteID int64, name string) (int64, bool, error)
}

// Hero is a resolved hero screen name on one site.
type Hero struct {
	Site     string
	Name     string
	SiteID   int64
	PlayerID int64
}

// Resolved holds the ids behind <site_test> and <player_test>.
type Resolved struct {
	SiteIDs []int64
	Heroes  []Hero
}

// PlayerIDs returns the player ids of every resolved hero.
func (r Resolved) PlayerIDs() []int64 {
	out := make([]int64, 0, len(r.Heroes))
	for _, h := range r.Heroes {
		out = append(out, h.PlayerID)
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`<[a-z]+_test>`)

// Templater expands placeholders against a filter.State.
type Templater struct {
	resolver PlayerResolver
}

func New(resolver PlayerResolver) *Templater {
	return &Templater{resolver: resolver}
}

// Resolve looks up the site id of every selected site and the player id of
// its hero. Sites that are not in the store and heroes that do not resolve
// are skipped.
func (t *Templater) Resolve(ctx context.Context, st filter.State) (Resolved, error) {
	var res Resolved
	if t == nil || t.resolver == nil {
		return res, nil
	}
	for _, site := range st.Sites.Selected() {
		siteID, ok, err := t.resolver.SiteID(ctx, site)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve site %q: %w", site, err)
		}
		if !ok {
			slog.Debug("site not found in database", "site", site)
			continue
		}
		res.SiteIDs = append(res.SiteIDs, siteID)

		name := strings.TrimSpace(st.Hero(site))
		if name == "" {
			slog.Debug("no hero configured for site", "site", site)
			continue
		}
		playerID, ok, err := t.resolver.PlayerID(ctx, siteID, name)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve player %q on %q: %w", name, site, err)
		}
		if !ok {
			slog.Debug("hero not found in database", "site", site, "hero", name)
			continue
		}
		res.Heroes = append(res.Heroes, Hero{Site: site, Name: name, SiteID: siteID, PlayerID: playerID})
	}
	return res, nil
}

// Expand replaces every known placeholder in tmpl. Unknown placeholders are
// copied through unchanged. tmpl must not carry bind markers of its own.
func (t *Templater) Expand(ctx context.Context, tmpl string, st filter.State) (Query, error) {
	return t.expand(ctx, tmpl, st, nil)
}

// ExpandResolved is Expand with ids already looked up by Resolve.
func (t *Templater) ExpandResolved(ctx context.Context, tmpl string, st filter.State, res Resolved) (Query, error) {
	return t.expand(ctx, tmpl, st, &res)
}

func (t *Templater) expand(ctx context.Context, tmpl string, st filter.State, res *Resolved) (Query, error) {
	locs := placeholderPattern.FindAllStringIndex(tmpl, -1)
	if len(locs) == 0 {
		return Query{SQL: tmpl}, nil
	}

	var b strings.Builder
	b.Grow(len(tmpl) + 64)
	var args []any
	last := 0
	for _, loc := range locs {
		token := tmpl[loc[0]:loc[1]]
		b.WriteString(tmpl[last:loc[0]])
		last = loc[1]

		if needsResolve(token) && res == nil {
			r, err := t.Resolve(ctx, st)
			if err != nil {
				return Query{}, err
			}
			res = &r
		}
		frag, ok := fragment(token, st, res)
		if !ok {
			b.WriteString(token)
			continue
		}
		b.WriteString(frag.SQL)
		args = append(args, frag.Args...)
	}
	b.WriteString(tmpl[last:])

	q := Query{SQL: b.String(), Args: args}
	slog.Debug("expanded query template", "sql", Inline(q))
	return q, nil
}

func needsResolve(token string) bool {
	return token == "<player_test>" || token == "<site_test>"
}

func fragment(token string, st filter.State, res *Resolved) (Query, bool) {
	switch token {
	case "<game_test>":
		return membership("gt.category", st.Games.Selected()), true
	case "<limit_test>":
		lc := LimitClause(st.Limits.Selected())
		return Query{SQL: "AND (" + lc.SQL + ")", Args: lc.Args}, true
	case "<player_test>":
		return idList(res.PlayerIDs()), true
	case "<site_test>":
		return idList(res.SiteIDs), true
	case "<position_test>":
		return membership("hp.position", st.Positions.Selected()), true
	case "<currency_test>":
		return membership("gt.currency", st.Currencies.Selected()), true
	case "<type_test>":
		return Query{SQL: "AND gt.type = ?", Args: []any{string(st.Type)}}, true
	case "<seats_test>":
		return Query{SQL: "AND h.seats BETWEEN ? AND ?", Args: []any{st.Seats.From, st.Seats.To}}, true
	case "<cards_test>":
		if st.Cards.AllSelected() {
			return Query{}, true
		}
		return membership("hp.startCards", st.Cards.Selected()), true
	case "<tourney_test>":
		return tourneyClause(st), true
	case "<startdate_test>":
		start, _ := st.Dates.UTCStrings()
		return Query{SQL: "?", Args: []any{start}}, true
	case "<enddate_test>":
		_, end := st.Dates.UTCStrings()
		return Query{SQL: "?", Args: []any{end}}, true
	default:
		return Query{}, false
	}
}

// membership emits "AND col IN (?,..)" or, for an empty selection,
// "AND col IS NULL" so the clause matches nothing.
func membership[T any](column string, values []T) Query {
	if len(values) == 0 {
		return Query{SQL: "AND " + column + " IS NULL"}
	}
	in, args := inClause(values)
	return Query{SQL: "AND " + column + " IN " + in, Args: args}
}

// idList emits a bare "(?,..)" list for "col IN <player_test>" templates.
// An empty list becomes "(NULL)", which is valid and matches nothing.
func idList(ids []int64) Query {
	if len(ids) == 0 {
		return Query{SQL: "(NULL)"}
	}
	in, args := inClause(ids)
	return Query{SQL: in, Args: args}
}

func tourneyClause(st filter.State) Query {
	parts := []Query{
		membership("tt.category", st.TourneyCategories.Selected()),
		membership("tt.limitType", st.TourneyLimits.Selected()),
		membership("tt.buyin", st.TourneyBuyins.Selected()),
	}
	var sqls []string
	var args []any
	for _, p := range parts {
		sqls = append(sqls, p.SQL)
		args = append(args, p.Args...)
	}
	return Query{SQL: strings.Join(sqls, " "), Args: args}
}

// inClause builds a SQL "(?,?,...)" placeholder list and returns the values
// as a []any slice suitable for use as variadic query arguments. A single
// value still yields "(?)".
func inClause[T any](values []T) (string, []any) {
	placeholders := make([]byte, 0, len(values)*2+2)
	args := make([]any, len(values))
	placeholders = append(placeholders, '(')
	for i, v := range values {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args[i] = bindValue(v)
	}
	placeholders = append(placeholders, ')')
	return string(placeholders), args
}

// bindValue unwraps named string types so drivers see a plain string.
func bindValue(v any) any {
	switch x := v.(type) {
	case filter.Position:
		return string(x)
	case filter.LimitType:
		return string(x)
	case filter.GameType:
		return string(x)
	default:
		return v
	}
}

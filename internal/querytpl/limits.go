package querytpl

import (
	"slices"
	"strings"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

// noLimitSentinel is bound in place of an empty blind list. No gametype
// has a negative big blind.
const noLimitSentinel = -1

// LimitClause builds the disjunction behind <limit_test>: one
// "(gt.limitType = ? AND gt.bigBlind IN (...))" term per known limit type,
// in filter.LimitTypes order, with blinds ascending and de-duplicated.
// Types with nothing selected still get a term, bound to the -1 sentinel.
func LimitClause(limits []filter.Limit) Query {
	byType := make(map[filter.LimitType][]int, len(filter.LimitTypes))
	for _, l := range limits {
		byType[l.Type] = append(byType[l.Type], l.BigBlind)
	}

	terms := make([]string, 0, len(filter.LimitTypes))
	var args []any
	for _, lt := range filter.LimitTypes {
		blinds := byType[lt]
		slices.Sort(blinds)
		blinds = slices.Compact(blinds)
		if len(blinds) == 0 {
			blinds = []int{noLimitSentinel}
		}
		in, inArgs := inClause(blinds)
		terms = append(terms, "(gt.limitType = ? AND gt.bigBlind IN "+in+")")
		args = append(args, string(lt))
		args = append(args, inArgs...)
	}
	return Query{SQL: strings.Join(terms, " OR "), Args: args}
}

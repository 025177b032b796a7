package querytpl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Inline substitutes q.Args into the bind markers of q.SQL and returns the
// result as plain text. Strings are single-quoted with embedded quotes
// doubled. The output is for logs and tests; always execute q itself.
func Inline(q Query) string {
	if len(q.Args) == 0 {
		return q.SQL
	}
	var b strings.Builder
	b.Grow(len(q.SQL) + len(q.Args)*4)
	next := 0
	inQuote := false
	for i := 0; i < len(q.SQL); i++ {
		c := q.SQL[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote && next < len(q.Args):
			b.WriteString(literal(q.Args[next]))
			next++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(x)
	case []byte:
		return quote(string(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return quote(x.UTC().Format("2006-01-02 15:04:05"))
	case fmt.Stringer:
		return quote(x.String())
	default:
		return quote(fmt.Sprint(x))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// LimitType is a betting-structure code as stored in gametypes.limitType.
type LimitType string

const (
	LimitFixed   LimitType = "fl"
	LimitPot     LimitType = "pl"
	LimitNo      LimitType = "nl"
	LimitHalfPot LimitType = "hp"
	LimitCapped  LimitType = "cn"
)

// LimitTypes lists every known code in clause order.
var LimitTypes = []LimitType{LimitFixed, LimitPot, LimitNo, LimitHalfPot, LimitCapped}

func (t LimitType) Valid() bool {
	for _, known := range LimitTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the short button text used by the limit-type shortcuts.
func (t LimitType) Label() string {
	switch t {
	case LimitCapped:
		return "CAP"
	default:
		return strings.ToUpper(string(t))
	}
}

// Limit is one selectable stake: a big blind (in minor units) and a limit type.
type Limit struct {
	BigBlind int
	Type     LimitType
}

// String encodes the limit as "<blind><code>", e.g. "2nl".
func (l Limit) String() string {
	return strconv.Itoa(l.BigBlind) + string(l.Type)
}

// ParseLimit decodes the "<blind><code>" form produced by Limit.String.
func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return Limit{}, fmt.Errorf("parse limit %q: too short", s)
	}
	code := LimitType(s[len(s)-2:])
	if !code.Valid() {
		return Limit{}, fmt.Errorf("parse limit %q: unknown limit type %q", s, code)
	}
	bb, err := strconv.Atoi(s[:len(s)-2])
	if err != nil {
		return Limit{}, fmt.Errorf("parse limit %q: %w", s, err)
	}
	return Limit{BigBlind: bb, Type: code}, nil
}

// MustParseLimits parses every entry and panics on the first malformed one.
// Intended for fixtures and literals.
func MustParseLimits(ss ...string) []Limit {
	out := make([]Limit, 0, len(ss))
	for _, s := range ss {
		l, err := ParseLimit(s)
		if err != nil {
			panic(err)
		}
		out = append(out, l)
	}
	return out
}

// GameType separates cash games from tournaments.
type GameType string

const (
	GameTypeRing GameType = "ring"
	GameTypeTour GameType = "tour"
)

// LimitOption is a cash limit found in the store together with the game
// type it was seen under.
type LimitOption struct {
	GameType GameType
	Limit    Limit
}

package filter

const cardRanks = "AKQJT98765432"

// CardGrid returns the 13x13 starting-hand grid. Pairs run down the
// diagonal, suited hands sit above it and offsuit hands below, with the
// higher rank always written first ("AKs", "AKo").
func CardGrid() [13][13]string {
	var grid [13][13]string
	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			switch {
			case row == col:
				grid[row][col] = string([]byte{cardRanks[row], cardRanks[col]})
			case row < col:
				grid[row][col] = string([]byte{cardRanks[row], cardRanks[col], 's'})
			default:
				grid[row][col] = string([]byte{cardRanks[col], cardRanks[row], 'o'})
			}
		}
	}
	return grid
}

// CardAbbreviations lists the 169 grid cells in row-major order.
func CardAbbreviations() []string {
	grid := CardGrid()
	out := make([]string, 0, 169)
	for _, row := range grid {
		out = append(out, row[:]...)
	}
	return out
}

// CardPreset is a bulk selection over the card grid.
type CardPreset int

const (
	CardsAll CardPreset = iota
	CardsNone
	CardsSuited
	CardsOffsuit
	CardsPairs
)

func (p CardPreset) includes(abbr string) bool {
	switch p {
	case CardsAll:
		return true
	case CardsSuited:
		return len(abbr) == 3 && abbr[2] == 's'
	case CardsOffsuit:
		return len(abbr) == 3 && abbr[2] == 'o'
	case CardsPairs:
		return len(abbr) == 2
	default:
		return false
	}
}

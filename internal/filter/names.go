package filter

var gameNames = map[string]string{
	"27_1draw":  "Single Draw 2-7 Lowball",
	"27_3draw":  "Triple Draw 2-7 Lowball",
	"a5_3draw":  "Triple Draw A-5 Lowball",
	"5_studhi":  "5 Card Stud",
	"badugi":    "Badugi",
	"badacey":   "Badacey",
	"badeucey":  "Badeucey",
	"drawmaha":  "2-7 Drawmaha",
	"a5_1draw":  "A-5 Single Draw",
	"27_razz":   "2-7 Razz",
	"fivedraw":  "5 Card Draw",
	"holdem":    "Hold'em",
	"6_holdem":  "Hold'em",
	"omahahi":   "Omaha",
	"fusion":    "Fusion",
	"omahahilo": "Omaha Hi/Lo",
	"razz":      "Razz",
	"studhi":    "7 Card Stud",
	"studhilo":  "7 Card Stud Hi/Lo",
	"5_omahahi": "5 Card Omaha",
	"5_omaha8":  "5 Card Omaha Hi/Lo",
	"cour_hi":   "Courchevel",
	"cour_hilo": "Courchevel Hi/Lo",
	"2_holdem":  "Double hold'em",
	"irish":     "Irish",
	"6_omahahi": "6 Card Omaha",
}

var currencyNames = map[string]string{
	"USD":  "US Dollar",
	"EUR":  "Euro",
	"T$":   "Tournament Dollar",
	"play": "Play Money",
}

// GameName returns the display name for a gametypes.category value,
// falling back to the raw category.
func GameName(category string) string {
	if name, ok := gameNames[category]; ok {
		return name
	}
	return category
}

// CurrencyName returns the display name for a currency code.
func CurrencyName(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code
}

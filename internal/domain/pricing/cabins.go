package pricing

// Cabin codes ordered by rank: the higher, the better the category.
var cabinRank = map[string]int{
	"I": 1, "M": 2, "B": 3, "V": 4, "K": 5, "D": 6, "P": 7, "J": 8, "S": 9,
}

var cabinLabels = map[string]string{
	"I": "Innen", "M": "Meerblick", "B": "Balkon", "V": "Veranda",
	"K": "Ver. Komfort", "D": "Ver. Deluxe", "P": "Ver. Patio.",
	"J": "J.Suite", "S": "Suite",
}

// TariffKeys is the fixed scan order over the tariff sub-offers of a cabin.
// Ties on amount keep the earlier key.
var TariffKeys = []string{"lig", "cla", "claAl", "ind", "indAl", "comAl", "pau", "pauAl", "see", "seeAl"}

// CabinRank returns the rank of a cabin code, 0 for unknown codes.
func CabinRank(code string) int {
	return cabinRank[code]
}

// CabinLabel returns the display label for a cabin code, falling back to the
// code itself.
func CabinLabel(code string) string {
	if l, ok := cabinLabels[code]; ok {
		return l
	}
	return code
}

// KnownCabin reports whether the code is part of the cabin catalog.
func KnownCabin(code string) bool {
	_, ok := cabinRank[code]
	return ok
}

package classify

import "gamescript-extractor/internal/model"

// Rarity bands. Each is an exclusive lower bound: a value equal to a band's
// threshold stays in the tier below.
const (
	uncommonAbove  = 1000
	rareAbove      = 5000
	epicAbove      = 10000
	legendaryAbove = 20000
)

// Rarity derives an item tier from its price, or its power when it has no price.
func Rarity(value int) model.Rarity {
	switch {
	case value > legendaryAbove:
		return model.RarityLegendary
	case value > epicAbove:
		return model.RarityEpic
	case value > rareAbove:
		return model.RarityRare
	case value > uncommonAbove:
		return model.RarityUncommon
	default:
		return model.RarityCommon
	}
}

package domain

import "time"

// PriceTier identifies one of the four price families an event can carry.
type PriceTier string

const (
	TierStandard         PriceTier = "standard"
	TierEarlyBird        PriceTier = "early_bird"
	TierSpecial          PriceTier = "special"
	TierSpecialEarlyBird PriceTier = "special_early_bird"
)

// Price is one currently applicable price of an event. LabelKey identifies
// the translation label for the tier; label lookup itself happens elsewhere.
// swagger:model Price
type Price struct {
	Amount   float64   `json:"amount"`
	LabelKey string    `json:"label_key"`
	Tier     PriceTier `json:"tier"`
}

// AvailablePrices resolves the set of prices applicable at the given instant.
//
// Before the early-bird deadline the early-bird variants replace their plain
// counterparts where configured; at or after the deadline (or with no
// deadline at all) only the plain tiers apply. An early-bird variant is never
// fabricated: an event with only a standard price yields exactly one standard
// entry no matter the deadline. The result always contains at most one entry
// of the standard family and at most one of the special family.
func (e *Event) AvailablePrices(now time.Time) map[PriceTier]Price {
	prices := make(map[PriceTier]Price, 2)

	earlyBird := e.EarlyBirdDeadline != nil && now.Before(*e.EarlyBirdDeadline)

	if earlyBird && e.EarlyBirdPrice != nil {
		prices[TierEarlyBird] = Price{Amount: *e.EarlyBirdPrice, LabelKey: "price.earlyBird", Tier: TierEarlyBird}
	} else {
		prices[TierStandard] = Price{Amount: e.Price, LabelKey: "price.standard", Tier: TierStandard}
	}

	if earlyBird && e.SpecialEarlyBirdPrice != nil {
		prices[TierSpecialEarlyBird] = Price{Amount: *e.SpecialEarlyBirdPrice, LabelKey: "price.specialEarlyBird", Tier: TierSpecialEarlyBird}
	} else if e.SpecialPrice != nil {
		prices[TierSpecial] = Price{Amount: *e.SpecialPrice, LabelKey: "price.special", Tier: TierSpecial}
	}

	return prices
}

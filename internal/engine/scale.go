package engine

import (
	"math"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

const (
	AdultMultiplier = 1.0

	// ChildMultiplier reflects reduced per-person needs.
	ChildMultiplier = 0.75

	// BaseSupplyDurationDays is the duration kit base quantities are calibrated for.
	BaseSupplyDurationDays = 3.0

	// scaleEpsilon absorbs float noise such as 0.75*4 = 3.0000000000000004.
	scaleEpsilon = 1e-9
)

// PeopleMultiplier is adults*1.0 + children*0.75. Pets are not people.
func PeopleMultiplier(h storage.Household) float64 {
	h = NormalizeHousehold(h)
	return float64(h.Adults)*AdultMultiplier + float64(h.Children)*ChildMultiplier
}

// DurationMultiplier is supply days relative to the calibration duration.
func DurationMultiplier(h storage.Household) float64 {
	h = NormalizeHousehold(h)
	return float64(h.SupplyDurationDays) / BaseSupplyDurationDays
}

// ScaleQuantity maps a kit item to a concrete recommended quantity for h.
// The result is always rounded up.
func ScaleQuantity(it kit.Item, h storage.Household) int {
	q := it.BaseQuantity
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return 0
	}
	if !it.ScaleWithPeople && !it.ScaleWithDays && !it.ScaleWithPets {
		return int(math.Ceil(q))
	}

	h = NormalizeHousehold(h)
	if it.ScaleWithPeople {
		q *= PeopleMultiplier(h)
	}
	if it.ScaleWithDays {
		q *= DurationMultiplier(h)
	}
	if it.ScaleWithPets {
		q *= float64(h.Pets)
	}
	if q <= 0 {
		return 0
	}
	return int(math.Ceil(q - scaleEpsilon))
}

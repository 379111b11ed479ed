package engine

import "github.com/ttu/emergency-supply-tracker-sub006/internal/storage"

const (
	MinSupplyDurationDays = 1
	MaxSupplyDurationDays = 365

	DefaultAdults             = 2
	DefaultSupplyDurationDays = 3
)

// DefaultHousehold is what a fresh installation starts with.
func DefaultHousehold() storage.Household {
	return storage.Household{
		Adults:             DefaultAdults,
		SupplyDurationDays: DefaultSupplyDurationDays,
	}
}

// NormalizeHousehold clamps counts to >= 0 and the duration to [1, 365].
func NormalizeHousehold(h storage.Household) storage.Household {
	if h.Adults < 0 {
		h.Adults = 0
	}
	if h.Children < 0 {
		h.Children = 0
	}
	if h.Pets < 0 {
		h.Pets = 0
	}
	switch {
	case h.SupplyDurationDays < MinSupplyDurationDays:
		h.SupplyDurationDays = MinSupplyDurationDays
	case h.SupplyDurationDays > MaxSupplyDurationDays:
		h.SupplyDurationDays = MaxSupplyDurationDays
	}
	if h.FreezerHoldHours != nil {
		v := *h.FreezerHoldHours
		if v < 0 {
			v = 0
		}
		h.FreezerHoldHours = &v
	}
	return h
}

package engine

import (
	"math"
	"testing"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

func scaledItem(base float64, people, days bool) kit.Item {
	return kit.Item{
		ID:              "x",
		Name:            kit.InlineName{Names: map[kit.Language]string{kit.LanguageEnglish: "X"}},
		Category:        kit.CategoryFood,
		Unit:            kit.UnitPieces,
		BaseQuantity:    base,
		ScaleWithPeople: people,
		ScaleWithDays:   days,
	}
}

func TestScaleUnscaledIsCeilOfBase(t *testing.T) {
	households := []storage.Household{
		DefaultHousehold(),
		{Adults: 0, Children: 0, SupplyDurationDays: 1},
		{Adults: 7, Children: 3, Pets: 2, SupplyDurationDays: 365, UseFreezer: true},
	}
	for _, h := range households {
		for _, base := range []float64{0.5, 1, 2.3, 9, 100, 2.0000001} {
			got := ScaleQuantity(scaledItem(base, false, false), h)
			if want := int(math.Ceil(base)); got != want {
				t.Fatalf("ScaleQuantity(base=%v, %+v)=%d, want %d", base, h, got, want)
			}
		}
	}
}

func TestScaleMonotonic(t *testing.T) {
	it := scaledItem(2.5, true, true)
	for adults := 0; adults <= 5; adults++ {
		for children := 0; children <= 5; children++ {
			for days := 1; days <= 30; days++ {
				h := storage.Household{Adults: adults, Children: children, SupplyDurationDays: days}
				q := ScaleQuantity(it, h)

				more := h
				more.Adults++
				if ScaleQuantity(it, more) < q {
					t.Fatalf("not monotonic in adults at %+v", h)
				}
				more = h
				more.Children++
				if ScaleQuantity(it, more) < q {
					t.Fatalf("not monotonic in children at %+v", h)
				}
				more = h
				more.SupplyDurationDays++
				if ScaleQuantity(it, more) < q {
					t.Fatalf("not monotonic in days at %+v", h)
				}
			}
		}
	}
}

func TestScaleThreeDayWater(t *testing.T) {
	it := scaledItem(3, true, true)
	it.Unit = kit.UnitLiters
	h := storage.Household{Adults: 2, Children: 0, SupplyDurationDays: 3}
	if got := ScaleQuantity(it, h); got != 6 {
		t.Fatalf("ScaleQuantity=%d, want 6", got)
	}
}

func TestScaleRoundsUp(t *testing.T) {
	it := scaledItem(9, true, true)
	h := storage.Household{Adults: 2, Children: 1, SupplyDurationDays: 3}
	// 9 * 2.75 = 24.75
	if got := ScaleQuantity(it, h); got != 25 {
		t.Fatalf("ScaleQuantity=%d, want 25", got)
	}
}

func TestScaleIgnoresFloatNoise(t *testing.T) {
	it := scaledItem(0.2, true, true)
	h := storage.Household{Adults: 3, SupplyDurationDays: 10}
	// 0.2 * 3 * 10/3 is 2.0000000000000004 in float64.
	if got := ScaleQuantity(it, h); got != 2 {
		t.Fatalf("ScaleQuantity=%d, want 2", got)
	}
}

func TestScalePetsOnlyByFlag(t *testing.T) {
	people := scaledItem(1, true, false)
	h := storage.Household{Adults: 2, Pets: 3, SupplyDurationDays: 3}
	if got := ScaleQuantity(people, h); got != 2 {
		t.Fatalf("pets leaked into people multiplier: got %d, want 2", got)
	}

	food := scaledItem(1, false, true)
	food.ScaleWithPets = true
	if got := ScaleQuantity(food, h); got != 3 {
		t.Fatalf("pet item=%d, want 3", got)
	}
	h.Pets = 0
	if got := ScaleQuantity(food, h); got != 0 {
		t.Fatalf("pet item without pets=%d, want 0", got)
	}
}

func TestNormalizeHousehold(t *testing.T) {
	hours := -4
	h := NormalizeHousehold(storage.Household{Adults: -1, Children: -2, Pets: -3, SupplyDurationDays: 0, FreezerHoldHours: &hours})
	if h.Adults != 0 || h.Children != 0 || h.Pets != 0 {
		t.Fatalf("negative counts not clamped: %+v", h)
	}
	if h.SupplyDurationDays != MinSupplyDurationDays {
		t.Fatalf("duration=%d, want %d", h.SupplyDurationDays, MinSupplyDurationDays)
	}
	if *h.FreezerHoldHours != 0 || hours != -4 {
		t.Fatalf("freezer hours not clamped on a copy")
	}

	h = NormalizeHousehold(storage.Household{SupplyDurationDays: 1000})
	if h.SupplyDurationDays != MaxSupplyDurationDays {
		t.Fatalf("duration=%d, want %d", h.SupplyDurationDays, MaxSupplyDurationDays)
	}
}

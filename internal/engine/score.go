package engine

import (
	"math"
	"strings"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

// ScoreInput is the snapshot the scorer reads. It is never mutated.
type ScoreInput struct {
	KitItems           []kit.Item
	Household          storage.Household
	Inventory          []storage.InventoryItem
	DisabledItems      map[string]bool
	DisabledCategories map[kit.CategoryID]bool
	Language           kit.Language
	Translate          kit.Translator
}

// Recommendations returns the active kit items with their scaled quantities.
// Disabled items, disabled categories, freezer items for a household without
// a freezer and items that scale to zero are left out.
func Recommendations(in ScoreInput) []Recommendation {
	h := NormalizeHousehold(in.Household)
	out := make([]Recommendation, 0, len(in.KitItems))
	for _, it := range in.KitItems {
		if in.DisabledItems[it.ID] || in.DisabledCategories[it.Category] {
			continue
		}
		if it.RequiresFreezer && !h.UseFreezer {
			continue
		}
		q := ScaleQuantity(it, h)
		if q <= 0 {
			continue
		}
		out = append(out, Recommendation{Item: it, Quantity: q})
	}
	return out
}

// Matches reports whether an inventory item counts toward a kit item: by
// explicit link when present, otherwise by case-insensitive name.
func Matches(inv storage.InventoryItem, it kit.Item, lang kit.Language, t kit.Translator) bool {
	if inv.KitItemID != "" {
		return inv.KitItemID == it.ID
	}
	name := strings.TrimSpace(inv.Name)
	if name == "" {
		return false
	}
	for _, candidate := range []string{it.DisplayName(lang, t), it.DisplayName(kit.DefaultLanguage, t), it.ID} {
		if strings.EqualFold(name, strings.TrimSpace(candidate)) {
			return true
		}
	}
	return false
}

// fulfilment sums matching inventory. enough is set when any match is marked as enough.
func fulfilment(it kit.Item, in ScoreInput) (actual float64, enough bool) {
	for _, inv := range in.Inventory {
		if !Matches(inv, it, in.Language, in.Translate) {
			continue
		}
		if inv.MarkedAsEnough {
			enough = true
		}
		if inv.Quantity > 0 {
			actual += inv.Quantity
		}
	}
	return actual, enough
}

func itemPercent(rec Recommendation, in ScoreInput) float64 {
	actual, enough := fulfilment(rec.Item, in)
	if enough {
		return 100
	}
	ratio := actual / float64(rec.Quantity)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

func averagePercent(recs []Recommendation, in ScoreInput) int {
	sum := 0.0
	for _, r := range recs {
		sum += itemPercent(r, in)
	}
	return int(math.Round(sum / float64(len(recs))))
}

func hasInventory(in ScoreInput, match func(storage.InventoryItem) bool) bool {
	for _, inv := range in.Inventory {
		if match(inv) {
			return true
		}
	}
	return false
}

// CategoryScore is the mean capped fulfilment of the category's active
// recommendations, 0-100. A category without recommendations scores 100 when
// it holds any inventory and 0 otherwise.
func CategoryScore(in ScoreInput, category kit.CategoryID) int {
	var recs []Recommendation
	for _, r := range Recommendations(in) {
		if r.Item.Category == category {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		if hasInventory(in, func(inv storage.InventoryItem) bool { return inv.CategoryID == string(category) }) {
			return 100
		}
		return 0
	}
	return averagePercent(recs, in)
}

// OverallScore applies the same capping across every active recommendation.
func OverallScore(in ScoreInput) int {
	recs := Recommendations(in)
	if len(recs) == 0 {
		if len(in.Inventory) > 0 {
			return 100
		}
		return 0
	}
	return averagePercent(recs, in)
}

// Statuses lists every kit item, including inactive ones, with its fulfilment.
func Statuses(in ScoreInput) []RecommendationStatus {
	h := NormalizeHousehold(in.Household)
	out := make([]RecommendationStatus, 0, len(in.KitItems))
	for _, it := range in.KitItems {
		actual, enough := fulfilment(it, in)
		q := ScaleQuantity(it, h)
		out = append(out, RecommendationStatus{
			Item:        it,
			Name:        it.DisplayName(in.Language, in.Translate),
			Quantity:    q,
			Actual:      actual,
			Enough:      enough || (q > 0 && actual >= float64(q)),
			Disabled:    in.DisabledItems[it.ID] || in.DisabledCategories[it.Category],
			FreezerOnly: it.RequiresFreezer && !h.UseFreezer,
		})
	}
	return out
}

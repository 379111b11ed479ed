package engine

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

// applyKitCategories replaces kit-sourced category settings with those of k.
// Categories the user created are kept, and win over a kit category with the same id.
func applyKitCategories(doc *storage.Document, k kit.Kit) {
	doc.DisabledCategories = nil
	for _, id := range k.DisabledCategories {
		doc.DisabledCategories = append(doc.DisabledCategories, string(id))
	}

	var kept []storage.CustomCategory
	userIDs := map[string]bool{}
	for _, c := range doc.CustomCategories {
		if c.SourceKitID == "" {
			kept = append(kept, c)
			userIDs[c.ID] = true
		}
	}
	for _, c := range k.Categories {
		if userIDs[string(c.ID)] {
			continue
		}
		kept = append(kept, storage.CustomCategory{CategoryDef: kit.CategoryToDef(c), SourceKitID: k.ID})
	}
	doc.CustomCategories = kept
}

// resourceKitCategories moves kit-sourced categories from one kit id to another after a fork.
func resourceKitCategories(doc *storage.Document, from, to string) {
	for i := range doc.CustomCategories {
		if doc.CustomCategories[i].SourceKitID == from {
			doc.CustomCategories[i].SourceKitID = to
		}
	}
}

func disabledCategorySet(doc *storage.Document) map[kit.CategoryID]bool {
	out := make(map[kit.CategoryID]bool, len(doc.DisabledCategories))
	for _, id := range doc.DisabledCategories {
		out[kit.CategoryID(id)] = true
	}
	return out
}

// customCategoryOrder sorts by sortOrder, unordered categories last, ties by insertion.
func customCategoryOrder(doc *storage.Document) []storage.CustomCategory {
	out := append([]storage.CustomCategory(nil), doc.CustomCategories...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SortOrder, out[j].SortOrder
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}

func customCategoryIDs(doc *storage.Document) []kit.CategoryID {
	ordered := customCategoryOrder(doc)
	out := make([]kit.CategoryID, 0, len(ordered))
	for _, c := range ordered {
		out = append(out, kit.CategoryID(c.ID))
	}
	return out
}

func (s *Service) categoryKnown(id kit.CategoryID) bool {
	if id.IsStandard() {
		return true
	}
	for _, c := range s.doc.CustomCategories {
		if c.ID == string(id) {
			return true
		}
	}
	return false
}

// Categories lists standard categories followed by custom ones with their scores.
func (s *Service) Categories() []CategoryStatus {
	in := s.scoreInput()
	disabled := disabledCategorySet(s.doc)

	recCount := map[kit.CategoryID]int{}
	for _, r := range Recommendations(in) {
		recCount[r.Item.Category]++
	}
	invCount := map[kit.CategoryID]int{}
	for _, it := range s.doc.Items {
		invCount[kit.CategoryID(it.CategoryID)]++
	}

	row := func(id kit.CategoryID) CategoryStatus {
		return CategoryStatus{
			ID:             id,
			Score:          CategoryScore(in, id),
			Recommended:    recCount[id],
			InventoryItems: invCount[id],
			Disabled:       disabled[id],
		}
	}

	var out []CategoryStatus
	for _, id := range kit.StandardCategories {
		out = append(out, row(id))
	}
	for _, c := range customCategoryOrder(s.doc) {
		c := c
		st := row(kit.CategoryID(c.ID))
		st.Custom = &c
		out = append(out, st)
	}
	return out
}

// CustomCategories returns the custom categories in display order.
func (s *Service) CustomCategories() []storage.CustomCategory {
	return customCategoryOrder(s.doc)
}

// SetCategoryEnabled toggles a standard or custom category.
func (s *Service) SetCategoryEnabled(ctx context.Context, id kit.CategoryID, enabled bool) error {
	if !s.categoryKnown(id) {
		return s.refuse("toggle category", string(id), reasonUnknownCategory)
	}
	disabled := disabledCategorySet(s.doc)
	if disabled[id] == !enabled {
		return nil
	}
	if enabled {
		var next []string
		for _, d := range s.doc.DisabledCategories {
			if d != string(id) {
				next = append(next, d)
			}
		}
		s.doc.DisabledCategories = next
	} else {
		s.doc.DisabledCategories = append(s.doc.DisabledCategories, string(id))
	}
	return s.save(ctx, "toggle category")
}

// AddCustomCategory adds a user category. It is kept across kit switches.
func (s *Service) AddCustomCategory(ctx context.Context, c kit.Category) error {
	c.ID = kit.CategoryID(strings.TrimSpace(string(c.ID)))
	if issues := kit.ValidateCategory(c); len(issues) > 0 {
		return &kit.ValidationError{Issues: issues}
	}
	if s.categoryKnown(c.ID) {
		return &kit.ValidationError{Issues: []kit.Issue{{
			Path: "id", Code: kit.CodeDuplicateCategory, Message: "category " + string(c.ID) + " already exists",
		}}}
	}
	s.doc.CustomCategories = append(s.doc.CustomCategories, storage.CustomCategory{CategoryDef: kit.CategoryToDef(c)})
	return s.save(ctx, "add category")
}

// RemoveCustomCategory refuses while inventory still uses the category.
func (s *Service) RemoveCustomCategory(ctx context.Context, id kit.CategoryID) error {
	idx := -1
	for i, c := range s.doc.CustomCategories {
		if c.ID == string(id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s.refuse("remove category", string(id), reasonUnknownCategory)
	}
	for _, it := range s.doc.Items {
		if it.CategoryID == string(id) {
			return s.refuse("remove category", string(id), "category still has inventory items")
		}
	}
	s.doc.CustomCategories = append(s.doc.CustomCategories[:idx], s.doc.CustomCategories[idx+1:]...)
	s.logger.Info("category removed", zap.String("id", string(id)))
	return s.save(ctx, "remove category")
}

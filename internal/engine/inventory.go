package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

// NewItem is user input for a manually added inventory item.
type NewItem struct {
	Name                string
	CategoryID          string
	Quantity            float64
	Unit                string
	RecommendedQuantity int
	ExpirationDate      *time.Time
	NeverExpires        bool
}

func validQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return fmt.Errorf("quantity must be a non-negative number, got %v", q)
	}
	return nil
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}

// Items returns a copy of the inventory.
func (s *Service) Items() []storage.InventoryItem {
	return append([]storage.InventoryItem(nil), s.doc.Items...)
}

func (s *Service) itemIndex(id string) int {
	for i := range s.doc.Items {
		if s.doc.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) Item(id string) (storage.InventoryItem, bool) {
	idx := s.itemIndex(id)
	if idx < 0 {
		return storage.InventoryItem{}, false
	}
	return s.doc.Items[idx], true
}

func (s *Service) AddItem(ctx context.Context, in NewItem) (storage.InventoryItem, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return storage.InventoryItem{}, err
	}
	if err := validQuantity(in.Quantity); err != nil {
		return storage.InventoryItem{}, err
	}
	cat := kit.CategoryID(strings.TrimSpace(in.CategoryID))
	if !s.categoryKnown(cat) {
		return storage.InventoryItem{}, fmt.Errorf("unknown category %q", in.CategoryID)
	}
	unit, ok := kit.ParseUnit(in.Unit)
	if !ok {
		return storage.InventoryItem{}, fmt.Errorf("unknown unit %q", in.Unit)
	}
	if in.RecommendedQuantity < 0 {
		in.RecommendedQuantity = 0
	}

	now := s.now()
	item := storage.InventoryItem{
		ID:                  s.newID(),
		Name:                name,
		CategoryID:          string(cat),
		Quantity:            in.Quantity,
		Unit:                string(unit),
		RecommendedQuantity: in.RecommendedQuantity,
		NeverExpires:        in.NeverExpires || in.ExpirationDate == nil,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if !item.NeverExpires {
		exp := in.ExpirationDate.UTC()
		item.ExpirationDate = &exp
	}

	s.doc.Items = append(s.doc.Items, item)
	if err := s.save(ctx, "add item"); err != nil {
		return storage.InventoryItem{}, err
	}
	s.logger.Info("item added", zap.String("id", item.ID), zap.String("category", item.CategoryID))
	return item, nil
}

// PreviewKitItem scales a current-kit item without touching inventory.
func (s *Service) PreviewKitItem(kitItemID string) (Recommendation, error) {
	cur := s.kits.Current()
	it, ok := cur.Item(kitItemID)
	if !ok {
		return Recommendation{}, s.refuse("preview kit item", kitItemID, reasonUnknownItem)
	}
	return Recommendation{Item: it, Quantity: ScaleQuantity(it, s.doc.Household)}, nil
}

// AddFromKit instantiates an inventory item linked to a current-kit item.
// Items with a shelf life get an expiration date from it; others never expire.
func (s *Service) AddFromKit(ctx context.Context, kitItemID string, quantity float64) (storage.InventoryItem, error) {
	rec, err := s.PreviewKitItem(kitItemID)
	if err != nil {
		return storage.InventoryItem{}, err
	}
	if err := validQuantity(quantity); err != nil {
		return storage.InventoryItem{}, err
	}

	now := s.now()
	it := rec.Item
	item := storage.InventoryItem{
		ID:                  s.newID(),
		Name:                it.DisplayName(s.Language(), s.translator()),
		CategoryID:          string(it.Category),
		Quantity:            quantity,
		Unit:                string(it.Unit),
		RecommendedQuantity: rec.Quantity,
		KitItemID:           it.ID,
		NeverExpires:        it.DefaultExpirationMonths == nil,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if it.DefaultExpirationMonths != nil {
		exp := now.AddDate(0, int(math.Round(*it.DefaultExpirationMonths)), 0)
		item.ExpirationDate = &exp
	}

	s.doc.Items = append(s.doc.Items, item)
	if err := s.save(ctx, "add kit item to inventory"); err != nil {
		return storage.InventoryItem{}, err
	}
	s.logger.Info("item added from kit", zap.String("id", item.ID), zap.String("kitItem", it.ID))
	return item, nil
}

func (s *Service) mutateItem(ctx context.Context, op, id string, fn func(*storage.InventoryItem) error) error {
	idx := s.itemIndex(id)
	if idx < 0 {
		return s.refuse(op, id, reasonUnknownItem)
	}
	updated := s.doc.Items[idx]
	if err := fn(&updated); err != nil {
		return err
	}
	updated.UpdatedAt = s.now()
	s.doc.Items[idx] = updated
	return s.save(ctx, op)
}

func (s *Service) SetQuantity(ctx context.Context, id string, quantity float64) error {
	return s.mutateItem(ctx, "set quantity", id, func(it *storage.InventoryItem) error {
		if err := validQuantity(quantity); err != nil {
			return err
		}
		it.Quantity = quantity
		return nil
	})
}

// SetExpiration sets a date, or marks the item as never expiring when exp is nil.
func (s *Service) SetExpiration(ctx context.Context, id string, exp *time.Time) error {
	return s.mutateItem(ctx, "set expiration", id, func(it *storage.InventoryItem) error {
		if exp == nil {
			it.NeverExpires = true
			it.ExpirationDate = nil
			return nil
		}
		e := exp.UTC()
		it.NeverExpires = false
		it.ExpirationDate = &e
		return nil
	})
}

// MarkAsEnough suppresses the item's contribution to shortages without
// disabling the recommendation.
func (s *Service) MarkAsEnough(ctx context.Context, id string, enough bool) error {
	return s.mutateItem(ctx, "mark as enough", id, func(it *storage.InventoryItem) error {
		it.MarkedAsEnough = enough
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, id string) error {
	idx := s.itemIndex(id)
	if idx < 0 {
		return s.refuse("remove item", id, reasonUnknownItem)
	}
	s.doc.Items = append(s.doc.Items[:idx], s.doc.Items[idx+1:]...)
	return s.save(ctx, "remove item")
}

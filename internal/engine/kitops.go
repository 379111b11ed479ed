package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
)

func (s *Service) Kits() []kit.Kit { return s.kits.Kits() }

func (s *Service) CurrentKit() kit.Kit { return s.kits.Current() }

// SelectKit switches kits. A real change clears disabled recommendations and
// applies the new kit's category settings; user categories are kept.
func (s *Service) SelectKit(ctx context.Context, id string) error {
	changed, err := s.kits.Select(id)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	s.onKitChanged()
	return s.save(ctx, "select kit")
}

func (s *Service) onKitChanged() {
	s.overrides.EnableAll()
	applyKitCategories(s.doc, s.kits.Current())
	s.refreshRecommended()
	s.logger.Info("kit selected", zap.String("id", s.kits.SelectedID()))
}

// UploadKit validates and stores a kit file. A rejected file returns its
// issues with an empty id and changes nothing.
func (s *Service) UploadKit(ctx context.Context, data []byte) (string, kit.Result, error) {
	id, res := s.kits.Upload(data)
	if id == "" {
		return "", res, nil
	}
	if err := s.save(ctx, "upload kit"); err != nil {
		return "", res, err
	}
	return id, res, nil
}

func (s *Service) DeleteKit(ctx context.Context, id string) error {
	before := s.kits.SelectedID()
	if err := s.kits.Delete(id); err != nil {
		return err
	}
	if s.kits.SelectedID() != before {
		s.onKitChanged()
	}
	return s.save(ctx, "delete kit")
}

// ForkKit makes the selected built-in kit editable. The item set is
// unchanged, so disabled recommendations survive the fork.
func (s *Service) ForkKit(ctx context.Context) (string, error) {
	before := s.kits.SelectedID()
	id := s.kits.Fork()
	if id == before {
		return id, nil
	}
	resourceKitCategories(s.doc, before, id)
	if err := s.save(ctx, "fork kit"); err != nil {
		return "", err
	}
	return id, nil
}

// RenameKit updates the selected custom kit's name and description.
func (s *Service) RenameKit(ctx context.Context, name, description string) error {
	meta := s.kits.Current().Meta
	meta.Name = name
	meta.Description = description
	if err := s.kits.UpdateMeta(meta); err != nil {
		return err
	}
	return s.save(ctx, "rename kit")
}

func (s *Service) AddKitItem(ctx context.Context, it kit.Item) error {
	if err := s.kits.AddItem(it); err != nil {
		return err
	}
	return s.save(ctx, "add kit item")
}

func (s *Service) UpdateKitItem(ctx context.Context, it kit.Item) error {
	if err := s.kits.UpdateItem(it); err != nil {
		return err
	}
	s.refreshRecommended()
	return s.save(ctx, "update kit item")
}

// RemoveKitItem also drops a disabled override for the removed id.
func (s *Service) RemoveKitItem(ctx context.Context, id string) error {
	if err := s.kits.RemoveItem(id); err != nil {
		return err
	}
	s.overrides.Enable(id)
	return s.save(ctx, "remove kit item")
}

func (s *Service) ExportKit() ([]byte, error) { return s.kits.ExportJSON() }

// Recommendations lists every item of the current kit with its fulfilment.
func (s *Service) Recommendations() []RecommendationStatus {
	return Statuses(s.scoreInput())
}

func (s *Service) DisableRecommendation(ctx context.Context, itemID string) error {
	cur := s.kits.Current()
	if _, ok := cur.Item(itemID); !ok {
		return s.refuse("disable recommendation", itemID, reasonUnknownItem)
	}
	if s.overrides.IsDisabled(itemID) {
		return nil
	}
	s.overrides.Disable(itemID)
	return s.save(ctx, "disable recommendation")
}

func (s *Service) EnableRecommendation(ctx context.Context, itemID string) error {
	if !s.overrides.Enable(itemID) {
		return nil
	}
	return s.save(ctx, "enable recommendation")
}

func (s *Service) EnableAllRecommendations(ctx context.Context) error {
	s.overrides.EnableAll()
	return s.save(ctx, "enable all recommendations")
}

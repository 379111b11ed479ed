package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

// ExportBackup returns the whole document and records the backup time.
func (s *Service) ExportBackup(ctx context.Context) ([]byte, error) {
	now := s.now()
	s.doc.Settings.LastBackupAt = &now
	if err := s.save(ctx, "export backup"); err != nil {
		return nil, err
	}
	return storage.MarshalDocument(s.doc)
}

// ImportBackup replaces the whole document. Nothing changes if the backup is invalid.
func (s *Service) ImportBackup(ctx context.Context, data []byte) error {
	doc, err := storage.UnmarshalDocument(data)
	if err != nil {
		return err
	}
	return s.Restore(ctx, doc)
}

// Restore replaces the session state with doc after checking it.
func (s *Service) Restore(ctx context.Context, doc *storage.Document) error {
	if err := checkDocument(doc); err != nil {
		s.logger.Warn("restore rejected", zap.Error(err))
		return err
	}
	if err := s.load(doc); err != nil {
		return err
	}
	return s.save(ctx, "restore")
}

func checkDocument(doc *storage.Document) error {
	if doc == nil {
		return fmt.Errorf("backup is empty")
	}

	seenKits := map[string]bool{}
	for _, sk := range doc.UploadedKits {
		if sk.ID == "" || kit.IsBuiltinID(sk.ID) || seenKits[sk.ID] {
			return fmt.Errorf("backup kit id %q is missing, reserved or duplicated", sk.ID)
		}
		seenKits[sk.ID] = true

		data, err := kit.MarshalFile(sk.File)
		if err != nil {
			return err
		}
		if res, _ := kit.ValidateJSON(data); !res.Valid {
			return fmt.Errorf("backup kit %s: %w", sk.ID, &kit.ValidationError{Issues: res.Errors})
		}
	}

	seenItems := map[string]bool{}
	for _, it := range doc.Items {
		if it.ID == "" || seenItems[it.ID] {
			return fmt.Errorf("backup item id %q is missing or duplicated", it.ID)
		}
		seenItems[it.ID] = true
		if err := validQuantity(it.Quantity); err != nil {
			return fmt.Errorf("backup item %s: %w", it.ID, err)
		}
	}
	return nil
}

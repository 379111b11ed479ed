package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

// Store is the get/set collaborator for the persisted document. Load returns
// nil, nil when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (*storage.Document, error)
	Save(ctx context.Context, doc *storage.Document) error
}

// Localizer returns the translator for a language. It may be nil, in which
// case localized item names render as their keys.
type Localizer func(lang kit.Language) kit.Translator

type ServiceDeps struct {
	Store       Store
	Logger      *zap.Logger
	Clock       func() time.Time
	IDGenerator func() string
	Localizer   Localizer

	// ExpiringSoonDays overrides the default alert lookahead when positive.
	ExpiringSoonDays int
}

var errStoreRequired = errors.New("engine: store is required")

// Service owns the in-memory snapshot for one session and persists it after
// every successful mutation.
type Service struct {
	store     Store
	doc       *storage.Document
	kits      *Registry
	overrides *Tracker

	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
	localizer Localizer
	lookahead int

	// committed is the last document known to match the store. A failed
	// save rolls the session back to it.
	committed []byte
}

func NewService(ctx context.Context, deps ServiceDeps) (*Service, error) {
	if deps.Store == nil {
		return nil, errStoreRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}

	s := &Service{
		store:     deps.Store,
		logger:    logger,
		now:       func() time.Time { return clock().UTC() },
		newID:     idGen,
		localizer: deps.Localizer,
		lookahead: deps.ExpiringSoonDays,
	}

	doc, err := deps.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		doc = newDocument()
		logger.Debug("starting with a fresh document")
	}
	if err := s.load(doc); err != nil {
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	return s, nil
}

func newDocument() *storage.Document {
	return &storage.Document{
		Version:       storage.DocumentVersion,
		Household:     DefaultHousehold(),
		Settings:      storage.Settings{Language: string(kit.DefaultLanguage)},
		SelectedKitID: kit.DefaultKitID,
	}
}

func normalizeDocument(doc *storage.Document) {
	if doc.Version == 0 {
		doc.Version = storage.DocumentVersion
	}
	doc.Household = NormalizeHousehold(doc.Household)
	if l, err := kit.CanonicalLanguage(doc.Settings.Language); err == nil {
		doc.Settings.Language = string(l)
	} else {
		doc.Settings.Language = string(kit.DefaultLanguage)
	}
	if doc.SelectedKitID == "" {
		doc.SelectedKitID = kit.DefaultKitID
	}
}

// load swaps in doc and rebuilds the registry and tracker from it. The
// service is untouched when it fails.
func (s *Service) load(doc *storage.Document) error {
	normalizeDocument(doc)

	custom := make([]kit.Kit, 0, len(doc.UploadedKits))
	for _, sk := range doc.UploadedKits {
		k := kit.FromFile(sk.File)
		k.ID = sk.ID
		k.OriginKitID = sk.OriginKitID
		k.UploadedAt = sk.UploadedAt
		custom = append(custom, k)
	}
	reg, err := NewRegistry(custom, doc.SelectedKitID, RegistryDeps{
		Logger:      s.logger,
		IDGenerator: s.newID,
		Clock:       s.now,
	})
	if err != nil {
		return fmt.Errorf("build kit registry: %w", err)
	}

	s.doc = doc
	s.kits = reg
	s.overrides = NewTracker(doc.DismissedAlertIDs, doc.DisabledRecommendedItems)
	return nil
}

// sync copies registry and tracker state back into the document.
func (s *Service) sync() {
	s.doc.UploadedKits = nil
	for _, k := range s.kits.Custom() {
		s.doc.UploadedKits = append(s.doc.UploadedKits, storage.StoredKit{
			ID:          k.ID,
			OriginKitID: k.OriginKitID,
			UploadedAt:  k.UploadedAt,
			File:        kit.ToFile(k),
		})
	}
	s.doc.SelectedKitID = s.kits.SelectedID()
	s.doc.DismissedAlertIDs = s.overrides.DismissedIDs()
	s.doc.DisabledRecommendedItems = s.overrides.DisabledIDs()
}

// save persists the session. When the store fails, every in-memory change
// made since the last successful save is discarded.
func (s *Service) save(ctx context.Context, op string) error {
	s.sync()
	s.doc.LastModified = s.now()
	if err := s.store.Save(ctx, s.doc); err != nil {
		s.rollback(op)
		return fmt.Errorf("save document: %w", err)
	}
	if err := s.commit(); err != nil {
		return err
	}
	s.logger.Debug("document saved", zap.String("op", op), zap.Int("items", len(s.doc.Items)))
	return nil
}

func (s *Service) commit() error {
	s.sync()
	data, err := storage.MarshalDocument(s.doc)
	if err != nil {
		return err
	}
	s.committed = data
	return nil
}

func (s *Service) rollback(op string) {
	doc, err := storage.UnmarshalDocument(s.committed)
	if err == nil {
		err = s.load(doc)
	}
	if err != nil {
		s.logger.Error("rollback failed", zap.String("op", op), zap.Error(err))
		return
	}
	s.logger.Warn("save failed, changes discarded", zap.String("op", op))
}

func (s *Service) refuse(op, target, reason string) error {
	s.logger.Warn("operation refused",
		zap.String("op", op),
		zap.String("target", target),
		zap.String("reason", reason),
	)
	return &OpError{Op: op, Target: target, Reason: reason}
}

// Registry exposes the kit registry for read access. Mutations must go
// through the service so side effects are applied and persisted.
func (s *Service) Registry() *Registry { return s.kits }

func (s *Service) Tracker() *Tracker { return s.overrides }

func (s *Service) Language() kit.Language {
	return kit.Language(s.doc.Settings.Language)
}

func (s *Service) translator() kit.Translator {
	if s.localizer == nil {
		return nil
	}
	return s.localizer(s.Language())
}

// SetLanguage accepts any tag that canonicalises to a supported language.
func (s *Service) SetLanguage(ctx context.Context, tag string) error {
	l, err := kit.CanonicalLanguage(tag)
	if err != nil {
		return err
	}
	s.doc.Settings.Language = string(l)
	return s.save(ctx, "set language")
}

func (s *Service) CompleteOnboarding(ctx context.Context) error {
	if s.doc.Settings.OnboardingCompleted {
		return nil
	}
	s.doc.Settings.OnboardingCompleted = true
	return s.save(ctx, "complete onboarding")
}

func (s *Service) Settings() storage.Settings { return s.doc.Settings }

func (s *Service) Household() storage.Household { return s.doc.Household }

// SetHousehold normalises h, stores it and rescales kit-linked inventory.
func (s *Service) SetHousehold(ctx context.Context, h storage.Household) (storage.Household, error) {
	h = NormalizeHousehold(h)
	s.doc.Household = h
	s.refreshRecommended()
	if err := s.save(ctx, "set household"); err != nil {
		return storage.Household{}, err
	}
	return h, nil
}

// refreshRecommended recomputes the recommended quantity of every inventory
// item linked to an item of the current kit.
func (s *Service) refreshRecommended() {
	byID := map[string]kit.Item{}
	for _, it := range s.kits.Items() {
		byID[it.ID] = it
	}
	for i := range s.doc.Items {
		inv := &s.doc.Items[i]
		if inv.KitItemID == "" {
			continue
		}
		if it, ok := byID[inv.KitItemID]; ok {
			inv.RecommendedQuantity = ScaleQuantity(it, s.doc.Household)
		}
	}
}

func (s *Service) scoreInput() ScoreInput {
	return ScoreInput{
		KitItems:           s.kits.Items(),
		Household:          s.doc.Household,
		Inventory:          s.doc.Items,
		DisabledItems:      s.overrides.DisabledSet(),
		DisabledCategories: disabledCategorySet(s.doc),
		Language:           s.Language(),
		Translate:          s.translator(),
	}
}

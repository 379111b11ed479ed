package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
)

func sampleDocument() *Document {
	exp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	order := 4
	return &Document{
		Household: Household{Adults: 2, Children: 1, SupplyDurationDays: 7, UseFreezer: true},
		Settings:  Settings{Language: "fi", OnboardingCompleted: true},
		Items: []InventoryItem{
			{
				ID:                  "inv-1",
				Name:                "Bottled water",
				CategoryID:          "water-beverages",
				Quantity:            12,
				Unit:                "liters",
				RecommendedQuantity: 21,
				ExpirationDate:      &exp,
				KitItemID:           "bottled-water",
				CreatedAt:           created,
				UpdatedAt:           created,
			},
		},
		DisabledCategories: []string{"pets"},
		CustomCategories: []CustomCategory{{
			CategoryDef: kit.CategoryDef{
				ID:        "camping",
				Names:     map[string]string{"en": "Camping"},
				Icon:      "⛺",
				SortOrder: &order,
			},
			SourceKitID: "custom:01HZX",
		}},
		UploadedKits: []StoredKit{{
			ID:         "custom:01HZX",
			UploadedAt: created,
			File: kit.File{
				Meta: kit.FileMeta{Name: "Cabin", Version: "1", CreatedAt: "2025-01-01"},
				Items: []kit.ItemDef{{
					ID: "tent", Names: map[string]string{"en": "Tent"},
					Category: "camping", Unit: "pieces", BaseQuantity: 1,
				}},
			},
		}},
		SelectedKitID:            "custom:01HZX",
		DismissedAlertIDs:        []string{"expired-inv-1"},
		DisabledRecommendedItems: []string{"tent"},
		LastModified:             created,
	}
}

func openTestDB(t *testing.T) *DocumentRepo {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDocumentRepo(db)
}

func TestDocumentRepoLoadMissing(t *testing.T) {
	repo := openTestDB(t)
	doc, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestDocumentRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	want := sampleDocument()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, DocumentVersion, got.Version)
	require.Equal(t, want, got)

	got.Household.Adults = 5
	require.NoError(t, repo.Save(ctx, got))
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, again.Household.Adults)
}

func TestDocumentRepoHistory(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).WithHistoryLimit(2)

	doc := sampleDocument()
	for i := 1; i <= 3; i++ {
		doc.Household.Adults = i
		require.NoError(t, repo.Save(ctx, doc))
	}

	hist, err := repo.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Greater(t, hist[0].ID, hist[1].ID)
	require.Equal(t, 1, hist[0].Items)

	older, err := repo.Snapshot(ctx, hist[1].ID)
	require.NoError(t, err)
	require.Equal(t, 2, older.Household.Adults)

	missing, err := repo.Snapshot(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "twice.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "prep.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, doc)

	want := sampleDocument()
	require.NoError(t, store.Save(ctx, want))
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFileStoreRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prep.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = store.Load(context.Background())
	require.ErrorContains(t, err, "newer than supported")
}

func TestResolveDBPath(t *testing.T) {
	p, err := ResolveDBPath("/tmp/x.db")
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.db", p)
}

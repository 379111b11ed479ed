package storage

import (
	"time"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
)

// DocumentVersion is bumped when the persisted shape changes incompatibly.
const DocumentVersion = 1

type Household struct {
	Adults             int  `json:"adults"`
	Children           int  `json:"children"`
	Pets               int  `json:"pets"`
	SupplyDurationDays int  `json:"supplyDurationDays"`
	UseFreezer         bool `json:"useFreezer"`
	FreezerHoldHours   *int `json:"freezerHoldHours,omitempty"`
}

type Settings struct {
	Language            string     `json:"language"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	LastBackupAt        *time.Time `json:"lastBackupAt,omitempty"`
}

type InventoryItem struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	CategoryID          string     `json:"categoryId"`
	Quantity            float64    `json:"quantity"`
	Unit                string     `json:"unit"`
	RecommendedQuantity int        `json:"recommendedQuantity"`
	NeverExpires        bool       `json:"neverExpires"`
	ExpirationDate      *time.Time `json:"expirationDate,omitempty"`
	KitItemID           string     `json:"kitItemId,omitempty"`
	MarkedAsEnough      bool       `json:"markedAsEnough,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// CustomCategory is a user category. SourceKitID is set when the category
// was applied from a kit file and empty when the user created it.
type CustomCategory struct {
	kit.CategoryDef
	SourceKitID string `json:"sourceKitId,omitempty"`
}

// StoredKit is an uploaded or forked kit, persisted in its wire form.
type StoredKit struct {
	ID          string    `json:"id"`
	OriginKitID string    `json:"originKitId,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
	File        kit.File  `json:"file"`
}

// Document is everything one installation persists.
type Document struct {
	Version                  int              `json:"version"`
	Household                Household        `json:"household"`
	Settings                 Settings         `json:"settings"`
	Items                    []InventoryItem  `json:"items"`
	DisabledCategories       []string         `json:"disabledCategories,omitempty"`
	CustomCategories         []CustomCategory `json:"customCategories,omitempty"`
	UploadedKits             []StoredKit      `json:"uploadedKits,omitempty"`
	SelectedKitID            string           `json:"selectedKitId"`
	DismissedAlertIDs        []string         `json:"dismissedAlertIds,omitempty"`
	DisabledRecommendedItems []string         `json:"disabledRecommendedItems,omitempty"`
	LastModified             time.Time        `json:"lastModified"`
}

// Snapshot is one entry of the sqlite document history.
type Snapshot struct {
	ID      int64
	SavedAt time.Time
	Items   int
}

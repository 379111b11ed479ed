package engine

import (
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alert is recomputed on every evaluation and never persisted. MessageKey is
// a translation key; the remaining fields are its arguments.
type Alert struct {
	ID         string         `json:"id"`
	Severity   Severity       `json:"severity"`
	MessageKey string         `json:"messageKey"`
	ItemID     string         `json:"itemId,omitempty"`
	ItemName   string         `json:"itemName,omitempty"`
	CategoryID kit.CategoryID `json:"categoryId,omitempty"`
	Days       int            `json:"days,omitempty"`
	Percent    int            `json:"percent,omitempty"`
}

// Recommendation is a kit item scaled to a household.
type Recommendation struct {
	Item     kit.Item
	Quantity int
}

// RecommendationStatus is a recommendation joined with the inventory that satisfies it.
type RecommendationStatus struct {
	Item        kit.Item
	Name        string
	Quantity    int
	Actual      float64
	Enough      bool
	Disabled    bool
	FreezerOnly bool
}

// CategoryStatus is one row of the dashboard.
type CategoryStatus struct {
	ID             kit.CategoryID
	Score          int
	Recommended    int
	InventoryItems int
	Disabled       bool
	Custom         *storage.CustomCategory
}

// Dashboard is everything the status screens render.
type Dashboard struct {
	Overall     int
	Categories  []CategoryStatus
	Alerts      []Alert
	HiddenCount int
	KitID       string
	KitName     string
	Household   storage.Household
}

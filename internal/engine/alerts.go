package engine

import (
	"math"
	"time"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

const (
	// ExpiringSoonDays is the lookahead window for expiration warnings.
	ExpiringSoonDays = 7

	CriticalStockPercent = 25
	LowStockPercent      = 50

	BackupReminderDays = 30
)

const (
	AlertPrefixExpired      = "expired-"
	AlertPrefixExpiringSoon = "expiring-soon-"
	AlertPrefixOutOfStock   = "category-out-of-stock-"
	AlertPrefixCritical     = "category-critical-"
	AlertPrefixLow          = "category-low-"
	AlertIDBackupReminder   = "backup-reminder"
)

const (
	MsgExpired        = "alerts.expired"
	MsgExpiringSoon   = "alerts.expiringSoon"
	MsgOutOfStock     = "alerts.outOfStock"
	MsgCriticallyLow  = "alerts.criticallyLow"
	MsgRunningLow     = "alerts.runningLow"
	MsgBackupReminder = "alerts.backupReminder"
)

type AlertOptions struct {
	// LookaheadDays overrides ExpiringSoonDays when positive.
	LookaheadDays int

	DisabledCategories map[kit.CategoryID]bool

	// CustomCategories extends the category walk after the standard ones.
	CustomCategories []kit.CategoryID

	// RemindBackup enables the backup reminder; LastBackupAt nil means never.
	RemindBackup bool
	LastBackupAt *time.Time
}

// GenerateAlerts derives the current alerts from inventory. Critical alerts
// come first, then warnings, then info; generation order is kept within a severity.
func GenerateAlerts(items []storage.InventoryItem, now time.Time, opts AlertOptions) []Alert {
	var out []Alert
	out = append(out, expirationAlerts(items, now, opts)...)
	out = append(out, stockAlerts(items, opts)...)
	if a, ok := backupAlert(items, now, opts); ok {
		out = append(out, a)
	}
	return partitionBySeverity(out)
}

func expirationAlerts(items []storage.InventoryItem, now time.Time, opts AlertOptions) []Alert {
	lookahead := opts.LookaheadDays
	if lookahead <= 0 {
		lookahead = ExpiringSoonDays
	}

	var out []Alert
	for _, it := range items {
		if it.NeverExpires || it.ExpirationDate == nil || it.Quantity <= 0 {
			continue
		}
		if opts.DisabledCategories[kit.CategoryID(it.CategoryID)] {
			continue
		}
		left := calendarDays(now, *it.ExpirationDate)
		switch {
		case left < 0:
			out = append(out, Alert{
				ID:         AlertPrefixExpired + it.ID,
				Severity:   SeverityCritical,
				MessageKey: MsgExpired,
				ItemID:     it.ID,
				ItemName:   it.Name,
				CategoryID: kit.CategoryID(it.CategoryID),
				Days:       -left,
			})
		case left <= lookahead:
			out = append(out, Alert{
				ID:         AlertPrefixExpiringSoon + it.ID,
				Severity:   SeverityWarning,
				MessageKey: MsgExpiringSoon,
				ItemID:     it.ID,
				ItemName:   it.Name,
				CategoryID: kit.CategoryID(it.CategoryID),
				Days:       left,
			})
		}
	}
	return out
}

// calendarDays counts UTC date boundaries from one day to another, so an item
// expiring today is 0 days away for the whole day.
func calendarDays(from, to time.Time) int {
	day := func(t time.Time) time.Time {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(math.Round(day(to).Sub(day(from)).Hours() / 24))
}

// daysBetween rounds a positive interval up to whole days.
func daysBetween(from, to time.Time) int {
	d := to.Sub(from).Hours() / 24
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d))
}

type categoryTotals struct {
	actual      float64
	recommended float64
}

func stockAlerts(items []storage.InventoryItem, opts AlertOptions) []Alert {
	totals := map[kit.CategoryID]*categoryTotals{}
	for _, it := range items {
		if it.MarkedAsEnough {
			continue
		}
		id := kit.CategoryID(it.CategoryID)
		t := totals[id]
		if t == nil {
			t = &categoryTotals{}
			totals[id] = t
		}
		if it.Quantity > 0 {
			t.actual += it.Quantity
		}
		if it.RecommendedQuantity > 0 {
			t.recommended += float64(it.RecommendedQuantity)
		}
	}

	order := append(append([]kit.CategoryID(nil), kit.StandardCategories...), opts.CustomCategories...)
	var out []Alert
	for _, id := range order {
		t := totals[id]
		if t == nil || t.recommended <= 0 || opts.DisabledCategories[id] {
			continue
		}
		pct := int(math.Floor(t.actual / t.recommended * 100))
		switch {
		case t.actual <= 0:
			out = append(out, Alert{
				ID:         AlertPrefixOutOfStock + string(id),
				Severity:   SeverityCritical,
				MessageKey: MsgOutOfStock,
				CategoryID: id,
			})
		case pct < CriticalStockPercent:
			out = append(out, Alert{
				ID:         AlertPrefixCritical + string(id),
				Severity:   SeverityCritical,
				MessageKey: MsgCriticallyLow,
				CategoryID: id,
				Percent:    pct,
			})
		case pct < LowStockPercent:
			out = append(out, Alert{
				ID:         AlertPrefixLow + string(id),
				Severity:   SeverityWarning,
				MessageKey: MsgRunningLow,
				CategoryID: id,
				Percent:    pct,
			})
		}
	}
	return out
}

func backupAlert(items []storage.InventoryItem, now time.Time, opts AlertOptions) (Alert, bool) {
	if !opts.RemindBackup || len(items) == 0 {
		return Alert{}, false
	}
	a := Alert{ID: AlertIDBackupReminder, Severity: SeverityInfo, MessageKey: MsgBackupReminder}
	if opts.LastBackupAt == nil {
		return a, true
	}
	age := daysBetween(*opts.LastBackupAt, now)
	if age <= BackupReminderDays {
		return Alert{}, false
	}
	a.Days = age
	return a, true
}

// partitionBySeverity is a stable partition, not a sort.
func partitionBySeverity(alerts []Alert) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, sev := range []Severity{SeverityCritical, SeverityWarning, SeverityInfo} {
		for _, a := range alerts {
			if a.Severity == sev {
				out = append(out, a)
			}
		}
	}
	return out
}

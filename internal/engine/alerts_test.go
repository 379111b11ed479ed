package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

var alertNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func expiring(id string, days int) storage.InventoryItem {
	exp := alertNow.AddDate(0, 0, days)
	return storage.InventoryItem{
		ID:             id,
		Name:           id,
		CategoryID:     string(kit.CategoryFood),
		Quantity:       1,
		ExpirationDate: &exp,
	}
}

func alertIDs(alerts []Alert) []string {
	var out []string
	for _, a := range alerts {
		out = append(out, a.ID)
	}
	return out
}

func TestExpirationAlerts(t *testing.T) {
	never := expiring("honey", -100)
	never.NeverExpires = true
	empty := expiring("empty", -1)
	empty.Quantity = 0
	noDate := storage.InventoryItem{ID: "salt", CategoryID: string(kit.CategoryFood), Quantity: 1}

	items := []storage.InventoryItem{
		expiring("milk", -2),
		expiring("bread", 3),
		expiring("rice", 30),
		never,
		empty,
		noDate,
	}
	got := GenerateAlerts(items, alertNow, AlertOptions{})
	require.Equal(t, []string{"expired-milk", "expiring-soon-bread"}, alertIDs(got))

	require.Equal(t, SeverityCritical, got[0].Severity)
	require.Equal(t, MsgExpired, got[0].MessageKey)
	require.Equal(t, 2, got[0].Days)
	require.Equal(t, SeverityWarning, got[1].Severity)
	require.Equal(t, 3, got[1].Days)
}

func TestExpirationLookaheadBoundary(t *testing.T) {
	items := []storage.InventoryItem{expiring("a", ExpiringSoonDays), expiring("b", ExpiringSoonDays+1)}
	require.Equal(t, []string{"expiring-soon-a"}, alertIDs(GenerateAlerts(items, alertNow, AlertOptions{})))

	got := GenerateAlerts(items, alertNow, AlertOptions{LookaheadDays: 14})
	require.Equal(t, []string{"expiring-soon-a", "expiring-soon-b"}, alertIDs(got))
}

func TestExpiringTodayIsAWarning(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	items := []storage.InventoryItem{
		{ID: "a", Name: "a", CategoryID: string(kit.CategoryFood), Quantity: 1, ExpirationDate: &today},
		{ID: "b", Name: "b", CategoryID: string(kit.CategoryFood), Quantity: 1, ExpirationDate: &yesterday},
	}
	got := GenerateAlerts(items, alertNow, AlertOptions{})
	require.Equal(t, []string{"expired-b", "expiring-soon-a"}, alertIDs(got))
	require.Equal(t, 1, got[0].Days)
	require.Equal(t, SeverityWarning, got[1].Severity)
	require.Equal(t, 0, got[1].Days)

	lateEvening := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	got = GenerateAlerts(items[:1], lateEvening, AlertOptions{})
	require.Equal(t, []string{"expiring-soon-a"}, alertIDs(got))
}

func withStock(id string, cat kit.CategoryID, qty float64, rec int) storage.InventoryItem {
	return storage.InventoryItem{ID: id, Name: id, CategoryID: string(cat), Quantity: qty, RecommendedQuantity: rec, NeverExpires: true}
}

func TestStockAlertThresholds(t *testing.T) {
	items := []storage.InventoryItem{
		withStock("water", kit.CategoryWaterBeverages, 0, 10),
		withStock("rice", kit.CategoryFood, 2, 10),
		withStock("candles", kit.CategoryLightPower, 4, 10),
		withStock("bandage", kit.CategoryMedicalHealth, 5, 10),
		withStock("radio", kit.CategoryCommunicationInfo, 0, 0),
	}
	got := GenerateAlerts(items, alertNow, AlertOptions{})
	require.Equal(t, []string{
		"category-out-of-stock-water-beverages",
		"category-critical-food",
		"category-low-light-power",
	}, alertIDs(got))
	require.Equal(t, 20, got[1].Percent)
	require.Equal(t, 40, got[2].Percent)
	require.Equal(t, SeverityWarning, got[2].Severity)
}

func TestStockAlertsSkipMarkedAndDisabled(t *testing.T) {
	enough := withStock("water", kit.CategoryWaterBeverages, 0, 10)
	enough.MarkedAsEnough = true
	items := []storage.InventoryItem{
		enough,
		withStock("rice", kit.CategoryFood, 0, 10),
		withStock("tent", "camping", 0, 2),
	}
	opts := AlertOptions{DisabledCategories: map[kit.CategoryID]bool{kit.CategoryFood: true}}
	require.Empty(t, GenerateAlerts(items, alertNow, opts))

	opts.CustomCategories = []kit.CategoryID{"camping"}
	require.Equal(t, []string{"category-out-of-stock-camping"}, alertIDs(GenerateAlerts(items, alertNow, opts)))
}

func TestAlertsArePartitionedBySeverity(t *testing.T) {
	items := []storage.InventoryItem{
		expiring("bread", 2),
		withStock("candles", kit.CategoryLightPower, 4, 10),
		expiring("milk", -1),
		withStock("water", kit.CategoryWaterBeverages, 0, 10),
	}
	got := GenerateAlerts(items, alertNow, AlertOptions{RemindBackup: true})
	require.Equal(t, []string{
		"expired-milk",
		"category-out-of-stock-water-beverages",
		"expiring-soon-bread",
		"category-low-light-power",
		AlertIDBackupReminder,
	}, alertIDs(got))
}

func TestBackupReminder(t *testing.T) {
	items := []storage.InventoryItem{withStock("water", kit.CategoryWaterBeverages, 10, 10)}

	require.Empty(t, GenerateAlerts(nil, alertNow, AlertOptions{RemindBackup: true}))
	require.Empty(t, GenerateAlerts(items, alertNow, AlertOptions{}))

	got := GenerateAlerts(items, alertNow, AlertOptions{RemindBackup: true})
	require.Equal(t, []string{AlertIDBackupReminder}, alertIDs(got))
	require.Equal(t, SeverityInfo, got[0].Severity)

	recent := alertNow.AddDate(0, 0, -10)
	require.Empty(t, GenerateAlerts(items, alertNow, AlertOptions{RemindBackup: true, LastBackupAt: &recent}))

	old := alertNow.AddDate(0, 0, -45)
	got = GenerateAlerts(items, alertNow, AlertOptions{RemindBackup: true, LastBackupAt: &old})
	require.Len(t, got, 1)
	require.Equal(t, 45, got[0].Days)
}

package engine

import (
	"context"
	"strings"
	"time"
)

func (s *Service) alertOptions() AlertOptions {
	return AlertOptions{
		LookaheadDays:      s.lookahead,
		DisabledCategories: disabledCategorySet(s.doc),
		CustomCategories:   customCategoryIDs(s.doc),
		RemindBackup:       true,
		LastBackupAt:       s.doc.Settings.LastBackupAt,
	}
}

// Alerts returns every alert that currently fires, dismissed or not.
func (s *Service) Alerts(now time.Time) []Alert {
	return GenerateAlerts(s.doc.Items, now, s.alertOptions())
}

// VisibleAlerts is Alerts minus dismissed ids.
func (s *Service) VisibleAlerts(now time.Time) []Alert {
	return s.overrides.Visible(s.Alerts(now))
}

func (s *Service) HiddenAlerts(now time.Time) []Alert {
	return s.overrides.Hidden(s.Alerts(now))
}

func (s *Service) Dashboard(now time.Time) Dashboard {
	all := s.Alerts(now)
	cur := s.kits.Current()
	return Dashboard{
		Overall:     OverallScore(s.scoreInput()),
		Categories:  s.Categories(),
		Alerts:      s.overrides.Visible(all),
		HiddenCount: s.overrides.HiddenCount(all),
		KitID:       cur.ID,
		KitName:     cur.Meta.Name,
		Household:   s.doc.Household,
	}
}

// DismissAlert records the id; the underlying condition is left alone.
func (s *Service) DismissAlert(ctx context.Context, alertID string) error {
	alertID = strings.TrimSpace(alertID)
	if alertID == "" {
		return s.refuse("dismiss alert", "", "alert id is required")
	}
	if s.overrides.IsDismissed(alertID) {
		return nil
	}
	s.overrides.Dismiss(alertID)
	return s.save(ctx, "dismiss alert")
}

func (s *Service) ReactivateAlert(ctx context.Context, alertID string) error {
	if !s.overrides.Reactivate(alertID) {
		return s.refuse("reactivate alert", alertID, "alert is not dismissed")
	}
	return s.save(ctx, "reactivate alert")
}

func (s *Service) ReactivateAllAlerts(ctx context.Context) error {
	s.overrides.ReactivateAll()
	return s.save(ctx, "reactivate all alerts")
}

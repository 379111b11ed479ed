package engine

import "sort"

// Tracker holds the user's overrides: dismissed alert ids and disabled
// recommended item ids. Dismissed ids whose condition has gone away stay in
// the set, inert, until reactivated.
type Tracker struct {
	dismissed map[string]struct{}
	disabled  map[string]struct{}
}

func NewTracker(dismissed, disabled []string) *Tracker {
	t := &Tracker{
		dismissed: make(map[string]struct{}, len(dismissed)),
		disabled:  make(map[string]struct{}, len(disabled)),
	}
	for _, id := range dismissed {
		if id != "" {
			t.dismissed[id] = struct{}{}
		}
	}
	for _, id := range disabled {
		if id != "" {
			t.disabled[id] = struct{}{}
		}
	}
	return t
}

func (t *Tracker) Dismiss(alertID string) {
	if alertID == "" {
		return
	}
	t.dismissed[alertID] = struct{}{}
}

// Reactivate reports whether the id was dismissed.
func (t *Tracker) Reactivate(alertID string) bool {
	if _, ok := t.dismissed[alertID]; !ok {
		return false
	}
	delete(t.dismissed, alertID)
	return true
}

func (t *Tracker) ReactivateAll() {
	t.dismissed = map[string]struct{}{}
}

func (t *Tracker) IsDismissed(alertID string) bool {
	_, ok := t.dismissed[alertID]
	return ok
}

// Visible filters freshly generated alerts down to those not dismissed.
func (t *Tracker) Visible(alerts []Alert) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if !t.IsDismissed(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

// Hidden is the complement of Visible: alerts that would fire but are dismissed.
func (t *Tracker) Hidden(alerts []Alert) []Alert {
	var out []Alert
	for _, a := range alerts {
		if t.IsDismissed(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

// HiddenCount counts only currently firing dismissed alerts, so stale ids
// never inflate it.
func (t *Tracker) HiddenCount(alerts []Alert) int {
	return len(t.Hidden(alerts))
}

func (t *Tracker) Disable(itemID string) {
	if itemID == "" {
		return
	}
	t.disabled[itemID] = struct{}{}
}

func (t *Tracker) Enable(itemID string) bool {
	if _, ok := t.disabled[itemID]; !ok {
		return false
	}
	delete(t.disabled, itemID)
	return true
}

func (t *Tracker) EnableAll() {
	t.disabled = map[string]struct{}{}
}

func (t *Tracker) IsDisabled(itemID string) bool {
	_, ok := t.disabled[itemID]
	return ok
}

// DisabledSet is a copy suitable for ScoreInput.
func (t *Tracker) DisabledSet() map[string]bool {
	out := make(map[string]bool, len(t.disabled))
	for id := range t.disabled {
		out[id] = true
	}
	return out
}

// DismissedIDs and DisabledIDs are sorted snapshots for persistence.
func (t *Tracker) DismissedIDs() []string { return sortedSet(t.dismissed) }

func (t *Tracker) DisabledIDs() []string { return sortedSet(t.disabled) }

func sortedSet(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

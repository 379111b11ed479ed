package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/i18n"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

var boardNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestBoard(t *testing.T) (boardModel, *engine.Service) {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "prep.json"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	svc, err := engine.NewService(ctx, engine.ServiceDeps{Store: store, Clock: func() time.Time { return boardNow }})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	bundle, err := i18n.Default()
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	return newBoardModel(ctx, svc, bundle, func() time.Time { return boardNow }), svc
}

func key(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m boardModel, msg tea.Msg) (boardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(boardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func TestBoardLoadsDashboard(t *testing.T) {
	m, _ := newTestBoard(t)

	m, _ = update(t, m, m.loadCmd()())
	if m.loading {
		t.Fatalf("still loading after loadedMsg")
	}
	if got := len(m.categories.Rows()); got != len(kit.StandardCategories) {
		t.Fatalf("rows=%d, want %d", got, len(kit.StandardCategories))
	}
	if !strings.Contains(m.View(), "Water & beverages") {
		t.Fatalf("view is missing category names:\n%s", m.View())
	}
}

func TestBoardDismissAndReactivate(t *testing.T) {
	m, svc := newTestBoard(t)
	ctx := context.Background()

	past := boardNow.AddDate(0, 0, -1)
	it, err := svc.AddItem(ctx, engine.NewItem{Name: "Milk", CategoryID: "food", Quantity: 1, Unit: "liters", ExpirationDate: &past})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	m, _ = update(t, m, m.loadCmd()())
	if len(m.dash.Alerts) == 0 || m.dash.Alerts[0].ID != engine.AlertPrefixExpired+it.ID {
		t.Fatalf("alerts=%+v, want expired first", m.dash.Alerts)
	}

	m, cmd := update(t, m, key("d"))
	if cmd != nil {
		t.Fatalf("dismiss without alert focus should not run a command")
	}

	m, _ = update(t, m, key("tab"))
	m, cmd = update(t, m, key("d"))
	if cmd == nil {
		t.Fatalf("expected dismiss command")
	}
	m, cmd = update(t, m, cmd())
	m, _ = update(t, m, cmd())
	if m.dash.HiddenCount != 1 {
		t.Fatalf("HiddenCount=%d, want 1", m.dash.HiddenCount)
	}
	if !svc.Tracker().IsDismissed(engine.AlertPrefixExpired + it.ID) {
		t.Fatalf("alert not dismissed in service")
	}

	m, cmd = update(t, m, key("a"))
	m, cmd = update(t, m, cmd())
	m, _ = update(t, m, cmd())
	if m.dash.HiddenCount != 0 {
		t.Fatalf("HiddenCount=%d after reactivate, want 0", m.dash.HiddenCount)
	}
}

func TestBoardQuits(t *testing.T) {
	m, _ := newTestBoard(t)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

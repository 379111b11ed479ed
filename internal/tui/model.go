package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/i18n"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

type focus int

const (
	focusCategories focus = iota
	focusAlerts
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	bundle *i18n.Bundle
	now    func() time.Time

	width  int
	height int

	dash       engine.Dashboard
	categories table.Model
	alertSel   int
	focus      focus

	lastLog string
	loading bool
}

type loadedMsg struct {
	dash engine.Dashboard
}

type actionMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, bundle *i18n.Bundle, now func() time.Time) boardModel {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Category", Width: 26},
		{Title: "Score", Width: 6},
		{Title: "", Width: 12},
		{Title: "Items", Width: 6},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return boardModel{
		ctx:        ctx,
		svc:        svc,
		bundle:     bundle,
		now:        now,
		categories: t,
		loading:    true,
		lastLog:    "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{dash: m.svc.Dashboard(m.now())}
	}
}

func (m boardModel) dismissCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DismissAlert(m.ctx, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: "Dismissed " + id + "."}
	}
}

func (m boardModel) reactivateAllCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.ReactivateAllAlerts(m.ctx); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: "All alerts reactivated."}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.dash = msg.dash
		m.categories.SetRows(m.categoryRows())
		if m.alertSel >= len(m.dash.Alerts) {
			m.alertSel = len(m.dash.Alerts) - 1
		}
		if m.alertSel < 0 {
			m.alertSel = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", m.now().Local().Format("15:04:05"))
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "tab":
			if m.focus == focusCategories {
				m.focus = focusAlerts
				m.categories.Blur()
			} else {
				m.focus = focusCategories
				m.categories.Focus()
			}
			return m, nil
		case "a":
			m.lastLog = "Reactivating…"
			return m, m.reactivateAllCmd()
		case "d":
			if m.focus != focusAlerts || len(m.dash.Alerts) == 0 {
				m.lastLog = "Select an alert first (tab)."
				return m, nil
			}
			return m, m.dismissCmd(m.dash.Alerts[m.alertSel].ID)
		}
		if m.focus == focusAlerts {
			switch msg.String() {
			case "up", "k":
				if m.alertSel > 0 {
					m.alertSel--
				}
			case "down", "j":
				if m.alertSel < len(m.dash.Alerts)-1 {
					m.alertSel++
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

func (m boardModel) categoryRows() []table.Row {
	lang := m.svc.Language()
	customs := m.svc.CustomCategories()
	rows := make([]table.Row, 0, len(m.dash.Categories))
	for _, c := range m.dash.Categories {
		score := fmt.Sprintf("%d%%", c.Score)
		if c.Disabled {
			score = "off"
		}
		icon := ui.CategoryIcon(c.ID)
		if c.Custom != nil && c.Custom.Icon != "" {
			icon = c.Custom.Icon
		}
		rows = append(rows, table.Row{
			icon,
			m.bundle.CategoryLabel(lang, c.ID, customs),
			score,
			ui.Bar(c.Score, 10),
			fmt.Sprintf("%d", c.InventoryItems),
		})
	}
	return rows
}

func (m boardModel) View() string {
	if m.loading && len(m.dash.Categories) == 0 {
		return "Loading…\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(ui.Panel.Render(m.categories.View()))
	b.WriteString("\n")
	b.WriteString(m.renderAlerts())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	lang := m.svc.Language()
	h := m.dash.Household
	return fmt.Sprintf("%s %s %s %s | %s %s | %s %d+%d, %d d",
		ui.Title.Render(ui.IconShield),
		m.bundle.T(lang, "dashboard.overall"),
		ui.ScoreText(m.dash.Overall),
		ui.Bar(m.dash.Overall, 20),
		m.bundle.T(lang, "dashboard.kit"),
		m.dash.KitName,
		m.bundle.T(lang, "dashboard.household"),
		h.Adults, h.Children, h.SupplyDurationDays,
	)
}

func (m boardModel) renderAlerts() string {
	lang := m.svc.Language()
	customs := m.svc.CustomCategories()

	title := ui.PanelTitle.Render(ui.IconBell + " Alerts")
	if m.dash.HiddenCount > 0 {
		title += " " + ui.Muted.Render(m.bundle.T(lang, "dashboard.hidden", "count", m.dash.HiddenCount))
	}
	lines := []string{title}
	if len(m.dash.Alerts) == 0 {
		lines = append(lines, ui.Good.Render("(nothing needs attention)"))
	}
	for i, a := range m.dash.Alerts {
		cursor := "  "
		if m.focus == focusAlerts && i == m.alertSel {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s", cursor, ui.SeverityIcon(a.Severity), m.bundle.AlertText(lang, a, customs...))
		if m.focus == focusAlerts && i == m.alertSel {
			line = ui.SelectedRow.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderFooter() string {
	keys := ui.Muted.Render("tab: switch pane · ↑/↓: move · d: dismiss · a: reactivate all · r: refresh · q: quit")
	return "\n" + m.lastLog + "\n" + keys
}

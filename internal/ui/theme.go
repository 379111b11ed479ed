package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
)

// Shared CLI + TUI theme.

const (
	IconShield  = "🛡️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "📦"
	IconKit     = "🎒"
	IconHouse   = "🏠"
	IconBell    = "🔔"
	IconMute    = "🔕"
	IconSave    = "💾"
	IconUndo    = "↩️"
	IconTrash   = "🗑️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

var categoryIcons = map[kit.CategoryID]string{
	kit.CategoryWaterBeverages:    "💧",
	kit.CategoryFood:              "🥫",
	kit.CategoryCookingHeat:       "🔥",
	kit.CategoryLightPower:        "🔦",
	kit.CategoryCommunicationInfo: "📻",
	kit.CategoryMedicalHealth:     "🩹",
	kit.CategoryHygieneSanitation: "🧼",
	kit.CategoryToolsSupplies:     "🧰",
	kit.CategoryCashDocuments:     "💶",
	kit.CategoryPets:              "🐾",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryIcon falls back to a box for categories without their own icon.
func CategoryIcon(id kit.CategoryID) string {
	if icon, ok := categoryIcons[id]; ok {
		return icon
	}
	return IconBox
}

// ScoreText colours a 0-100 score: below 50 bad, below 80 warn, else good.
func ScoreText(score int) string {
	s := fmt.Sprintf("%3d%%", score)
	switch {
	case score < 50:
		return Bad.Render(s)
	case score < 80:
		return Warn.Render(s)
	default:
		return Good.Render(s)
	}
}

func SeverityText(sev engine.Severity, label string) string {
	switch sev {
	case engine.SeverityCritical:
		return Bad.Render(label)
	case engine.SeverityWarning:
		return Warn.Render(label)
	default:
		return H2.Render(label)
	}
}

func SeverityIcon(sev engine.Severity) string {
	switch sev {
	case engine.SeverityCritical:
		return IconError
	case engine.SeverityWarning:
		return IconWarn
	default:
		return IconInfo
	}
}

// Bar renders value/100 as a fixed-width ASCII bar.
func Bar(value, width int) string {
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

const dateLayout = "2006-01-02"

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(what + " is required")
		}
		return nil
	}
}

// parseExpiry accepts a date, or "never"/"" for no expiration.
func parseExpiry(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "never") {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("date must look like %s", dateLayout)
	}
	return &t, nil
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func expiryText(it storage.InventoryItem) string {
	if it.NeverExpires || it.ExpirationDate == nil {
		return ui.Muted.Render("never expires")
	}
	return it.ExpirationDate.Format(dateLayout)
}

func (a *app) unitText(u string) string {
	return a.bundle.Unit(a.lang(), kit.Unit(u))
}

func (a *app) categoryText(id kit.CategoryID) string {
	icon := ui.CategoryIcon(id)
	for _, c := range a.svc.CustomCategories() {
		if c.ID == string(id) && c.Icon != "" {
			icon = c.Icon
		}
	}
	return icon + " " + a.bundle.CategoryLabel(a.lang(), id, a.svc.CustomCategories())
}

func (a *app) alertLine(al engine.Alert) string {
	text := a.bundle.AlertText(a.lang(), al, a.svc.CustomCategories()...)
	sev := a.bundle.T(a.lang(), "severity."+string(al.Severity))
	return fmt.Sprintf("%s %s %s %s", ui.SeverityIcon(al.Severity), ui.SeverityText(al.Severity, sev), text, ui.Muted.Render("("+al.ID+")"))
}

func (a *app) printIssues(cmd *cobra.Command, title string, issues []kit.Issue, style func(...string) string) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), style(title))
	for _, is := range issues {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", is.String())
	}
}

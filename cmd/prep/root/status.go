package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show preparedness scores and alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			lang := a.lang()
			d := a.svc.Dashboard(time.Now())

			if !a.svc.Settings().OnboardingCompleted {
				fmt.Fprintf(out, "%s Run %s to describe your household.\n\n", ui.Muted.Render("💡"), ui.Key.Render("prep setup"))
			}

			fmt.Fprintln(out, ui.Heading(ui.IconShield, a.bundle.T(lang, "dashboard.overall")))
			fmt.Fprintf(out, "%s %s\n", ui.ScoreText(d.Overall), ui.Bar(d.Overall, 30))
			fmt.Fprintln(out, ui.LabelValue(a.bundle.T(lang, "dashboard.kit"), fmt.Sprintf("%s %s", d.KitName, ui.Muted.Render("("+d.KitID+")"))))
			h := d.Household
			fmt.Fprintln(out, ui.LabelValue(a.bundle.T(lang, "dashboard.household"),
				fmt.Sprintf("%d adults, %d children, %d pets, %d days", h.Adults, h.Children, h.Pets, h.SupplyDurationDays)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Categories"))
			for _, c := range d.Categories {
				score := ui.ScoreText(c.Score)
				if c.Disabled {
					score = ui.Muted.Render(" off")
				}
				fmt.Fprintf(out, "- %s %s %s %s\n", score, ui.Bar(c.Score, 10), a.categoryText(c.ID),
					ui.Muted.Render(fmt.Sprintf("(%d recommended, %d items)", c.Recommended, c.InventoryItems)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconBell+" Alerts"))
			if len(d.Alerts) == 0 {
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Nothing needs attention"))
			}
			for _, al := range d.Alerts {
				fmt.Fprintln(out, "- "+a.alertLine(al))
			}
			if d.HiddenCount > 0 {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconMute+" "+a.bundle.T(lang, "dashboard.hidden", "count", d.HiddenCount)))
			}
			return nil
		},
	}

	return cmd
}

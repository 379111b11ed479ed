package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newSetupCmd() *cobra.Command {
	var h storage.Household
	var lang string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Describe your household and finish onboarding",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if lang == "" {
				lang = a.cfg.Language
			}
			tag := a.bundle.Match(lang, os.Getenv("LC_ALL"), os.Getenv("LANG"))
			if err := a.svc.SetLanguage(ctx, string(tag)); err != nil {
				return err
			}
			saved, err := a.svc.SetHousehold(ctx, h)
			if err != nil {
				return err
			}
			if err := a.svc.CompleteOnboarding(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Ready"))
			fmt.Fprintln(out, ui.LabelValue("Language", string(tag)))
			printHousehold(out, saved)
			fmt.Fprintf(out, "%s Next: %s\n", ui.Muted.Render(ui.IconInfo), ui.Key.Render("prep status"))
			return nil
		},
	}

	def := engine.DefaultHousehold()
	cmd.Flags().IntVar(&h.Adults, "adults", def.Adults, "Adults in the household")
	cmd.Flags().IntVar(&h.Children, "children", 0, "Children in the household")
	cmd.Flags().IntVar(&h.Pets, "pets", 0, "Pets in the household")
	cmd.Flags().IntVar(&h.SupplyDurationDays, "days", def.SupplyDurationDays, "Days of supplies to keep")
	cmd.Flags().BoolVar(&h.UseFreezer, "freezer", false, "Count freezer items")
	cmd.Flags().StringVar(&lang, "lang", "", "Interface language (en or fi)")

	return cmd
}

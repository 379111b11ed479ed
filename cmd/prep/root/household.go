package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func printHousehold(out io.Writer, h storage.Household) {
	fmt.Fprintln(out, ui.Heading(ui.IconHouse, "Household"))
	fmt.Fprintln(out, ui.LabelValue("Adults", h.Adults))
	fmt.Fprintln(out, ui.LabelValue("Children", h.Children))
	fmt.Fprintln(out, ui.LabelValue("Pets", h.Pets))
	fmt.Fprintln(out, ui.LabelValue("Days", h.SupplyDurationDays))
	freezer := "no"
	if h.UseFreezer {
		freezer = "yes"
	}
	fmt.Fprintln(out, ui.LabelValue("Freezer", freezer))
}

func newHouseholdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "household",
		Short: "Show or change the household",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			printHousehold(cmd.OutOrStdout(), a.svc.Household())
			return nil
		},
	}

	cmd.AddCommand(newHouseholdSetCmd())
	return cmd
}

func newHouseholdSetCmd() *cobra.Command {
	var adults, children, pets, days int
	var freezer bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change household fields; unset flags keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h := a.svc.Household()
			f := cmd.Flags()
			if f.Changed("adults") {
				h.Adults = adults
			}
			if f.Changed("children") {
				h.Children = children
			}
			if f.Changed("pets") {
				h.Pets = pets
			}
			if f.Changed("days") {
				h.SupplyDurationDays = days
			}
			if f.Changed("freezer") {
				h.UseFreezer = freezer
			}

			saved, err := a.svc.SetHousehold(ctx, h)
			if err != nil {
				return err
			}
			printHousehold(cmd.OutOrStdout(), saved)
			return nil
		},
	}

	cmd.Flags().IntVar(&adults, "adults", 0, "Adults in the household")
	cmd.Flags().IntVar(&children, "children", 0, "Children in the household")
	cmd.Flags().IntVar(&pets, "pets", 0, "Pets in the household")
	cmd.Flags().IntVar(&days, "days", 0, "Days of supplies to keep")
	cmd.Flags().BoolVar(&freezer, "freezer", false, "Count freezer items")

	return cmd
}

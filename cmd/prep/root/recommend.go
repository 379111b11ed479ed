package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"rec"},
		Short:   "Show and toggle kit recommendations",
	}

	cmd.AddCommand(
		newRecommendListCmd(),
		newRecommendToggleCmd("disable", "Hide a recommendation from scores and lists", false),
		newRecommendToggleCmd("enable", "Restore a hidden recommendation", true),
		newRecommendEnableAllCmd(),
	)
	return cmd
}

func newRecommendListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recommended items with what you have",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconKit, a.svc.CurrentKit().Meta.Name))
			var last kit.CategoryID
			for _, st := range a.svc.Recommendations() {
				if category != "" && string(st.Item.Category) != category {
					continue
				}
				if st.Item.Category != last {
					fmt.Fprintln(out, ui.H2.Render(a.categoryText(st.Item.Category)))
					last = st.Item.Category
				}
				mark := ui.Bad.Render("✗")
				switch {
				case st.Disabled:
					mark = ui.Muted.Render("–")
				case st.FreezerOnly:
					mark = ui.Muted.Render("❄")
				case st.Enough:
					mark = ui.Good.Render("✓")
				}
				line := fmt.Sprintf("%s %s  %s / %d %s %s", mark, st.Name, formatQty(st.Actual), st.Quantity,
					a.unitText(string(st.Item.Unit)), ui.Muted.Render("("+st.Item.ID+")"))
				if st.Disabled {
					line = ui.Muted.Render(line + " disabled")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show one category")
	return cmd
}

func newRecommendToggleCmd(use, short string, enable bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <kit-item-id>",
		Short: short,
		Args:  exactArgs(1, "kit item id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if enable {
				err = a.svc.EnableRecommendation(ctx, args[0])
			} else {
				err = a.svc.DisableRecommendation(ctx, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %sd\n", ui.Good.Render(ui.IconDone), args[0], use)
			return nil
		},
	}
	return cmd
}

func newRecommendEnableAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable-all",
		Short: "Restore every hidden recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.EnableAllRecommendations(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" All recommendations enabled"))
			return nil
		},
	}
	return cmd
}

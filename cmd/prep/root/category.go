package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(
		newCategoryListCmd(),
		newCategoryAddCmd(),
		newCategoryRemoveCmd(),
		newCategoryToggleCmd("enable", true),
		newCategoryToggleCmd("disable", false),
	)
	return cmd
}

func newCategoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List standard and custom categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			for _, c := range a.svc.Categories() {
				line := fmt.Sprintf("%s %s", a.categoryText(c.ID), ui.Muted.Render("("+string(c.ID)+")"))
				if c.Custom != nil {
					line += ui.Muted.Render(" custom")
				}
				if c.Disabled {
					line = ui.Muted.Render(line + " disabled")
				}
				fmt.Fprintln(out, "- "+line)
			}
			return nil
		},
	}
	return cmd
}

func newCategoryAddCmd() *cobra.Command {
	var name, nameFi, icon, color string
	var sort int

	cmd := &cobra.Command{
		Use:   "add <category-id>",
		Short: "Create a custom category",
		Args:  exactArgs(1, "category id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := kit.Category{
				ID:    kit.CategoryID(args[0]),
				Names: map[kit.Language]string{kit.LanguageEnglish: name},
				Icon:  icon,
				Color: color,
			}
			if nameFi != "" {
				c.Names[kit.LanguageFinnish] = nameFi
			}
			if cmd.Flags().Changed("sort") {
				c.SortOrder = &sort
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.AddCustomCategory(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", ui.Good.Render(ui.IconPlus), a.categoryText(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "English name")
	cmd.Flags().StringVar(&nameFi, "name-fi", "", "Finnish name")
	cmd.Flags().StringVar(&icon, "icon", "📦", "Icon (an emoji)")
	cmd.Flags().StringVar(&color, "color", "", "Hex color such as #3366aa")
	cmd.Flags().IntVar(&sort, "sort", 0, "Sort order among custom categories")
	return cmd
}

func newCategoryRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <category-id>",
		Short: "Delete an unused custom category",
		Args:  exactArgs(1, "category id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.RemoveCustomCategory(ctx, kit.CategoryID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", ui.Muted.Render(ui.IconTrash), args[0])
			return nil
		},
	}
	return cmd
}

func newCategoryToggleCmd(use string, enabled bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <category-id>",
		Short: use + " a category for scores and alerts",
		Args:  exactArgs(1, "category id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.SetCategoryEnabled(ctx, kit.CategoryID(args[0]), enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %sd\n", ui.Good.Render(ui.IconDone), a.categoryText(kit.CategoryID(args[0])), use)
			return nil
		},
	}
	return cmd
}

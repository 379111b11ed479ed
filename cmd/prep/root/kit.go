package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newKitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kit",
		Short: "Manage recommendation kits",
	}

	cmd.AddCommand(
		newKitListCmd(),
		newKitSelectCmd(),
		newKitUploadCmd(),
		newKitRemoveCmd(),
		newKitForkCmd(),
		newKitExportCmd(),
		newKitRenameCmd(),
		newKitAddItemCmd(),
		newKitRemoveItemCmd(),
	)
	return cmd
}

func newKitListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available kits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			selected := a.svc.Registry().SelectedID()
			fmt.Fprintln(out, ui.Heading(ui.IconKit, "Kits"))
			for _, k := range a.svc.Kits() {
				mark := "  "
				if k.ID == selected {
					mark = ui.Gold.Render("▶ ")
				}
				kind := "custom"
				if k.BuiltIn {
					kind = "built-in"
				}
				fmt.Fprintf(out, "%s%s %s %s\n", mark, k.Meta.Name, ui.Muted.Render("("+k.ID+")"),
					ui.Muted.Render(fmt.Sprintf("%s, %d items", kind, len(k.Items))))
			}
			return nil
		},
	}
	return cmd
}

func newKitSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <kit-id>",
		Short: "Switch the active kit",
		Args:  exactArgs(1, "kit id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.SelectKit(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Using %s\n", ui.Good.Render(ui.IconDone), a.svc.CurrentKit().Meta.Name)
			return nil
		},
	}
	return cmd
}

func newKitUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Validate and import a kit file",
		Args:  exactArgs(1, "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, res, err := a.svc.UploadKit(ctx, data)
			if err != nil {
				return err
			}
			a.printIssues(cmd, ui.IconError+" Errors", res.Errors, ui.Bad.Render)
			a.printIssues(cmd, ui.IconWarn+" Warnings", res.Warnings, ui.Warn.Render)
			if id == "" {
				return errors.New("kit rejected")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %s\n", ui.Good.Render(ui.IconPlus), ui.Key.Render(id))
			return nil
		},
	}
	return cmd
}

func newKitRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <kit-id>",
		Short: "Delete a custom kit",
		Args:  exactArgs(1, "kit id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.DeleteKit(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", ui.Muted.Render(ui.IconTrash), args[0])
			return nil
		},
	}
	return cmd
}

func newKitForkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fork",
		Short: "Copy the selected built-in kit so it can be edited",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := a.svc.ForkKit(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Editing %s\n", ui.Good.Render(ui.IconDone), ui.Key.Render(id))
			return nil
		},
	}
	return cmd
}

func newKitExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the selected kit as a kit file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := a.svc.ExportKit()
			if err != nil {
				return err
			}
			return writeOutput(cmd, outPath, data)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newKitRenameCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the selected custom kit",
		Args:  exactArgs(1, "name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("description") {
				description = a.svc.CurrentKit().Meta.Description
			}
			if err := a.svc.RenameKit(ctx, args[0], description); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Renamed to %s\n", ui.Good.Render(ui.IconDone), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Kit description")
	return cmd
}

func newKitAddItemCmd() *cobra.Command {
	var (
		name, nameFi, key  string
		category, unit     string
		base, expiryMonths float64
		people, days, pets bool
		freezer, replace   bool
	)

	cmd := &cobra.Command{
		Use:   "add-item <item-id>",
		Short: "Add or replace an item in the selected custom kit",
		Args:  exactArgs(1, "item id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := kit.ParseUnit(unit)
			if !ok {
				return fmt.Errorf("unknown unit %q", unit)
			}
			it := kit.Item{
				ID:              args[0],
				Category:        kit.CategoryID(category),
				Unit:            u,
				BaseQuantity:    base,
				ScaleWithPeople: people,
				ScaleWithDays:   days,
				ScaleWithPets:   pets,
				RequiresFreezer: freezer,
			}
			switch {
			case key != "" && name != "":
				return errors.New("use either --name or --key")
			case key != "":
				it.Name = kit.LocalizedRef{Key: key}
			case name != "":
				names := map[kit.Language]string{kit.LanguageEnglish: name}
				if nameFi != "" {
					names[kit.LanguageFinnish] = nameFi
				}
				it.Name = kit.InlineName{Names: names}
			default:
				return errors.New("--name or --key is required")
			}
			if cmd.Flags().Changed("expiry-months") {
				m := expiryMonths
				it.DefaultExpirationMonths = &m
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if replace {
				err = a.svc.UpdateKitItem(ctx, it)
			} else {
				err = a.svc.AddKitItem(ctx, it)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s saved in %s\n", ui.Good.Render(ui.IconPlus), it.ID, a.svc.CurrentKit().Meta.Name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "English name")
	f.StringVar(&nameFi, "name-fi", "", "Finnish name")
	f.StringVar(&key, "key", "", "Product translation key instead of a name")
	f.StringVarP(&category, "category", "c", string(kit.CategoryFood), "Category id")
	f.StringVarP(&unit, "unit", "u", string(kit.UnitPieces), "Unit")
	f.Float64Var(&base, "base", 1, "Base quantity per person and day")
	f.BoolVar(&people, "people", false, "Scale with household size")
	f.BoolVar(&days, "days", false, "Scale with supply duration")
	f.BoolVar(&pets, "pets", false, "Scale with pets")
	f.BoolVar(&freezer, "freezer", false, "Only counts when a freezer is used")
	f.Float64Var(&expiryMonths, "expiry-months", 0, "Default shelf life in months")
	f.BoolVar(&replace, "replace", false, "Replace an existing item with the same id")
	return cmd
}

func newKitRemoveItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm-item <item-id>",
		Short: "Remove an item from the selected custom kit",
		Args:  exactArgs(1, "item id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.RemoveKitItem(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", ui.Muted.Render(ui.IconTrash), args[0])
			return nil
		},
	}
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Wrote %s\n", ui.Good.Render(ui.IconSave), path)
	return nil
}

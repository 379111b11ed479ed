package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage inventory items",
	}

	cmd.AddCommand(
		newItemListCmd(),
		newItemAddCmd(),
		newItemAddKitCmd(),
		newItemSetCmd(),
		newItemEnoughCmd(),
		newItemRemoveCmd(),
	)
	return cmd
}

func (a *app) itemLine(it storage.InventoryItem) string {
	qty := formatQty(it.Quantity) + " " + a.unitText(it.Unit)
	if it.RecommendedQuantity > 0 {
		qty += ui.Muted.Render(fmt.Sprintf(" / %d", it.RecommendedQuantity))
	}
	line := fmt.Sprintf("%s %s  %s  %s", ui.Muted.Render(it.ID), it.Name, qty, expiryText(it))
	if it.MarkedAsEnough {
		line += " " + ui.Good.Render(ui.IconDone+" enough")
	}
	return line
}

func newItemListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			byCat := map[string][]storage.InventoryItem{}
			for _, it := range a.svc.Items() {
				byCat[it.CategoryID] = append(byCat[it.CategoryID], it)
			}

			shown := 0
			for _, c := range a.svc.Categories() {
				items := byCat[string(c.ID)]
				if len(items) == 0 || (category != "" && string(c.ID) != category) {
					continue
				}
				fmt.Fprintln(out, ui.H2.Render(a.categoryText(c.ID)))
				for _, it := range items {
					fmt.Fprintln(out, "- "+a.itemLine(it))
				}
				shown += len(items)
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no items)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show one category")
	return cmd
}

func newItemAddCmd() *cobra.Command {
	var in engine.NewItem
	var expires string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item by hand",
		Args:  exactArgs(1, "name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := parseExpiry(expires)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in.Name = args[0]
			in.ExpirationDate = exp
			in.NeverExpires = exp == nil
			it, err := a.svc.AddItem(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", ui.Good.Render(ui.IconPlus), a.itemLine(it))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.CategoryID, "category", "c", string(kit.CategoryFood), "Category id")
	cmd.Flags().Float64VarP(&in.Quantity, "qty", "q", 1, "Quantity on hand")
	cmd.Flags().StringVarP(&in.Unit, "unit", "u", string(kit.UnitPieces), "Unit")
	cmd.Flags().IntVar(&in.RecommendedQuantity, "recommended", 0, "Quantity you aim to keep")
	cmd.Flags().StringVarP(&expires, "expires", "e", "", "Expiration date ("+dateLayout+"), empty for never")
	return cmd
}

func newItemAddKitCmd() *cobra.Command {
	var qty float64

	cmd := &cobra.Command{
		Use:   "add-kit <kit-item-id>",
		Short: "Add an item recommended by the selected kit",
		Args:  exactArgs(1, "kit item id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("qty") {
				rec, err := a.svc.PreviewKitItem(args[0])
				if err != nil {
					return err
				}
				qty = float64(rec.Quantity)
			}
			it, err := a.svc.AddFromKit(ctx, args[0], qty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", ui.Good.Render(ui.IconPlus), a.itemLine(it))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&qty, "qty", "q", 0, "Quantity on hand (default: the recommended amount)")
	return cmd
}

func newItemSetCmd() *cobra.Command {
	var qty float64
	var expires string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Change quantity or expiration",
		Args:  exactArgs(1, "item id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("qty") && !f.Changed("expires") {
				return fmt.Errorf("nothing to change: pass --qty or --expires")
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id := args[0]
			if f.Changed("qty") {
				if err := a.svc.SetQuantity(ctx, id, qty); err != nil {
					return err
				}
			}
			if f.Changed("expires") {
				exp, err := parseExpiry(expires)
				if err != nil {
					return err
				}
				if err := a.svc.SetExpiration(ctx, id, exp); err != nil {
					return err
				}
			}
			it, _ := a.svc.Item(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone), a.itemLine(it))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&qty, "qty", "q", 0, "Quantity on hand")
	cmd.Flags().StringVarP(&expires, "expires", "e", "", "Expiration date ("+dateLayout+") or never")
	return cmd
}

func newItemEnoughCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "enough <id>",
		Short: "Mark an item as sufficient regardless of quantity",
		Args:  exactArgs(1, "item id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.MarkAsEnough(ctx, args[0], !undo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s marked as enough: %s\n", ui.Good.Render(ui.IconDone), args[0], strconv.FormatBool(!undo))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Clear the mark")
	return cmd
}

func newItemRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item",
		Args:  exactArgs(1, "item id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.RemoveItem(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", ui.Muted.Render(ui.IconTrash), args[0])
			return nil
		},
	}
	return cmd
}

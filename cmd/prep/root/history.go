package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and restore saved snapshots (sqlite store)",
	}

	cmd.AddCommand(newHistoryListCmd(), newHistoryRestoreCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if a.history == nil {
				return errNoHistory
			}

			snaps, err := a.history.History(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSave, "History"))
			if len(snaps) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no snapshots)"))
			}
			for _, s := range snaps {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(strconv.FormatInt(s.ID, 10)),
					s.SavedAt.Local().Format("2006-01-02 15:04:05"), ui.Muted.Render(fmt.Sprintf("%d items", s.Items)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "How many snapshots to show")
	return cmd
}

func newHistoryRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <snapshot-id>",
		Short: "Roll the document back to a snapshot",
		Args:  exactArgs(1, "snapshot id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid snapshot id %q", args[0])
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if a.history == nil {
				return errNoHistory
			}

			doc, err := a.history.Snapshot(ctx, id)
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("no snapshot %d", id)
			}
			if err := a.svc.Restore(ctx, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Restored snapshot %d\n", ui.Good.Render(ui.IconUndo), id)
			return nil
		},
	}
	return cmd
}

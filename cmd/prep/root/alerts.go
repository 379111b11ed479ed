package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newAlertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List, dismiss and restore alerts",
	}

	cmd.AddCommand(
		newAlertsListCmd(),
		newAlertsDismissCmd(),
		newAlertsReactivateCmd(),
		newAlertsReactivateAllCmd(),
	)
	return cmd
}

func newAlertsListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			now := time.Now()
			visible := a.svc.VisibleAlerts(now)
			if len(visible) == 0 {
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Nothing needs attention"))
			}
			for _, al := range visible {
				fmt.Fprintln(out, "- "+a.alertLine(al))
			}

			hidden := a.svc.HiddenAlerts(now)
			if len(hidden) == 0 {
				return nil
			}
			if !all {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconMute+" "+a.bundle.T(a.lang(), "dashboard.hidden", "count", len(hidden))))
				return nil
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconMute+" Dismissed"))
			for _, al := range hidden {
				fmt.Fprintln(out, ui.Muted.Render("- "+a.bundle.AlertText(a.lang(), al, a.svc.CustomCategories()...)+" ("+al.ID+")"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also list dismissed alerts")
	return cmd
}

func newAlertsDismissCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dismiss <alert-id>",
		Short: "Hide an alert until it is reactivated",
		Args:  exactArgs(1, "alert id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.DismissAlert(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Dismissed %s\n", ui.Muted.Render(ui.IconMute), args[0])
			return nil
		},
	}
	return cmd
}

func newAlertsReactivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reactivate <alert-id>",
		Short: "Show a dismissed alert again",
		Args:  exactArgs(1, "alert id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.ReactivateAlert(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Reactivated %s\n", ui.Good.Render(ui.IconBell), args[0])
			return nil
		},
	}
	return cmd
}

func newAlertsReactivateAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reactivate-all",
		Short: "Show every dismissed alert again",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.ReactivateAllAlerts(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBell+" All alerts reactivated"))
			return nil
		},
	}
	return cmd
}

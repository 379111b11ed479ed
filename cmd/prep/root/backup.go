package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all data",
	}

	cmd.AddCommand(newBackupExportCmd(), newBackupImportCmd())
	return cmd
}

func newBackupExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup document",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := a.svc.ExportBackup(ctx)
			if err != nil {
				return err
			}
			return writeOutput(cmd, outPath, data)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newBackupImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup document",
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

			if err := a.svc.ImportBackup(ctx, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d items from %s\n", ui.Good.Render(ui.IconUndo), len(a.svc.Items()), args[0])
			return nil
		},
	}
	return cmd
}

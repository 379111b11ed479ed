package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/ui"
)

const Version = "0.1.0"

var (
	flagConfig string
	flagDB     string
	flagStore  string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prep",
		Short:         "Household emergency supply tracker",
		Long:          "prep tracks a household's emergency supplies against a recommendation kit, scores preparedness and raises expiry and stock alerts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $PREP_CONFIG or ~/.config/prep/config.yaml)")
	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "Document path (overrides config and $PREP_DB)")
	cmd.PersistentFlags().StringVar(&flagStore, "store", "", "Store backend: sqlite or file")

	cmd.AddCommand(
		newSetupCmd(),
		newStatusCmd(),
		newBoardCmd(),
		newHouseholdCmd(),
		newItemCmd(),
		newKitCmd(),
		newRecommendCmd(),
		newCategoryCmd(),
		newAlertsCmd(),
		newBackupCmd(),
		newHistoryCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/rig"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every damped track constraint from the selected bones",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	return runOperation(cmd, rig.OpClear, settings().Defaults)
}

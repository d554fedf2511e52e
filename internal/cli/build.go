package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/rig"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Link selected bones into a damped track chain",
	Long: `Sorts the selected bones of the active armature by head height and gives
every bone except the lowest a damped track to the bone just below it
(influence 0.5, axis +Y). Location and rotation locks are cleared on every
selected bone. Existing constraints are kept; run clear first to rebuild.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	return runOperation(cmd, rig.OpBuild, settings().Defaults)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/config"
	"github.com/ppiankov/chainrig/internal/model"
	"github.com/ppiankov/chainrig/internal/rig"
)

var (
	setInfluence float64
	setAxis      string
)

func init() {
	setCmd.Flags().Float64Var(&setInfluence, "influence", 0, "Influence in [0,1] (default from config)")
	setCmd.Flags().StringVar(&setAxis, "axis", "", "Track axis: X, Y, Z, -X, -Y, -Z or TRACK_* (default from config)")
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one influence and track axis on every damped track of the selection",
	Args:  cobra.NoArgs,
	RunE:  runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	params := settings().Defaults
	if cmd.Flags().Changed("influence") {
		params.Influence = setInfluence
	}
	axis, err := config.Axis(setAxis, params.TrackAxis)
	if err != nil {
		// Reported by the operator as an invalid axis.
		axis = model.TrackAxis(setAxis)
	}
	params.TrackAxis = axis
	return runOperation(cmd, rig.OpUniform, params)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/rig"
)

var (
	gradientStart float64
	gradientEnd   float64
)

func init() {
	gradientCmd.Flags().Float64Var(&gradientStart, "start", 0, "Influence at the highest constrained bone (default from config)")
	gradientCmd.Flags().Float64Var(&gradientEnd, "end", 0, "Influence at the lowest bone (default from config)")
	rootCmd.AddCommand(gradientCmd)
}

var gradientCmd = &cobra.Command{
	Use:   "gradient",
	Short: "Interpolate damped track influence from the top of the chain to the bottom",
	Long: `Orders the selected bones from highest to lowest head, skips the highest one
and assigns linearly interpolated influences from --start to --end (rounded to
two decimals) to every damped track the remaining bones own.`,
	Args: cobra.NoArgs,
	RunE: runGradient,
}

func runGradient(cmd *cobra.Command, args []string) error {
	params := settings().Defaults
	if cmd.Flags().Changed("start") {
		params.StartInfluence = gradientStart
	}
	if cmd.Flags().Changed("end") {
		params.EndInfluence = gradientEnd
	}
	return runOperation(cmd, rig.OpGradient, params)
}

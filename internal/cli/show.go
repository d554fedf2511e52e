package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List the selected bones in chain order with their damped tracks",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	if flagScene == "" {
		return fmt.Errorf("--scene is required")
	}

	eng, err := newEngine(false)
	if err != nil {
		return err
	}
	defer eng.Close()

	res, err := eng.Show(commandContext(cmd), flagScene, flagSelect)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagFormat == "json" {
		return writeJSON(out, res)
	}

	fmt.Fprintf(out, "Armature: %s\n", res.Armature)
	for _, bc := range res.Chain {
		lock := ""
		if bc.Locked {
			lock = " [locked]"
		}
		fmt.Fprintf(out, "%-24s z=%.3f%s\n", bc.Bone, bc.HeadZ, lock)
		for _, tr := range bc.Tracks {
			fmt.Fprintf(out, "  %-22s -> %s influence=%.2f axis=%s\n", tr.Name, tr.Subtarget, tr.Influence, tr.TrackAxis.Short())
		}
	}
	return nil
}

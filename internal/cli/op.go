package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/config"
	"github.com/ppiankov/chainrig/internal/engine"
	"github.com/ppiankov/chainrig/internal/rig"
)

// settings returns the effective config, falling back to defaults when the
// pre-run hook did not run.
func settings() *config.Config {
	if appCfg == nil {
		return config.DefaultConfig()
	}
	return appCfg
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newEngine builds an engine from the effective settings. Read-only
// commands pass journaled=false so no journal file is opened.
func newEngine(journaled bool) (*engine.Engine, error) {
	cfg := settings()
	ecfg := engine.Config{Locale: cfg.Locale, DryRun: flagDryRun}
	if journaled {
		ecfg.JournalPath = cfg.Journal
	}
	return engine.New(ecfg, log.Logger)
}

// runOperation runs op on --scene, prints the report and maps a cancelled
// report to errCancelled.
func runOperation(cmd *cobra.Command, op rig.Op, params rig.Params) error {
	if flagScene == "" {
		return fmt.Errorf("--scene is required")
	}

	eng, err := newEngine(true)
	if err != nil {
		return err
	}
	defer eng.Close()

	res, err := eng.Run(commandContext(cmd), engine.Request{
		ScenePath: flagScene,
		Op:        op,
		Params:    params,
		Select:    flagSelect,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagFormat == "json" {
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		printReport(out, res, eng.Operator())
	}

	if !res.Report.OK() {
		return errCancelled
	}
	return nil
}

// printReport writes "LEVEL: message" followed by per-operation detail.
func printReport(w io.Writer, res *engine.Result, op *rig.Operator) {
	rep := res.Report
	fmt.Fprintf(w, "%s: %s\n", rep.Level, rep.Message)

	if rep.Gradient != nil {
		for _, bi := range rep.Gradient.Influences {
			fmt.Fprintf(w, "  %-24s %.2f\n", bi.Bone, bi.Influence)
		}
	}
	if rep.Build != nil {
		for _, l := range rep.Build.Links {
			fmt.Fprintf(w, "  %-24s -> %s\n", l.Bone, l.Subtarget)
		}
		fmt.Fprintf(w, "NOTE: %s\n", op.Sprintf(rig.MsgPoseHint))
	}
	if res.DryRun && rep.Mutated {
		fmt.Fprintln(w, "dry run: scene not saved")
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/config"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default chainrig configuration",
	Long: `Creates ~/.chainrig/config.yaml with the default influence, track axis,
gradient range, report locale and journal path. An existing file is kept
unless --force is given. --config writes to a different path.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}

	wrote, err := writeIfMissing(path, config.DefaultConfigYAML())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "chainrig init complete.")
	fmt.Fprintln(out)
	if wrote {
		fmt.Fprintln(out, "Created:")
		fmt.Fprintf(out, "  %s\n", path)
	} else {
		fmt.Fprintln(out, "Config already exists (use --force to overwrite).")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Build a chain:")
	fmt.Fprintln(out, "  chainrig build --scene scene.yaml")
	return nil
}

// writeIfMissing writes content to path if it doesn't exist or --force is set.
// Returns true if the file was written.
func writeIfMissing(path, content string) (bool, error) {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

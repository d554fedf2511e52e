package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/config"
	rigmcp "github.com/ppiankov/chainrig/internal/mcp"
)

var mcpWatch bool

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVar(&mcpWatch, "watch", true, "Reload the config file when it changes")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs chainrig as an MCP (Model Context Protocol) server over stdio.\nExposes chain tools: rig_build_chain, rig_set_influence, rig_clear_chain,\nrig_gradient_influence, rig_show_chain. --scene sets the default scene.",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := settings()
	configPath := flagConfig
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	srvCfg := rigmcp.Config{
		ScenePath:   flagScene,
		ConfigPath:  configPath,
		JournalPath: cfg.Journal,
		DryRun:      flagDryRun,
	}
	// A --locale flag pins the language across config reloads.
	if cmd.Flags().Changed("locale") {
		srvCfg.Locale = cfg.Locale
	}

	srv, err := rigmcp.New(srvCfg, log.Logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx := commandContext(cmd)

	if mcpWatch {
		reloader, err := rigmcp.NewReloader(srv, []string{configPath}, log.Logger)
		if err != nil {
			return err
		}
		go func() {
			if err := reloader.Run(ctx); err != nil {
				log.Warn().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	fmt.Fprintln(os.Stderr, "chainrig MCP server running on stdio")
	if flagScene != "" {
		fmt.Fprintf(os.Stderr, "Scene: %s\n", flagScene)
	}
	fmt.Fprintln(os.Stderr)

	return srv.Run(ctx)
}

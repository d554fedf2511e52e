package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/ppiankov/chainrig/internal/config"
	"github.com/ppiankov/chainrig/internal/engine"
	"github.com/ppiankov/chainrig/internal/rig"
)

// Config holds MCP server configuration.
type Config struct {
	// ScenePath is used by tool calls that do not name a scene.
	ScenePath   string
	ConfigPath  string
	JournalPath string
	Locale      string
	DryRun      bool
}

// Server wraps the MCP SDK server around a chain engine.
type Server struct {
	mcpServer *mcpsdk.Server
	engine    *engine.Engine
	cfg       Config
	defaults  rig.Params
	logger    zerolog.Logger
	mu        sync.Mutex
}

// New creates an MCP server with loaded config and registered tools.
func New(cfg Config, logger zerolog.Logger) (*Server, error) {
	appCfg, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	locale := cfg.Locale
	if locale == "" {
		locale = appCfg.Locale
	}

	eng, err := engine.New(engine.Config{
		Locale:      locale,
		JournalPath: cfg.JournalPath,
		DryRun:      cfg.DryRun,
	}, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:   eng,
		cfg:      cfg,
		defaults: appCfg.Defaults,
		logger:   logger.With().Str("component", "mcp").Logger(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "chainrig",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the journal if configured.
func (s *Server) Close() error {
	return s.engine.Close()
}

// ReloadConfig re-reads the config file and swaps the operator defaults and
// report locale. An explicit Locale in Config keeps precedence.
// Called by the hot-reloader on file change.
func (s *Server) ReloadConfig() error {
	appCfg, err := config.LoadConfig(s.cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	s.mu.Lock()
	locale := s.cfg.Locale
	s.defaults = appCfg.Defaults
	s.mu.Unlock()

	if locale == "" {
		locale = appCfg.Locale
	}
	return s.engine.SetLocale(locale)
}

// Defaults returns the operator defaults currently in effect.
func (s *Server) Defaults() rig.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaults
}

// registerTools adds all chainrig tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rig_build_chain",
		Description: "Link the selected bones of the active armature into a damped track chain ordered by head height. The lowest bone is the root.",
	}, s.handleBuild)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rig_set_influence",
		Description: "Set one influence and track axis on every damped track constraint of the selected bones.",
	}, s.handleSetInfluence)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rig_clear_chain",
		Description: "Remove all damped track constraints from the selected bones. Other constraints are kept.",
	}, s.handleClear)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rig_gradient_influence",
		Description: "Interpolate damped track influence from start (high bones) to end (low bones) across the selection, skipping the topmost bone.",
	}, s.handleGradient)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rig_show_chain",
		Description: "List the selected bones in chain order with the damped track constraints they own. Read-only.",
	}, s.handleShow)
}

func (s *Server) scenePath(input string) (string, error) {
	if input != "" {
		return input, nil
	}
	if s.cfg.ScenePath == "" {
		return "", fmt.Errorf("no scene given and no default scene configured")
	}
	return s.cfg.ScenePath, nil
}

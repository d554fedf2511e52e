// Package engine runs chain operations against scene files. It is shared by
// the command line and the MCP server: load the scene, apply the selection
// override, run the operator, save and journal the outcome.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ppiankov/chainrig/internal/i18n"
	"github.com/ppiankov/chainrig/internal/journal"
	"github.com/ppiankov/chainrig/internal/rig"
	"github.com/ppiankov/chainrig/internal/scene"
)

// Config holds engine configuration.
type Config struct {
	Locale      string
	JournalPath string
	DryRun      bool
}

// Request names one operation against one scene file.
type Request struct {
	ScenePath string
	Op        rig.Op
	Params    rig.Params
	// Select replaces the stored bone selection when non-empty.
	Select []string
}

// Result is the outcome of Run.
type Result struct {
	Report     rig.Report `json:"report"`
	Scene      string     `json:"scene"`
	HashBefore string     `json:"scene_hash_before"`
	HashAfter  string     `json:"scene_hash_after,omitempty"`
	Saved      bool       `json:"saved"`
	DryRun     bool       `json:"dry_run,omitempty"`
}

// ShowResult is the read-only chain listing for the active armature.
type ShowResult struct {
	Scene    string          `json:"scene"`
	Armature string          `json:"armature"`
	Chain    []rig.BoneChain `json:"chain"`
}

// Engine serializes operations: one Run or Show at a time.
type Engine struct {
	cfg     Config
	op      *rig.Operator
	journal *journal.Log
	logger  zerolog.Logger
	mu      sync.Mutex
}

// New creates an engine with a localized operator and, when a journal path
// is configured, an open journal.
func New(cfg Config, logger zerolog.Logger) (*Engine, error) {
	p, err := i18n.Printer(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	var jl *journal.Log
	if cfg.JournalPath != "" {
		jl, err = journal.Open(cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
	}

	return &Engine{
		cfg:     cfg,
		op:      rig.NewOperator(p),
		journal: jl,
		logger:  logger.With().Str("component", "engine").Logger(),
	}, nil
}

// SetLocale switches the report language for subsequent operations.
func (e *Engine) SetLocale(locale string) error {
	p, err := i18n.Printer(locale)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.Locale = locale
	e.op = rig.NewOperator(p)
	return nil
}

// Operator returns the operator currently used for reports.
func (e *Engine) Operator() *rig.Operator {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.op
}

// Run executes req. Infrastructure failures (unreadable scene, unknown bone
// names, write errors) are returned as errors; operation outcomes, including
// cancellations, are in Result.Report.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	path := absPath(req.ScenePath)
	sc, hashBefore, err := e.loadScene(path, req.Select)
	if err != nil {
		return nil, err
	}

	rep, err := e.op.Execute(sc, req.Op, req.Params)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().
		Str("op", string(rep.Op)).
		Str("armature", rep.Armature).
		Int("bones", len(rep.Selected)).
		Str("status", string(rep.Status)).
		Int("count", rep.Count).
		Msg("operation executed")

	res := &Result{
		Report:     rep,
		Scene:      path,
		HashBefore: hashBefore,
		DryRun:     e.cfg.DryRun,
	}

	if rep.Mutated && !e.cfg.DryRun {
		hashAfter, err := scene.Save(path, sc)
		if err != nil {
			return nil, err
		}
		res.HashAfter = hashAfter
		res.Saved = true
		e.logger.Debug().Str("scene", path).Str("hash", hashAfter).Msg("scene saved")
	}

	if e.journal != nil {
		entry := journal.FromReport(rep, path, hashBefore, res.HashAfter, e.cfg.DryRun)
		if err := e.journal.Record(entry); err != nil {
			return res, err
		}
		e.logger.Debug().Str("journal", e.journal.Path()).Str("op", entry.Op).Msg("journal entry recorded")
	}

	return res, nil
}

// Show lists the selected bones of the active armature with their damped
// tracks. Nothing is written.
func (e *Engine) Show(ctx context.Context, scenePath string, selectNames []string) (*ShowResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	path := absPath(scenePath)
	sc, _, err := e.loadScene(path, selectNames)
	if err != nil {
		return nil, err
	}
	obj, _ := sc.ActiveObject()
	if !obj.IsArmature() {
		return nil, fmt.Errorf("show %s: %w", path, rig.ErrNotAnArmature)
	}
	return &ShowResult{
		Scene:    path,
		Armature: obj.Name,
		Chain:    rig.Inspect(obj.SelectedBones()),
	}, nil
}

// Close closes the journal if one is open.
func (e *Engine) Close() error {
	if e.journal != nil {
		return e.journal.Close()
	}
	return nil
}

// loadScene reads the scene and applies the selection override. The
// override is skipped when the active object is not an armature so the
// operator can report that case itself.
func (e *Engine) loadScene(path string, selectNames []string) (*scene.Scene, string, error) {
	sc, hash, err := scene.Load(path)
	if err != nil {
		return nil, "", err
	}
	e.logger.Debug().Str("scene", path).Str("hash", hash).Int("objects", len(sc.Objects)).Msg("scene loaded")

	if obj, _ := sc.ActiveObject(); obj.IsArmature() {
		if err := sc.SelectBones(selectNames); err != nil {
			return nil, "", err
		}
	}
	return sc, hash, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/chainrig/internal/config"
	"github.com/ppiankov/chainrig/internal/engine"
	"github.com/ppiankov/chainrig/internal/model"
	"github.com/ppiankov/chainrig/internal/rig"
)

// --- Input/Output types ---

// SceneInput selects the scene and bones a tool works on.
type SceneInput struct {
	Scene  string   `json:"scene,omitempty" jsonschema:"path to the scene YAML, defaults to the server scene"`
	Select []string `json:"select,omitempty" jsonschema:"bone names replacing the stored selection"`
}

// SetInfluenceInput defines parameters for the rig_set_influence tool.
type SetInfluenceInput struct {
	Scene     string   `json:"scene,omitempty" jsonschema:"path to the scene YAML, defaults to the server scene"`
	Select    []string `json:"select,omitempty" jsonschema:"bone names replacing the stored selection"`
	Influence *float64 `json:"influence,omitempty" jsonschema:"influence in [0,1], defaults to the configured value"`
	TrackAxis string   `json:"track_axis,omitempty" jsonschema:"TRACK_X, TRACK_Y, TRACK_Z, TRACK_NEGATIVE_X, TRACK_NEGATIVE_Y or TRACK_NEGATIVE_Z"`
}

// GradientInput defines parameters for the rig_gradient_influence tool.
type GradientInput struct {
	Scene  string   `json:"scene,omitempty" jsonschema:"path to the scene YAML, defaults to the server scene"`
	Select []string `json:"select,omitempty" jsonschema:"bone names replacing the stored selection"`
	Start  *float64 `json:"start,omitempty" jsonschema:"influence at the highest constrained bone"`
	End    *float64 `json:"end,omitempty" jsonschema:"influence at the lowest constrained bone"`
}

// OpOutput reports the outcome of a mutating tool.
type OpOutput struct {
	Status     string              `json:"status"`
	Level      string              `json:"level"`
	Message    string              `json:"message"`
	Armature   string              `json:"armature,omitempty"`
	Bones      []string            `json:"bones,omitempty"`
	Count      int                 `json:"count"`
	Influences []rig.BoneInfluence `json:"influences,omitempty"`
	Saved      bool                `json:"saved"`
	DryRun     bool                `json:"dry_run,omitempty"`
	HashBefore string              `json:"scene_hash_before,omitempty"`
	HashAfter  string              `json:"scene_hash_after,omitempty"`
}

// ShowOutput lists the chain of the active armature.
type ShowOutput struct {
	Scene    string          `json:"scene"`
	Armature string          `json:"armature"`
	Chain    []rig.BoneChain `json:"chain"`
}

// --- Handlers ---

func (s *Server) handleBuild(ctx context.Context, req *mcpsdk.CallToolRequest, input SceneInput) (*mcpsdk.CallToolResult, OpOutput, error) {
	return s.runOp(ctx, input, rig.OpBuild, s.Defaults())
}

func (s *Server) handleSetInfluence(ctx context.Context, req *mcpsdk.CallToolRequest, input SetInfluenceInput) (*mcpsdk.CallToolResult, OpOutput, error) {
	params := s.Defaults()
	if input.Influence != nil {
		params.Influence = *input.Influence
	}
	axis, err := config.Axis(input.TrackAxis, params.TrackAxis)
	if err != nil {
		// Let the operator report the invalid axis.
		axis = model.TrackAxis(input.TrackAxis)
	}
	params.TrackAxis = axis
	return s.runOp(ctx, SceneInput{Scene: input.Scene, Select: input.Select}, rig.OpUniform, params)
}

func (s *Server) handleClear(ctx context.Context, req *mcpsdk.CallToolRequest, input SceneInput) (*mcpsdk.CallToolResult, OpOutput, error) {
	return s.runOp(ctx, input, rig.OpClear, s.Defaults())
}

func (s *Server) handleGradient(ctx context.Context, req *mcpsdk.CallToolRequest, input GradientInput) (*mcpsdk.CallToolResult, OpOutput, error) {
	params := s.Defaults()
	if input.Start != nil {
		params.StartInfluence = *input.Start
	}
	if input.End != nil {
		params.EndInfluence = *input.End
	}
	return s.runOp(ctx, SceneInput{Scene: input.Scene, Select: input.Select}, rig.OpGradient, params)
}

func (s *Server) handleShow(ctx context.Context, req *mcpsdk.CallToolRequest, input SceneInput) (*mcpsdk.CallToolResult, ShowOutput, error) {
	path, err := s.scenePath(input.Scene)
	if err != nil {
		return nil, ShowOutput{}, err
	}
	res, err := s.engine.Show(ctx, path, input.Select)
	if err != nil {
		return nil, ShowOutput{}, err
	}
	return nil, ShowOutput{Scene: res.Scene, Armature: res.Armature, Chain: res.Chain}, nil
}

func (s *Server) runOp(ctx context.Context, input SceneInput, op rig.Op, params rig.Params) (*mcpsdk.CallToolResult, OpOutput, error) {
	path, err := s.scenePath(input.Scene)
	if err != nil {
		return nil, OpOutput{}, err
	}

	res, err := s.engine.Run(ctx, engine.Request{
		ScenePath: path,
		Op:        op,
		Params:    params,
		Select:    input.Select,
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("op", string(op)).Msg("tool call failed")
		return nil, OpOutput{}, err
	}

	out := toOutput(res)
	if !res.Report.OK() {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func toOutput(res *engine.Result) OpOutput {
	rep := res.Report
	out := OpOutput{
		Status:     string(rep.Status),
		Level:      string(rep.Level),
		Message:    rep.Message,
		Armature:   rep.Armature,
		Bones:      rep.Selected,
		Count:      rep.Count,
		Saved:      res.Saved,
		DryRun:     res.DryRun,
		HashBefore: res.HashBefore,
		HashAfter:  res.HashAfter,
	}
	if rep.Gradient != nil {
		out.Influences = rep.Gradient.Influences
	}
	return out
}

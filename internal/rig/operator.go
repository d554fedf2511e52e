package rig

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ppiankov/chainrig/internal/model"
)

// Host is the scene-graph collaborator the operator reads from.
// Implementations return a nil object when nothing is active.
type Host interface {
	ActiveObject() (*model.Object, error)
}

// Params are the knobs collected by the caller before running an operation.
// BuildChain and ClearChain ignore them.
type Params struct {
	Influence      float64         `yaml:"influence" json:"influence"`
	TrackAxis      model.TrackAxis `yaml:"track_axis" json:"track_axis"`
	StartInfluence float64         `yaml:"start_influence" json:"start_influence"`
	EndInfluence   float64         `yaml:"end_influence" json:"end_influence"`
}

// DefaultParams returns the dialog defaults.
func DefaultParams() Params {
	return Params{
		Influence:      DefaultInfluence,
		TrackAxis:      DefaultTrackAxis,
		StartInfluence: 0.8,
		EndInfluence:   0.4,
	}
}

// Message keys. The English text doubles as the catalog key.
const (
	MsgNotAnArmature  = "Active object is not an armature."
	MsgBuilt          = "Created %d damped track constraints"
	MsgTooFewToBuild  = "Fewer than two bones selected, no constraints created"
	MsgUniformSet     = "Set influence %.2f and axis %s on %d damped track constraints"
	MsgNoDampedTracks = "No damped track constraints on selected bones"
	MsgCleared        = "Cleared %d damped track constraints"
	MsgEmptySelection = "No bones selected"
	MsgNoConstrained  = "No constrained bones in selection"
	MsgGradientSet    = "Set influence on %d bones from %.2f to %.2f"
	MsgInvalidAxis    = "Invalid track axis %q"
	MsgPoseHint       = "Keep the armature in its A-pose while generating tracks, otherwise bones may misalign"
)

// Operator runs the chain operations against a Host and turns each outcome
// into a localized Report.
type Operator struct {
	p *message.Printer
}

// NewOperator creates an operator that formats messages with p.
// A nil printer formats in American English.
func NewOperator(p *message.Printer) *Operator {
	if p == nil {
		p = message.NewPrinter(language.AmericanEnglish)
	}
	return &Operator{p: p}
}

// Execute resolves the active armature and its selection, then runs op.
// Failures are returned inside the Report; the error return is reserved for
// host failures.
func (o *Operator) Execute(host Host, op Op, params Params) (Report, error) {
	obj, err := host.ActiveObject()
	if err != nil {
		return Report{}, fmt.Errorf("resolve active object: %w", err)
	}
	if !obj.IsArmature() {
		return o.cancel(Report{Op: op}, LevelError, ErrNotAnArmature, MsgNotAnArmature), nil
	}

	bones := obj.SelectedBones()
	rep := Report{Op: op, Armature: obj.Name, Selected: boneNames(bones)}

	switch op {
	case OpBuild:
		return o.build(rep, obj, bones), nil
	case OpUniform:
		return o.uniform(rep, bones, params), nil
	case OpClear:
		return o.clear(rep, bones), nil
	case OpGradient:
		return o.gradient(rep, bones, params), nil
	default:
		return Report{}, fmt.Errorf("unknown operation %q", op)
	}
}

// Sprintf formats a message key with the operator's locale.
func (o *Operator) Sprintf(key string, args ...any) string {
	return o.p.Sprintf(key, args...)
}

func (o *Operator) build(rep Report, obj *model.Object, bones []*model.Bone) Report {
	res := BuildChain(obj.Name, bones)
	rep.Build = &res
	rep.Count = res.Created
	rep.Mutated = len(bones) > 0
	if res.Created == 0 {
		return o.finish(rep, LevelInfo, MsgTooFewToBuild)
	}
	return o.finish(rep, LevelInfo, MsgBuilt, res.Created)
}

func (o *Operator) uniform(rep Report, bones []*model.Bone, params Params) Report {
	res, err := SetUniformInfluence(bones, params.Influence, params.TrackAxis)
	if err != nil {
		return o.cancel(rep, LevelError, err, MsgInvalidAxis, string(params.TrackAxis))
	}
	rep.Uniform = &res
	rep.Count = res.Updated
	rep.Mutated = res.Updated > 0
	if res.Updated == 0 {
		return o.finish(rep, LevelWarning, MsgNoDampedTracks)
	}
	return o.finish(rep, LevelInfo, MsgUniformSet, res.Influence, res.TrackAxis.Short(), res.Updated)
}

func (o *Operator) clear(rep Report, bones []*model.Bone) Report {
	rep.Count = ClearChain(bones)
	rep.Mutated = rep.Count > 0
	if rep.Count == 0 {
		return o.finish(rep, LevelWarning, MsgNoDampedTracks)
	}
	return o.finish(rep, LevelInfo, MsgCleared, rep.Count)
}

func (o *Operator) gradient(rep Report, bones []*model.Bone, params Params) Report {
	res, err := SetGradientInfluence(bones, params.StartInfluence, params.EndInfluence)
	switch {
	case errors.Is(err, ErrEmptySelection):
		return o.cancel(rep, LevelWarning, err, MsgEmptySelection)
	case errors.Is(err, ErrNoConstrainedBones):
		return o.cancel(rep, LevelWarning, err, MsgNoConstrained)
	}
	rep.Gradient = &res
	rep.Count = res.Bones
	rep.Mutated = true
	return o.finish(rep, LevelInfo, MsgGradientSet, res.Bones, res.Start, res.End)
}

func (o *Operator) finish(rep Report, level Level, key string, args ...any) Report {
	rep.Status = Finished
	rep.Level = level
	rep.Message = o.p.Sprintf(key, args...)
	return rep
}

func (o *Operator) cancel(rep Report, level Level, err error, key string, args ...any) Report {
	rep.Status = Cancelled
	rep.Level = level
	rep.Message = o.p.Sprintf(key, args...)
	rep.Err = err
	rep.Error = err.Error()
	return rep
}

func boneNames(bones []*model.Bone) []string {
	out := make([]string, len(bones))
	for i, b := range bones {
		out[i] = b.Name
	}
	return out
}

// Package rig builds and tunes damped track chains over a bone selection.
//
// The four operations take the selected bones explicitly and mutate them in
// place. They hold no state between calls and never touch constraints other
// than DAMPED_TRACK.
package rig

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/ppiankov/chainrig/internal/model"
)

const (
	// DefaultInfluence is the influence given to every constraint BuildChain creates.
	DefaultInfluence = 0.5
	// DefaultTrackAxis is the axis given to every constraint BuildChain creates.
	DefaultTrackAxis = model.TrackY
)

// Link is one created constraint: Bone tracks Subtarget.
type Link struct {
	Bone      string `json:"bone"`
	Subtarget string `json:"subtarget"`
}

// BuildResult describes the outcome of BuildChain.
type BuildResult struct {
	Created int    `json:"created"`
	Links   []Link `json:"links,omitempty"`
}

// BuildChain links the bones root-to-tip by ascending head Z. Every bone is
// unlocked, and each bone after the first receives a damped track aimed at
// its predecessor. Fewer than two bones is a no-op for constraints.
func BuildChain(target string, bones []*model.Bone) BuildResult {
	chain := sortedByHeight(bones, true)

	// Locked axes would keep the constraint from orienting the bone in pose mode.
	for _, b := range chain {
		b.SetLocationLock(false, false, false)
		b.SetRotationLock(false, false, false)
	}

	var res BuildResult
	for i := 0; i < len(chain)-1; i++ {
		owner := chain[i+1]
		owner.AppendConstraint(&model.Constraint{
			Name:      model.DampedTrackName,
			Type:      model.DampedTrack,
			Target:    target,
			Subtarget: chain[i].Name,
			Influence: DefaultInfluence,
			TrackAxis: DefaultTrackAxis,
		})
		res.Links = append(res.Links, Link{Bone: owner.Name, Subtarget: chain[i].Name})
		res.Created++
	}
	return res
}

// UniformResult describes the outcome of SetUniformInfluence.
type UniformResult struct {
	Updated   int             `json:"updated"`
	Influence float64         `json:"influence"`
	TrackAxis model.TrackAxis `json:"track_axis"`
}

// SetUniformInfluence overwrites influence and axis on every damped track of
// the given bones. Bones without one are skipped. Influence is clamped to [0,1].
func SetUniformInfluence(bones []*model.Bone, influence float64, axis model.TrackAxis) (UniformResult, error) {
	if !axis.Valid() {
		return UniformResult{}, fmt.Errorf("%w: %q", ErrInvalidAxis, axis)
	}
	res := UniformResult{Influence: Clamp(influence), TrackAxis: axis}
	for _, b := range bones {
		for _, c := range b.Constraints {
			if !c.IsDampedTrack() {
				continue
			}
			c.Influence = res.Influence
			c.TrackAxis = axis
			res.Updated++
		}
	}
	return res, nil
}

// ClearChain removes every damped track owned by the given bones and returns
// the number removed. Each stack is scanned back to front so removals never
// shift an index that is still to be visited.
func ClearChain(bones []*model.Bone) int {
	removed := 0
	for _, b := range bones {
		for i := len(b.Constraints) - 1; i >= 0; i-- {
			if b.Constraints[i].IsDampedTrack() {
				b.RemoveConstraintAt(i)
				removed++
			}
		}
	}
	return removed
}

// BoneInfluence is the influence assigned to one bone by the gradient.
type BoneInfluence struct {
	Bone      string  `json:"bone"`
	Influence float64 `json:"influence"`
}

// GradientResult describes the outcome of SetGradientInfluence.
type GradientResult struct {
	Bones      int             `json:"bones"`
	Start      float64         `json:"start"`
	End        float64         `json:"end"`
	Influences []BoneInfluence `json:"influences"`
}

// SetGradientInfluence ramps damped track influence linearly from start at the
// highest constrained bone down to end at the lowest. The topmost selected bone
// is the chain root and is skipped. With a single constrained bone only start
// is applied. Track axes are left unchanged.
func SetGradientInfluence(bones []*model.Bone, start, end float64) (GradientResult, error) {
	if len(bones) == 0 {
		return GradientResult{}, ErrEmptySelection
	}
	constrained := sortedByHeight(bones, false)[1:]
	if len(constrained) == 0 {
		return GradientResult{}, ErrNoConstrainedBones
	}

	start, end = Clamp(start), Clamp(end)
	k := len(constrained)
	step := (start - end) / float64(max(1, k-1))

	res := GradientResult{Bones: k, Start: start, End: end}
	for i, b := range constrained {
		influence := Clamp(Round2(start - float64(i)*step))
		for _, c := range b.Constraints {
			if c.IsDampedTrack() {
				c.Influence = influence
			}
		}
		res.Influences = append(res.Influences, BoneInfluence{Bone: b.Name, Influence: influence})
	}
	return res, nil
}

// Clamp limits v to [0,1]. NaN maps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(1, max(0, v))
}

// Round2 rounds the exact binary value of v to two decimal places, ties to
// even. 0.475 is stored just below the tie and rounds to 0.47.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// sortedByHeight returns a stably sorted copy ordered by head Z. Bones at equal
// height keep their selection order in both directions.
func sortedByHeight(bones []*model.Bone, ascending bool) []*model.Bone {
	out := slices.Clone(bones)
	slices.SortStableFunc(out, func(a, b *model.Bone) int {
		if ascending {
			return cmp.Compare(a.Head.Z(), b.Head.Z())
		}
		return cmp.Compare(b.Head.Z(), a.Head.Z())
	})
	return out
}

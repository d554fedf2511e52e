package model

import (
	"fmt"
	"strings"
)

// Vec3 is a world-space position.
type Vec3 [3]float64

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the height component used for chain ordering.
func (v Vec3) Z() float64 { return v[2] }

// ObjectType classifies scene objects. Only armatures carry bones.
type ObjectType string

const (
	ObjectArmature ObjectType = "ARMATURE"
	ObjectMesh     ObjectType = "MESH"
	ObjectEmpty    ObjectType = "EMPTY"
)

// ConstraintType is the kind tag of a bone constraint.
type ConstraintType string

const (
	DampedTrack   ConstraintType = "DAMPED_TRACK"
	CopyRotation  ConstraintType = "COPY_ROTATION"
	StretchTo     ConstraintType = "STRETCH_TO"
	LimitRotation ConstraintType = "LIMIT_ROTATION"
)

// DampedTrackName is the base name given to new damped track constraints.
const DampedTrackName = "Damped Track"

// Constraint is one entry of a bone's ordered constraint stack.
type Constraint struct {
	Name      string         `yaml:"name" json:"name"`
	Type      ConstraintType `yaml:"type" json:"type"`
	Target    string         `yaml:"target,omitempty" json:"target,omitempty"`
	Subtarget string         `yaml:"subtarget,omitempty" json:"subtarget,omitempty"`
	Influence float64        `yaml:"influence" json:"influence"`
	TrackAxis TrackAxis      `yaml:"track_axis,omitempty" json:"track_axis,omitempty"`
}

// IsDampedTrack reports whether the constraint is a damped track.
func (c *Constraint) IsDampedTrack() bool {
	return c.Type == DampedTrack
}

// Bone is a pose bone: position, axis locks and owned constraints.
type Bone struct {
	Name         string        `yaml:"name" json:"name"`
	Head         Vec3          `yaml:"head" json:"head"`
	Selected     bool          `yaml:"select,omitempty" json:"select,omitempty"`
	LockLocation [3]bool       `yaml:"lock_location" json:"lock_location"`
	LockRotation [3]bool       `yaml:"lock_rotation" json:"lock_rotation"`
	Constraints  []*Constraint `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// SetLocationLock sets the per-axis location locks.
func (b *Bone) SetLocationLock(x, y, z bool) {
	b.LockLocation = [3]bool{x, y, z}
}

// SetRotationLock sets the per-axis rotation locks.
func (b *Bone) SetRotationLock(x, y, z bool) {
	b.LockRotation = [3]bool{x, y, z}
}

// AppendConstraint adds c at the end of the stack, assigning a unique name
// when c.Name is empty or already taken on this bone.
func (b *Bone) AppendConstraint(c *Constraint) {
	base := c.Name
	if base == "" {
		base = DampedTrackName
	}
	c.Name = b.uniqueConstraintName(base)
	b.Constraints = append(b.Constraints, c)
}

// RemoveConstraintAt drops the constraint at index i, shifting later entries down.
func (b *Bone) RemoveConstraintAt(i int) {
	copy(b.Constraints[i:], b.Constraints[i+1:])
	b.Constraints[len(b.Constraints)-1] = nil
	b.Constraints = b.Constraints[:len(b.Constraints)-1]
}

// DampedTracks returns the damped track constraints owned by the bone, in stack order.
func (b *Bone) DampedTracks() []*Constraint {
	var out []*Constraint
	for _, c := range b.Constraints {
		if c.IsDampedTrack() {
			out = append(out, c)
		}
	}
	return out
}

// uniqueConstraintName follows the host convention: "Name", "Name.001", "Name.002", ...
func (b *Bone) uniqueConstraintName(base string) string {
	taken := make(map[string]bool, len(b.Constraints))
	for _, c := range b.Constraints {
		taken[c.Name] = true
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if !taken[name] {
			return name
		}
	}
}

// Object is a scene object. When Type is ARMATURE it owns an ordered bone collection.
type Object struct {
	Name  string     `yaml:"name" json:"name"`
	Type  ObjectType `yaml:"type" json:"type"`
	Bones []*Bone    `yaml:"bones,omitempty" json:"bones,omitempty"`
}

// IsArmature reports whether the object is an armature.
func (o *Object) IsArmature() bool {
	return o != nil && o.Type == ObjectArmature
}

// Bone looks up a bone by name.
func (o *Object) Bone(name string) *Bone {
	for _, b := range o.Bones {
		if b != nil && b.Name == name {
			return b
		}
	}
	return nil
}

// SelectedBones returns the selected bones in armature order.
func (o *Object) SelectedBones() []*Bone {
	var out []*Bone
	for _, b := range o.Bones {
		if b.Selected {
			out = append(out, b)
		}
	}
	return out
}

// Select replaces the selection with the named bones.
// Unknown names are returned as an error and leave the selection untouched.
func (o *Object) Select(names []string) error {
	want := make(map[string]bool, len(names))
	var missing []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if o.Bone(n) == nil {
			missing = append(missing, n)
			continue
		}
		want[n] = true
	}
	if len(missing) > 0 {
		return fmt.Errorf("unknown bones in %q: %s", o.Name, strings.Join(missing, ", "))
	}
	for _, b := range o.Bones {
		b.Selected = want[b.Name]
	}
	return nil
}

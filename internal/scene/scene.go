// Package scene reads and writes the YAML scene document that stands in for
// the host scene graph: objects, armature bones, selection and constraints.
package scene

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/chainrig/internal/model"
)

// Scene is the document root.
type Scene struct {
	Active  string          `yaml:"active"`
	Objects []*model.Object `yaml:"objects"`
}

// ActiveObject returns the active object, or nil when nothing is active or
// the name does not resolve.
func (s *Scene) ActiveObject() (*model.Object, error) {
	if s.Active == "" {
		return nil, nil
	}
	return s.Object(s.Active), nil
}

// Object looks up an object by name.
func (s *Scene) Object(name string) *model.Object {
	for _, o := range s.Objects {
		if o != nil && o.Name == name {
			return o
		}
	}
	return nil
}

// SelectBones replaces the active armature's selection with names.
// An empty list keeps the selection stored in the document.
func (s *Scene) SelectBones(names []string) error {
	if len(names) == 0 {
		return nil
	}
	obj, _ := s.ActiveObject()
	if !obj.IsArmature() {
		return fmt.Errorf("cannot select bones: active object %q is not an armature", s.Active)
	}
	return obj.Select(names)
}

// Validate checks structural invariants and returns every violation found.
func (s *Scene) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for i, o := range s.Objects {
		if o == nil || o.Name == "" {
			errs = append(errs, fmt.Errorf("objects[%d]: name is required", i))
			continue
		}
		if seen[o.Name] {
			errs = append(errs, fmt.Errorf("object %q: duplicate name", o.Name))
		}
		seen[o.Name] = true
		if !o.IsArmature() && len(o.Bones) > 0 {
			errs = append(errs, fmt.Errorf("object %q: only armatures can own bones", o.Name))
		}
	}
	if s.Active != "" && !seen[s.Active] {
		errs = append(errs, fmt.Errorf("active object %q does not exist", s.Active))
	}

	for _, o := range s.Objects {
		if o.IsArmature() {
			errs = append(errs, s.validateArmature(o)...)
		}
	}
	return errors.Join(errs...)
}

func (s *Scene) validateArmature(o *model.Object) []error {
	var errs []error
	names := map[string]bool{}
	for i, b := range o.Bones {
		if b == nil || b.Name == "" {
			errs = append(errs, fmt.Errorf("%s.bones[%d]: name is required", o.Name, i))
			continue
		}
		if names[b.Name] {
			errs = append(errs, fmt.Errorf("%s/%s: duplicate bone name", o.Name, b.Name))
		}
		names[b.Name] = true
	}

	for _, b := range o.Bones {
		if b == nil {
			continue
		}
		for i, c := range b.Constraints {
			if c == nil {
				errs = append(errs, fmt.Errorf("%s/%s constraints[%d]: empty entry", o.Name, b.Name, i))
				continue
			}
			where := fmt.Sprintf("%s/%s constraint %q", o.Name, b.Name, c.Name)
			if c.Influence < 0 || c.Influence > 1 {
				errs = append(errs, fmt.Errorf("%s: influence %v outside [0, 1]", where, c.Influence))
			}
			if !c.IsDampedTrack() {
				continue
			}
			if !c.TrackAxis.Valid() {
				errs = append(errs, fmt.Errorf("%s: invalid track axis %q", where, c.TrackAxis))
			}
			target := s.Object(c.Target)
			if !target.IsArmature() {
				errs = append(errs, fmt.Errorf("%s: target %q is not an armature", where, c.Target))
				continue
			}
			if target.Bone(c.Subtarget) == nil {
				errs = append(errs, fmt.Errorf("%s: subtarget %q does not exist in %q", where, c.Subtarget, c.Target))
			}
		}
	}
	return errs
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene: invalid: %w", err)
	}
	return &s, nil
}

// Load reads a scene file and returns it with the SHA-256 of its raw bytes.
func Load(path string) (*Scene, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("scene: read: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, "", err
	}
	return s, Hash(data), nil
}

// Marshal encodes the scene with numeric and boolean triples in flow style.
func (s *Scene) Marshal() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(s); err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	flowScalarSequences(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Save validates s and writes it atomically. It returns the hash of the
// written bytes.
func Save(path string, s *Scene) (string, error) {
	if err := s.Validate(); err != nil {
		return "", fmt.Errorf("scene: refusing to save invalid scene: %w", err)
	}
	data, err := s.Marshal()
	if err != nil {
		return "", err
	}

	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", fmt.Errorf("scene: write: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("scene: rename: %w", err)
	}
	return Hash(data), nil
}

// Hash returns "sha256:<hex>" of data.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(h[:])
}

func flowScalarSequences(n *yaml.Node) {
	if n.Kind == yaml.SequenceNode && len(n.Content) > 0 {
		scalars := true
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				scalars = false
				break
			}
		}
		if scalars {
			n.Style = yaml.FlowStyle
		}
	}
	for _, c := range n.Content {
		flowScalarSequences(c)
	}
}

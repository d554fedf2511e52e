package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/chainrig/internal/model"
	"github.com/ppiankov/chainrig/internal/rig"
)

const hairScene = `active: Armature
objects:
  - name: Armature
    type: ARMATURE
    bones:
      - name: hair.000
        head: [0, 0, 1.9]
        select: true
        lock_location: [true, true, true]
        lock_rotation: [true, true, true]
      - name: hair.001
        head: [0, 0, 1.7]
        select: true
        lock_location: [false, false, false]
        lock_rotation: [false, false, false]
      - name: hair.002
        head: [0, 0, 1.5]
        select: true
        lock_location: [false, false, false]
        lock_rotation: [false, false, false]
        constraints:
          - name: Copy Rotation
            type: COPY_ROTATION
            influence: 1
      - name: spine
        head: [0, 0, 1.0]
        lock_location: [false, false, false]
        lock_rotation: [false, false, false]
  - name: Cube
    type: MESH
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}

func TestLoadHashesRawBytes(t *testing.T) {
	path := writeScene(t, hairScene)
	s, hash, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if hash != Hash([]byte(hairScene)) {
		t.Errorf("hash mismatch: %s", hash)
	}
	if !strings.HasPrefix(hash, "sha256:") {
		t.Errorf("expected sha256 prefix, got %s", hash)
	}

	obj, err := s.ActiveObject()
	if err != nil || !obj.IsArmature() {
		t.Fatalf("expected active armature, got %v / %v", obj, err)
	}
	if got := len(obj.SelectedBones()); got != 3 {
		t.Errorf("expected 3 selected bones, got %d", got)
	}
	if obj.Bone("hair.000").Head.Z() != 1.9 {
		t.Errorf("unexpected head %v", obj.Bone("hair.000").Head)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown active": `active: Ghost
objects:
  - name: Armature
    type: ARMATURE
`,
		"duplicate bones": `objects:
  - name: Armature
    type: ARMATURE
    bones:
      - {name: a, head: [0, 0, 0]}
      - {name: a, head: [0, 0, 1]}
`,
		"dangling subtarget": `objects:
  - name: Armature
    type: ARMATURE
    bones:
      - name: a
        head: [0, 0, 0]
        constraints:
          - {name: Damped Track, type: DAMPED_TRACK, target: Armature, subtarget: missing, influence: 0.5, track_axis: TRACK_Y}
`,
		"influence out of range": `objects:
  - name: Armature
    type: ARMATURE
    bones:
      - name: a
        head: [0, 0, 0]
        constraints:
          - {name: Copy Rotation, type: COPY_ROTATION, influence: 1.5}
`,
		"bad axis": `objects:
  - name: Armature
    type: ARMATURE
    bones:
      - name: a
        head: [0, 0, 0]
      - name: b
        head: [0, 0, 1]
        constraints:
          - {name: Damped Track, type: DAMPED_TRACK, target: Armature, subtarget: a, influence: 0.5, track_axis: TRACK_W}
`,
		"mesh with bones": `objects:
  - name: Cube
    type: MESH
    bones:
      - {name: a, head: [0, 0, 0]}
`,
		"null constraint": `objects:
  - name: Armature
    type: ARMATURE
    bones:
      - name: a
        head: [0, 0, 0]
        constraints: [~]
`,
		"null object": `objects:
  - ~
  - name: Armature
    type: ARMATURE
    bones:
      - name: a
        head: [0, 0, 0]
      - name: b
        head: [0, 0, 1]
        constraints:
          - {name: Damped Track, type: DAMPED_TRACK, target: Armature, subtarget: a, influence: 0.5, track_axis: TRACK_Y}
`,
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseAcceptsShortAxis(t *testing.T) {
	s, err := Parse([]byte(`objects:
  - name: Armature
    type: ARMATURE
    bones:
      - {name: a, head: [0, 0, 0]}
      - name: b
        head: [0, 0, 1]
        constraints:
          - {name: Damped Track, type: DAMPED_TRACK, target: Armature, subtarget: a, influence: 0.5, track_axis: -z}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := s.Object("Armature").Bone("b").Constraints[0].TrackAxis; got != model.TrackNegZ {
		t.Errorf("expected TRACK_NEGATIVE_Z, got %s", got)
	}
}

func TestSaveRoundTripAfterBuild(t *testing.T) {
	path := writeScene(t, hairScene)
	s, before, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rep, err := rig.NewOperator(nil).Execute(s, rig.OpBuild, rig.DefaultParams())
	if err != nil || rep.Count != 2 {
		t.Fatalf("build: %v / %+v", err, rep)
	}

	after, err := Save(path, s)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if after == before {
		t.Error("hash should change after mutation")
	}

	reloaded, hash, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if hash != after {
		t.Errorf("Save hash %s does not match reload hash %s", after, hash)
	}

	arm := reloaded.Object("Armature")
	c := arm.Bone("hair.001").Constraints
	if len(c) != 1 || c[0].Subtarget != "hair.002" || c[0].TrackAxis != model.TrackY {
		t.Fatalf("unexpected constraints on hair.001: %+v", c)
	}
	if arm.Bone("hair.000").LockLocation != [3]bool{} {
		t.Error("locks should be cleared and persisted")
	}
	if arm.Bone("spine").Selected {
		t.Error("selection must round-trip")
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "head: [0, 0, 1.9]") {
		t.Errorf("expected flow-style head, got:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), ".scene.yaml.tmp")); !os.IsNotExist(err) {
		t.Error("temp file should not remain")
	}
}

func TestSelectBonesOverride(t *testing.T) {
	s, err := Parse([]byte(hairScene))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SelectBones([]string{"spine", "hair.000"}); err != nil {
		t.Fatalf("SelectBones: %v", err)
	}
	obj, _ := s.ActiveObject()
	sel := obj.SelectedBones()
	if len(sel) != 2 || sel[0].Name != "hair.000" || sel[1].Name != "spine" {
		t.Fatalf("unexpected selection %v", sel)
	}
	if err := s.SelectBones([]string{"nope"}); err == nil {
		t.Error("expected unknown bone error")
	}
	if err := s.SelectBones(nil); err != nil {
		t.Errorf("empty override should be a no-op, got %v", err)
	}
}

func TestSelectBonesRequiresArmature(t *testing.T) {
	s, err := Parse([]byte(strings.Replace(hairScene, "active: Armature", "active: Cube", 1)))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SelectBones([]string{"hair.000"}); err == nil {
		t.Fatal("expected error for mesh active object")
	}
}

func TestNoActiveObjectIsNotAnArmature(t *testing.T) {
	s, err := Parse([]byte(strings.Replace(hairScene, "active: Armature\n", "", 1)))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := rig.NewOperator(nil).Execute(s, rig.OpClear, rig.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Status != rig.Cancelled || rep.Level != rig.LevelError {
		t.Errorf("expected cancelled error report, got %s/%s", rep.Status, rep.Level)
	}
}

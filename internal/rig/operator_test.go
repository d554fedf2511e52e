package rig

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/chainrig/internal/model"
)

type stubHost struct {
	obj *model.Object
	err error
}

func (h stubHost) ActiveObject() (*model.Object, error) { return h.obj, h.err }

func armature(bones ...*model.Bone) stubHost {
	return stubHost{obj: &model.Object{Name: "Armature", Type: model.ObjectArmature, Bones: bones}}
}

func TestExecuteRejectsNonArmature(t *testing.T) {
	op := NewOperator(nil)
	hosts := []stubHost{
		{obj: nil},
		{obj: &model.Object{Name: "Cube", Type: model.ObjectMesh}},
	}
	for _, h := range hosts {
		for _, o := range []Op{OpBuild, OpUniform, OpClear, OpGradient} {
			rep, err := op.Execute(h, o, DefaultParams())
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", o, err)
			}
			if rep.Status != Cancelled || rep.Level != LevelError {
				t.Errorf("%s: expected CANCELLED/ERROR, got %s/%s", o, rep.Status, rep.Level)
			}
			if !errors.Is(rep.Err, ErrNotAnArmature) {
				t.Errorf("%s: expected ErrNotAnArmature, got %v", o, rep.Err)
			}
			if rep.Mutated {
				t.Errorf("%s: rejected operation must not report mutation", o)
			}
		}
	}
}

func TestExecuteHostFailure(t *testing.T) {
	op := NewOperator(nil)
	_, err := op.Execute(stubHost{err: errors.New("scene unreadable")}, OpBuild, DefaultParams())
	if err == nil || !strings.Contains(err.Error(), "scene unreadable") {
		t.Fatalf("expected wrapped host error, got %v", err)
	}
}

func TestExecuteOnlySelectedBones(t *testing.T) {
	unselected := bone("ignored", 5)
	unselected.Selected = false
	h := armature(bone("a", 0), unselected, bone("b", 1))

	rep, err := NewOperator(nil).Execute(h, OpBuild, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Count != 1 {
		t.Fatalf("expected 1 constraint, got %d", rep.Count)
	}
	if len(unselected.Constraints) != 0 || unselected.LockLocation != [3]bool{true, true, true} {
		t.Error("unselected bone must not be touched")
	}
	if strings.Join(rep.Selected, ",") != "a,b" {
		t.Errorf("expected selection a,b, got %v", rep.Selected)
	}
}

func TestExecuteBuildTooFewIsInfo(t *testing.T) {
	rep, err := NewOperator(nil).Execute(armature(bone("solo", 0)), OpBuild, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.OK() || rep.Level != LevelInfo || rep.Count != 0 {
		t.Fatalf("expected FINISHED/INFO with 0, got %s/%s/%d", rep.Status, rep.Level, rep.Count)
	}
	if rep.Message != MsgTooFewToBuild {
		t.Errorf("unexpected message %q", rep.Message)
	}
}

func TestExecuteClearReportsNothingToClear(t *testing.T) {
	h := armature(bone("a", 0), bone("b", 1), bone("c", 2))
	op := NewOperator(nil)

	if _, err := op.Execute(h, OpBuild, DefaultParams()); err != nil {
		t.Fatal(err)
	}
	rep, _ := op.Execute(h, OpClear, DefaultParams())
	if !rep.OK() || rep.Level != LevelInfo || rep.Count != 2 {
		t.Fatalf("expected INFO with 2 cleared, got %s/%d", rep.Level, rep.Count)
	}
	if rep.Message != "Cleared 2 damped track constraints" {
		t.Errorf("unexpected message %q", rep.Message)
	}

	rep, _ = op.Execute(h, OpClear, DefaultParams())
	if !rep.OK() || rep.Level != LevelWarning || rep.Count != 0 {
		t.Fatalf("expected FINISHED/WARNING with 0, got %s/%s/%d", rep.Status, rep.Level, rep.Count)
	}
	if rep.Mutated {
		t.Error("nothing-to-clear must not report mutation")
	}
}

func TestExecuteUniform(t *testing.T) {
	h := armature(bone("a", 0), bone("b", 1))
	op := NewOperator(nil)

	rep, _ := op.Execute(h, OpUniform, DefaultParams())
	if rep.Level != LevelWarning || rep.Count != 0 {
		t.Fatalf("expected warning with no tracks, got %s/%d", rep.Level, rep.Count)
	}

	op.Execute(h, OpBuild, DefaultParams())
	params := DefaultParams()
	params.Influence = 0.9
	params.TrackAxis = model.TrackNegZ
	rep, _ = op.Execute(h, OpUniform, params)
	if !rep.OK() || rep.Count != 1 || rep.Uniform == nil {
		t.Fatalf("expected 1 update, got %+v", rep)
	}
	if !strings.Contains(rep.Message, "-Z") {
		t.Errorf("expected axis in message, got %q", rep.Message)
	}

	params.TrackAxis = "SIDEWAYS"
	rep, _ = op.Execute(h, OpUniform, params)
	if rep.Status != Cancelled || !errors.Is(rep.Err, ErrInvalidAxis) {
		t.Fatalf("expected cancelled invalid axis, got %s/%v", rep.Status, rep.Err)
	}
}

func TestExecuteGradientCancellations(t *testing.T) {
	op := NewOperator(nil)

	rep, _ := op.Execute(armature(), OpGradient, DefaultParams())
	if rep.Status != Cancelled || rep.Level != LevelWarning || !errors.Is(rep.Err, ErrEmptySelection) {
		t.Errorf("expected cancelled empty selection, got %s/%s/%v", rep.Status, rep.Level, rep.Err)
	}

	rep, _ = op.Execute(armature(bone("solo", 0)), OpGradient, DefaultParams())
	if rep.Status != Cancelled || !errors.Is(rep.Err, ErrNoConstrainedBones) {
		t.Errorf("expected cancelled no constrained bones, got %s/%v", rep.Status, rep.Err)
	}
}

func TestExecuteGradientReportsRealizedRange(t *testing.T) {
	h := armature(bone("a", 0), bone("b", 1), bone("c", 2), bone("d", 3))
	op := NewOperator(nil)
	op.Execute(h, OpBuild, DefaultParams())

	params := DefaultParams()
	params.StartInfluence = 1.4
	params.EndInfluence = 0.2
	rep, _ := op.Execute(h, OpGradient, params)
	if !rep.OK() || rep.Count != 3 {
		t.Fatalf("expected 3 bones, got %+v", rep)
	}
	if rep.Gradient.Start != 1 || rep.Gradient.End != 0.2 {
		t.Errorf("expected realized 1..0.2, got %v..%v", rep.Gradient.Start, rep.Gradient.End)
	}
	if rep.Message != "Set influence on 3 bones from 1.00 to 0.20" {
		t.Errorf("unexpected message %q", rep.Message)
	}
}

func TestExecuteUnknownOp(t *testing.T) {
	if _, err := NewOperator(nil).Execute(armature(), Op("explode"), DefaultParams()); err == nil {
		t.Fatal("expected error for unknown op")
	}
}

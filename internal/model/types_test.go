package model

import "testing"

func TestParseTrackAxis(t *testing.T) {
	tests := []struct {
		in   string
		want TrackAxis
	}{
		{"TRACK_Y", TrackY},
		{"track_negative_z", TrackNegZ},
		{"+X", TrackX},
		{"y", TrackY},
		{"-Z", TrackNegZ},
		{" -y ", TrackNegY},
		{"TRACK_-X", TrackNegX},
	}
	for _, tt := range tests {
		got, err := ParseTrackAxis(tt.in)
		if err != nil {
			t.Errorf("ParseTrackAxis(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTrackAxis(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseTrackAxisRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "W", "TRACK_W", "+-Y"} {
		if _, err := ParseTrackAxis(in); err == nil {
			t.Errorf("ParseTrackAxis(%q): expected error", in)
		}
	}
}

func TestTrackAxisShort(t *testing.T) {
	if TrackNegZ.Short() != "-Z" {
		t.Errorf("expected -Z, got %s", TrackNegZ.Short())
	}
	if TrackY.Short() != "+Y" {
		t.Errorf("expected +Y, got %s", TrackY.Short())
	}
	if len(TrackAxes) != 6 {
		t.Fatalf("expected 6 axes, got %d", len(TrackAxes))
	}
}

func TestAppendConstraintNamesLikeHost(t *testing.T) {
	b := &Bone{Name: "hair.001"}
	b.AppendConstraint(&Constraint{Type: DampedTrack})
	b.AppendConstraint(&Constraint{Type: DampedTrack})
	b.AppendConstraint(&Constraint{Type: DampedTrack})

	want := []string{"Damped Track", "Damped Track.001", "Damped Track.002"}
	for i, c := range b.Constraints {
		if c.Name != want[i] {
			t.Errorf("constraint %d: expected name %q, got %q", i, want[i], c.Name)
		}
	}
}

func TestRemoveConstraintAt(t *testing.T) {
	b := &Bone{Name: "b"}
	b.AppendConstraint(&Constraint{Name: "a", Type: CopyRotation})
	b.AppendConstraint(&Constraint{Name: "b", Type: DampedTrack})
	b.AppendConstraint(&Constraint{Name: "c", Type: StretchTo})

	b.RemoveConstraintAt(1)
	if len(b.Constraints) != 2 {
		t.Fatalf("expected 2 constraints, got %d", len(b.Constraints))
	}
	if b.Constraints[0].Name != "a" || b.Constraints[1].Name != "c" {
		t.Errorf("unexpected order after removal: %s, %s", b.Constraints[0].Name, b.Constraints[1].Name)
	}
}

func TestSelectReplacesSelection(t *testing.T) {
	o := &Object{Name: "Armature", Type: ObjectArmature, Bones: []*Bone{
		{Name: "a", Selected: true},
		{Name: "b"},
		{Name: "c"},
	}}

	if err := o.Select([]string{"c", "b"}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	sel := o.SelectedBones()
	if len(sel) != 2 || sel[0].Name != "b" || sel[1].Name != "c" {
		t.Fatalf("expected [b c] in armature order, got %v", names(sel))
	}

	if err := o.Select([]string{"a", "zzz"}); err == nil {
		t.Fatal("expected error for unknown bone")
	}
	if sel := o.SelectedBones(); len(sel) != 2 {
		t.Errorf("failed Select must not change selection, got %v", names(sel))
	}
}

func TestIsArmatureNil(t *testing.T) {
	var o *Object
	if o.IsArmature() {
		t.Error("nil object must not be an armature")
	}
}

func names(bones []*Bone) []string {
	out := make([]string, len(bones))
	for i, b := range bones {
		out[i] = b.Name
	}
	return out
}

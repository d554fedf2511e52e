package rig

import "errors"

var (
	// ErrNotAnArmature is returned when the active object is missing or not an armature.
	ErrNotAnArmature = errors.New("active object is not an armature")
	// ErrEmptySelection is returned by the gradient operation when no bones are selected.
	ErrEmptySelection = errors.New("no bones selected")
	// ErrNoConstrainedBones is returned by the gradient operation when only the chain root is selected.
	ErrNoConstrainedBones = errors.New("no constrained bones in selection")
	// ErrInvalidAxis is returned when a track axis outside the six host values is supplied.
	ErrInvalidAxis = errors.New("invalid track axis")
)

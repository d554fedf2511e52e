package model

import (
	"fmt"
	"strings"
)

// TrackAxis is the local bone axis a damped track points at its target.
type TrackAxis string

const (
	TrackX    TrackAxis = "TRACK_X"
	TrackY    TrackAxis = "TRACK_Y"
	TrackZ    TrackAxis = "TRACK_Z"
	TrackNegX TrackAxis = "TRACK_NEGATIVE_X"
	TrackNegY TrackAxis = "TRACK_NEGATIVE_Y"
	TrackNegZ TrackAxis = "TRACK_NEGATIVE_Z"
)

// TrackAxes lists the six axes in host enum order.
var TrackAxes = []TrackAxis{TrackX, TrackY, TrackZ, TrackNegX, TrackNegY, TrackNegZ}

// axisAliases maps short spellings to host identifiers.
var axisAliases = map[string]TrackAxis{
	"X": TrackX, "+X": TrackX,
	"Y": TrackY, "+Y": TrackY,
	"Z": TrackZ, "+Z": TrackZ,
	"-X": TrackNegX, "NEG_X": TrackNegX, "NEGATIVE_X": TrackNegX,
	"-Y": TrackNegY, "NEG_Y": TrackNegY, "NEGATIVE_Y": TrackNegY,
	"-Z": TrackNegZ, "NEG_Z": TrackNegZ, "NEGATIVE_Z": TrackNegZ,
}

// Valid reports whether a is one of the six axes.
func (a TrackAxis) Valid() bool {
	for _, v := range TrackAxes {
		if a == v {
			return true
		}
	}
	return false
}

// Short returns the signed form, e.g. "+Y" or "-Z".
func (a TrackAxis) Short() string {
	switch a {
	case TrackX:
		return "+X"
	case TrackY:
		return "+Y"
	case TrackZ:
		return "+Z"
	case TrackNegX:
		return "-X"
	case TrackNegY:
		return "-Y"
	case TrackNegZ:
		return "-Z"
	default:
		return string(a)
	}
}

// ParseTrackAxis accepts host identifiers (TRACK_NEGATIVE_Z) and signed
// short forms (+Y, -Z, y). Matching is case-insensitive.
func ParseTrackAxis(s string) (TrackAxis, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if a := TrackAxis(norm); a.Valid() {
		return a, nil
	}
	if a, ok := axisAliases[strings.TrimPrefix(norm, "TRACK_")]; ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown track axis %q (want one of X, Y, Z, -X, -Y, -Z)", s)
}

// UnmarshalText validates axes read from YAML or JSON documents.
func (a *TrackAxis) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = ""
		return nil
	}
	parsed, err := ParseTrackAxis(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

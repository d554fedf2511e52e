package rig

import "github.com/ppiankov/chainrig/internal/model"

// TrackInfo is a read-only view of one damped track.
type TrackInfo struct {
	Name      string          `json:"name"`
	Subtarget string          `json:"subtarget"`
	Influence float64         `json:"influence"`
	TrackAxis model.TrackAxis `json:"track_axis"`
}

// BoneChain lists a bone's position and the damped tracks it owns.
type BoneChain struct {
	Bone   string      `json:"bone"`
	HeadZ  float64     `json:"head_z"`
	Locked bool        `json:"locked"`
	Tracks []TrackInfo `json:"tracks,omitempty"`
}

// Inspect lists bones in BuildChain order (ascending head Z) with their
// damped tracks. It does not modify anything.
func Inspect(bones []*model.Bone) []BoneChain {
	chain := sortedByHeight(bones, true)
	out := make([]BoneChain, 0, len(chain))
	for _, b := range chain {
		bc := BoneChain{
			Bone:   b.Name,
			HeadZ:  b.Head.Z(),
			Locked: b.LockLocation != [3]bool{} || b.LockRotation != [3]bool{},
		}
		for _, c := range b.DampedTracks() {
			bc.Tracks = append(bc.Tracks, TrackInfo{
				Name:      c.Name,
				Subtarget: c.Subtarget,
				Influence: c.Influence,
				TrackAxis: c.TrackAxis,
			})
		}
		out = append(out, bc)
	}
	return out
}

package journal

import (
	"time"

	"github.com/ppiankov/chainrig/internal/rig"
)

// TimestampFormat is the layout used in entry timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Entry is one line in the hash-chained JSONL journal.
// Fields are plain structs and slices so json.Marshal output is deterministic.
type Entry struct {
	Timestamp  string   `json:"ts"`
	Op         string   `json:"op"`
	Scene      string   `json:"scene"`
	Armature   string   `json:"armature,omitempty"`
	Bones      []string `json:"bones,omitempty"`
	Status     string   `json:"status"`
	Level      string   `json:"level"`
	Count      int      `json:"count"`
	Message    string   `json:"message"`
	HashBefore string   `json:"scene_hash_before"`
	HashAfter  string   `json:"scene_hash_after,omitempty"`
	DryRun     bool     `json:"dry_run,omitempty"`
	PrevHash   string   `json:"prev_hash"`
}

// FromReport builds an entry for an operator report. hashAfter is empty
// when the scene was not written.
func FromReport(rep rig.Report, scenePath, hashBefore, hashAfter string, dryRun bool) Entry {
	return Entry{
		Timestamp:  time.Now().UTC().Format(TimestampFormat),
		Op:         string(rep.Op),
		Scene:      scenePath,
		Armature:   rep.Armature,
		Bones:      rep.Selected,
		Status:     string(rep.Status),
		Level:      string(rep.Level),
		Count:      rep.Count,
		Message:    rep.Message,
		HashBefore: hashBefore,
		HashAfter:  hashAfter,
		DryRun:     dryRun,
	}
}

package rig

// Op names one of the four chain operations.
type Op string

const (
	OpBuild    Op = "build_chain"
	OpUniform  Op = "set_uniform_influence"
	OpClear    Op = "clear_chain"
	OpGradient Op = "set_gradient_influence"
)

// Status is the host-visible completion state of an operation.
type Status string

const (
	Finished  Status = "FINISHED"
	Cancelled Status = "CANCELLED"
)

// Level is the severity the host uses to display the report message.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Report is the single structured outcome handed back to the host.
type Report struct {
	Op       Op       `json:"op"`
	Status   Status   `json:"status"`
	Level    Level    `json:"level"`
	Message  string   `json:"message"`
	Armature string   `json:"armature,omitempty"`
	Selected []string `json:"selected,omitempty"`
	Count    int      `json:"count"`
	Mutated  bool     `json:"mutated"`
	Error    string   `json:"error,omitempty"`

	Build    *BuildResult    `json:"build,omitempty"`
	Uniform  *UniformResult  `json:"uniform,omitempty"`
	Gradient *GradientResult `json:"gradient,omitempty"`

	Err error `json:"-"`
}

// OK reports whether the operation finished (including informational no-ops).
func (r Report) OK() bool {
	return r.Status == Finished
}

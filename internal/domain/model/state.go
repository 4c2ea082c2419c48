package model

// State is the full durable snapshot of the engine.
type State struct {
	Coaches      []Coach        `json:"coaches" yaml:"coaches"`
	Availability []Availability `json:"availability" yaml:"availability"`
	Assignments  []Assignment   `json:"assignments" yaml:"assignments"`
}

// StatePatch is a partial save. A nil collection is left untouched by the
// store; a non-nil collection upserts its records by key.
type StatePatch struct {
	Coaches      []Coach
	Availability []Availability
	Assignments  []Assignment

	// ReplaceCoaches makes Coaches the whole roster: stored coaches missing
	// from it are deleted.
	ReplaceCoaches bool
}

// PatchOf returns a patch that upserts every record of st.
func PatchOf(st State) StatePatch {
	return StatePatch{Coaches: st.Coaches, Availability: st.Availability, Assignments: st.Assignments}
}

// Empty reports whether the patch carries nothing to write.
func (p StatePatch) Empty() bool {
	return p.Coaches == nil && p.Availability == nil && p.Assignments == nil && !p.ReplaceCoaches
}

package app

// State is a step of the report pipeline. Each state gates entry to the next.
type State int

const (
	StateIdle State = iota
	StateQueryValidated
	StateNutrientsFetched
	StateReportRendered
	StateArtifactSaved
	StateDelivered
	StateAborted
)

var stateNames = [...]string{
	StateIdle:             "Idle",
	StateQueryValidated:   "QueryValidated",
	StateNutrientsFetched: "NutrientsFetched",
	StateReportRendered:   "ReportRendered",
	StateArtifactSaved:    "ArtifactSaved",
	StateDelivered:        "Delivered",
	StateAborted:          "Aborted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Status summarizes how a run ended.
type Status string

const (
	StatusCompleted            Status = "completed"
	StatusCompletedWithWarning Status = "completed_with_warning"
	StatusAborted              Status = "aborted"
)

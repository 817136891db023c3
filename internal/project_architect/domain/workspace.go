package domain

import "time"

// Phase is the hazard simulator panel state.
type Phase string

const (
	PhaseEmpty         Phase = "empty"
	PhaseImageSelected Phase = "image_selected"
	PhaseAnalyzing     Phase = "analyzing"
	PhaseResultReady   Phase = "result_ready"
)

// SimulatorState is what the hazard simulator panel shows.
type SimulatorState struct {
	Phase  Phase         `json:"phase"`
	Image  string        `json:"image,omitempty"` // data URL
	Result *HazardResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// WorkspaceState is the per-session view/controller state.
type WorkspaceState struct {
	Project   ProjectRecord   `json:"project"`
	Inputs    ConstraintInput `json:"inputs"`
	ActiveTab Tab             `json:"active_tab"`
	Error     string          `json:"error,omitempty"`
	Simulator SimulatorState  `json:"simulator"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewWorkspaceState is the state of a fresh session: built-in project,
// default constraints, architect tab.
func NewWorkspaceState(now time.Time) WorkspaceState {
	return WorkspaceState{
		Project:   DefaultProject(),
		Inputs:    DefaultConstraints(),
		ActiveTab: TabArchitect,
		Simulator: SimulatorState{Phase: PhaseEmpty},
		UpdatedAt: now,
	}
}

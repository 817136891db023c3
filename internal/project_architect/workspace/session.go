package workspace

import (
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
)

// Session is the live controller for one browser session. All fields are
// guarded by mu; the network calls run with mu released.
type Session struct {
	ID string

	mu         sync.Mutex
	state      domain.WorkspaceState
	sim        simulator
	genSeq     uint64
	generating bool
	rotator    *Rotator
	lastSeen   time.Time
}

func newSession(id string, state domain.WorkspaceState, now time.Time) *Session {
	if _, err := domain.ParseTab(string(state.ActiveTab)); err != nil {
		state.ActiveTab = domain.TabArchitect
	}
	return &Session{
		ID:       id,
		state:    state,
		sim:      newSimulator(state.Simulator),
		lastSeen: now,
	}
}

// View is a read-only copy of the session handed to renderers.
type View struct {
	SessionID       string                `json:"session_id"`
	State           domain.WorkspaceState `json:"state"`
	Generating      bool                  `json:"generating"`
	Analyzing       bool                  `json:"analyzing"`
	ProgressMessage string                `json:"progress_message,omitempty"`
	ShowSimulator   bool                  `json:"show_simulator"`
	TotalCost       float64               `json:"total_cost"`
}

// CanAnalyze mirrors the enabled state of the "Analyze Hazard" control.
func (v View) CanAnalyze() bool {
	return v.ShowSimulator && !v.Analyzing && v.State.Simulator.Image != ""
}

// snapshot must be called with mu held.
func (s *Session) snapshot() View {
	st := s.state
	st.Project = st.Project.Clone()
	st.Simulator = s.sim.state
	if st.Simulator.Result != nil {
		r := *st.Simulator.Result
		st.Simulator.Result = &r
	}
	v := View{
		SessionID:     s.ID,
		State:         st,
		Generating:    s.generating,
		Analyzing:     s.sim.inFlight,
		ShowSimulator: domain.ShowsSimulator(st.Project.Title),
		TotalCost:     st.Project.TotalCost(),
	}
	if s.generating {
		v.ProgressMessage = s.rotator.Current()
	}
	return v
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.generating && !s.sim.inFlight && s.lastSeen.Before(cutoff)
}

// beginGeneration disables further submission and starts the progress rotation.
// When in is set it replaces the inputs, but only once the session is idle.
func (s *Session) beginGeneration(now time.Time, in *domain.ConstraintInput, messages []string, interval time.Duration) (uint64, domain.ConstraintInput, *Rotator, error) {
	if s.generating {
		return 0, domain.ConstraintInput{}, nil, domain.ErrGenerationInFlight
	}
	if in != nil {
		if err := s.setInputs(now, *in); err != nil {
			return 0, domain.ConstraintInput{}, nil, err
		}
	}
	if err := s.state.Inputs.Validate(); err != nil {
		return 0, domain.ConstraintInput{}, nil, err
	}
	s.genSeq++
	s.generating = true
	s.state.Error = ""
	s.state.UpdatedAt = now
	s.rotator = StartRotator(messages, interval)
	return s.genSeq, s.state.Inputs, s.rotator, nil
}

// finishGeneration re-enables submission and applies the outcome when seq is
// the latest issued. A success replaces the record wholesale and opens the
// details tab; a failure leaves the tab and the record untouched.
func (s *Session) finishGeneration(now time.Time, seq uint64, rec domain.ProjectRecord, err error) bool {
	s.generating = false
	s.rotator = nil
	if seq != s.genSeq {
		return false
	}
	s.state.UpdatedAt = now
	if err != nil {
		s.state.Error = domain.UserMessage(err)
		return true
	}
	s.state.Project = rec.Clone()
	s.state.ActiveTab = domain.TabDetails
	s.state.Error = ""
	s.sim.reset()
	return true
}

func (s *Session) setInputs(now time.Time, in domain.ConstraintInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	s.state.Inputs = in
	s.state.UpdatedAt = now
	return nil
}

func (s *Session) setTab(now time.Time, tab domain.Tab) error {
	if _, err := domain.ParseTab(string(tab)); err != nil {
		return err
	}
	s.state.ActiveTab = tab
	s.state.UpdatedAt = now
	return nil
}

func (s *Session) simulatorAvailable() error {
	if !domain.ShowsSimulator(s.state.Project.Title) {
		return domain.ErrSimulatorUnavailable
	}
	return nil
}

// adopt replaces the live state with one written elsewhere. Must hold mu.
func (s *Session) adopt(state domain.WorkspaceState) {
	if _, err := domain.ParseTab(string(state.ActiveTab)); err != nil {
		state.ActiveTab = domain.TabArchitect
	}
	seq := s.sim.seq
	s.state = state
	s.sim = newSimulator(state.Simulator)
	s.sim.seq = seq + 1
}

// persistable returns the state to hand to the store. Must hold mu.
func (s *Session) persistable() domain.WorkspaceState {
	st := s.state
	st.Simulator = s.sim.state
	return st
}

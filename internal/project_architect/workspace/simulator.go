package workspace

import (
	"strings"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
)

// simulator owns the hazard panel state. inFlight tracks the outstanding
// request independently of the phase: choosing a new image mid-flight moves
// the phase back to image_selected, but the old request still blocks a new
// analysis until it settles.
type simulator struct {
	state    domain.SimulatorState
	seq      uint64
	inFlight bool
}

func newSimulator(state domain.SimulatorState) simulator {
	if state.Phase == "" {
		state.Phase = domain.PhaseEmpty
	}
	// An analysis that was in flight when the state was persisted can never complete here.
	if state.Phase == domain.PhaseAnalyzing {
		state.Phase = domain.PhaseImageSelected
	}
	return simulator{state: state}
}

// selectImage is allowed in every phase and discards any prior result.
func (s *simulator) selectImage(image string) error {
	if strings.TrimSpace(image) == "" {
		return domain.ErrNoImage
	}
	s.seq++
	s.state = domain.SimulatorState{Phase: domain.PhaseImageSelected, Image: image}
	return nil
}

func (s *simulator) beginAnalysis() (uint64, string, error) {
	if s.inFlight {
		return 0, "", domain.ErrAnalysisInFlight
	}
	if s.state.Image == "" {
		return 0, "", domain.ErrNoImage
	}
	s.seq++
	s.inFlight = true
	s.state.Phase = domain.PhaseAnalyzing
	s.state.Result = nil
	s.state.Error = ""
	return s.seq, s.state.Image, nil
}

// finishAnalysis applies the outcome when seq is still the latest issued.
func (s *simulator) finishAnalysis(seq uint64, res domain.HazardResult, err error) bool {
	s.inFlight = false
	if seq != s.seq {
		return false
	}
	s.state.Phase = domain.PhaseResultReady
	if err != nil {
		s.state.Error = domain.UserMessage(err)
		return true
	}
	r := res
	s.state.Result = &r
	return true
}

// reset replaces the panel with a fresh one, as when the project changes.
func (s *simulator) reset() {
	s.seq++
	s.state = domain.SimulatorState{Phase: domain.PhaseEmpty}
}

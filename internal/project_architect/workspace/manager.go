package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/service"
)

// Generator produces a project from constraints.
type Generator interface {
	GenerateProject(ctx context.Context, in domain.ConstraintInput) (domain.ProjectRecord, error)
}

// Analyzer classifies a hazard image.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, image string) (domain.HazardResult, error)
}

// Store keeps a copy of each session's state for the session lifetime.
type Store interface {
	Load(ctx context.Context, id string) (domain.WorkspaceState, error)
	Save(ctx context.Context, id string, state domain.WorkspaceState) error
	Delete(ctx context.Context, id string) error
}

// Options tune the manager. Zero values fall back to the built-in defaults.
type Options struct {
	ProgressMessages []string
	ProgressInterval time.Duration
	IdleTTL          time.Duration
	Now              func() time.Time
}

const (
	DefaultProgressInterval = 2 * time.Second
	DefaultIdleTTL          = 30 * time.Minute
)

// Manager owns the live sessions and orchestrates the two outbound calls.
type Manager struct {
	store    Store
	gen      Generator
	analyzer Analyzer
	opt      Options

	mu   sync.Mutex
	live map[string]*Session
}

// NewManager creates a new Manager
func NewManager(store Store, gen Generator, analyzer Analyzer, opt Options) *Manager {
	if len(opt.ProgressMessages) == 0 {
		opt.ProgressMessages = domain.ProgressMessages()
	}
	if opt.ProgressInterval <= 0 {
		opt.ProgressInterval = DefaultProgressInterval
	}
	if opt.IdleTTL <= 0 {
		opt.IdleTTL = DefaultIdleTTL
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Manager{
		store:    store,
		gen:      gen,
		analyzer: analyzer,
		opt:      opt,
		live:     make(map[string]*Session),
	}
}

func (m *Manager) session(ctx context.Context, id string) *Session {
	now := m.opt.Now()

	m.mu.Lock()
	s, ok := m.live[id]
	m.mu.Unlock()
	if ok {
		s.touch(now)
		m.refresh(ctx, s)
		return s
	}

	state, err := m.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			service.NewLogger(ctx).LogWarnf("load_session", "session=%s error=%v", id, err)
		}
		state = domain.NewWorkspaceState(now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.live[id]; ok {
		return s
	}
	s = newSession(id, state, now)
	m.live[id] = s
	return s
}

// refresh adopts the stored state when another replica wrote it after the
// live copy was last changed. A session with a call in flight keeps its copy.
func (m *Manager) refresh(ctx context.Context, s *Session) {
	state, err := m.store.Load(ctx, s.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			service.NewLogger(ctx).LogWarnf("load_session", "session=%s error=%v", s.ID, err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating || s.sim.inFlight || !state.UpdatedAt.After(s.state.UpdatedAt) {
		return
	}
	s.adopt(state)
}

// persist is best effort: the live session stays authoritative.
func (m *Manager) persist(ctx context.Context, id string, state domain.WorkspaceState) {
	if err := m.store.Save(ctx, id, state); err != nil {
		service.NewLogger(ctx).LogWarnf("save_session", "session=%s error=%v", id, err)
	}
}

// mutate runs fn under the session lock and persists the result.
func (m *Manager) mutate(ctx context.Context, id string, fn func(s *Session) error) (View, error) {
	s := m.session(ctx, id)
	s.mu.Lock()
	err := fn(s)
	v := s.snapshot()
	st := s.persistable()
	s.mu.Unlock()

	if err != nil {
		return v, err
	}
	m.persist(ctx, id, st)
	return v, nil
}

// View returns the current session view, creating the session on first use.
func (m *Manager) View(ctx context.Context, id string) View {
	s := m.session(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// UpdateInputs replaces the constraint form values.
func (m *Manager) UpdateInputs(ctx context.Context, id string, in domain.ConstraintInput) (View, error) {
	return m.mutate(ctx, id, func(s *Session) error {
		return s.setInputs(m.opt.Now(), in)
	})
}

// SelectTab switches the active tab unconditionally.
func (m *Manager) SelectTab(ctx context.Context, id string, tab domain.Tab) (View, error) {
	return m.mutate(ctx, id, func(s *Session) error {
		return s.setTab(m.opt.Now(), tab)
	})
}

// Generate runs one generation for the session with its stored inputs.
func (m *Manager) Generate(ctx context.Context, id string) (View, error) {
	return m.GenerateWith(ctx, id, nil)
}

// GenerateWith replaces the inputs with in, when given, and runs one
// generation. A busy session keeps its inputs untouched. The returned error is
// domain.ErrGenerationInFlight, an input error, or the *domain.GenerationError
// already reflected in the view.
func (m *Manager) GenerateWith(ctx context.Context, id string, in *domain.ConstraintInput) (View, error) {
	s := m.session(ctx, id)

	s.mu.Lock()
	seq, inputs, rot, err := s.beginGeneration(m.opt.Now(), in, m.opt.ProgressMessages, m.opt.ProgressInterval)
	if err != nil {
		v := s.snapshot()
		s.mu.Unlock()
		return v, err
	}
	s.mu.Unlock()

	// The outbound call is never cancelled once sent.
	callCtx := context.WithoutCancel(ctx)
	rec, genErr := func() (domain.ProjectRecord, error) {
		defer rot.Stop()
		return m.gen.GenerateProject(callCtx, inputs)
	}()

	s.mu.Lock()
	if !s.finishGeneration(m.opt.Now(), seq, rec, genErr) {
		service.NewLogger(ctx).LogInfof("generate", "session=%s discarded stale result seq=%d", id, seq)
	}
	v := s.snapshot()
	st := s.persistable()
	s.mu.Unlock()

	m.persist(callCtx, id, st)
	return v, genErr
}

// Progress reports the rotating progress message while a generation runs.
func (m *Manager) Progress(ctx context.Context, id string) (string, bool) {
	v := m.View(ctx, id)
	return v.ProgressMessage, v.Generating
}

// SelectImage loads a new image into the simulator, clearing any prior result.
func (m *Manager) SelectImage(ctx context.Context, id string, image string) (View, error) {
	return m.mutate(ctx, id, func(s *Session) error {
		if err := s.simulatorAvailable(); err != nil {
			return err
		}
		s.state.UpdatedAt = m.opt.Now()
		return s.sim.selectImage(image)
	})
}

// Analyze runs the hazard analysis for the selected image.
func (m *Manager) Analyze(ctx context.Context, id string) (View, error) {
	s := m.session(ctx, id)

	s.mu.Lock()
	if err := s.simulatorAvailable(); err != nil {
		v := s.snapshot()
		s.mu.Unlock()
		return v, err
	}
	seq, image, err := s.sim.beginAnalysis()
	if err != nil {
		v := s.snapshot()
		s.mu.Unlock()
		return v, err
	}
	s.mu.Unlock()

	callCtx := context.WithoutCancel(ctx)
	res, anErr := m.analyzer.AnalyzeImage(callCtx, image)

	s.mu.Lock()
	if !s.sim.finishAnalysis(seq, res, anErr) {
		service.NewLogger(ctx).LogInfof("analyze", "session=%s discarded stale result seq=%d", id, seq)
	}
	s.state.UpdatedAt = m.opt.Now()
	v := s.snapshot()
	st := s.persistable()
	s.mu.Unlock()

	m.persist(callCtx, id, st)
	return v, anErr
}

// Sweep drops live sessions idle for longer than the TTL and returns how many went.
func (m *Manager) Sweep(ctx context.Context) int {
	cutoff := m.opt.Now().Add(-m.opt.IdleTTL)

	m.mu.Lock()
	var gone []string
	for id, s := range m.live {
		if s.idleSince(cutoff) {
			delete(m.live, id)
			gone = append(gone, id)
		}
	}
	m.mu.Unlock()

	for _, id := range gone {
		if err := m.store.Delete(ctx, id); err != nil {
			service.NewLogger(ctx).LogWarnf("sweep", "session=%s error=%v", id, err)
		}
	}
	return len(gone)
}

// Live returns the number of live sessions.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

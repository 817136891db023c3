package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	states  map[string]domain.WorkspaceState
	saveErr error
	saves   int
	deletes []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: make(map[string]domain.WorkspaceState)}
}

func (f *fakeStore) Load(_ context.Context, id string) (domain.WorkspaceState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.states[id]
	if !ok {
		return domain.WorkspaceState{}, domain.ErrSessionNotFound
	}
	return st, nil
}

func (f *fakeStore) Save(_ context.Context, id string, st domain.WorkspaceState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.states[id] = st
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.states, id)
	f.deletes = append(f.deletes, id)
	return nil
}

// fakeGenerator returns rec/err; when gate is set each call blocks until it receives.
type fakeGenerator struct {
	rec     domain.ProjectRecord
	err     error
	gate    chan struct{}
	started chan struct{}
	calls   int
	mu      sync.Mutex
}

func (f *fakeGenerator) GenerateProject(_ context.Context, _ domain.ConstraintInput) (domain.ProjectRecord, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.rec, f.err
}

type fakeAnalyzer struct {
	res     domain.HazardResult
	err     error
	gate    chan struct{}
	started chan struct{}
	images  []string
	mu      sync.Mutex
}

func (f *fakeAnalyzer) AnalyzeImage(_ context.Context, image string) (domain.HazardResult, error) {
	f.mu.Lock()
	f.images = append(f.images, image)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.res, f.err
}

func scenarioInputs() domain.ConstraintInput {
	return domain.ConstraintInput{
		Semester:     "6th Semester",
		SkillLevel:   "Intermediate",
		InterestArea: "IoT & Embedded Systems",
		Budget:       "2500",
		ProjectType:  "Hardware + AI Integration",
	}
}

func irrigationProject() domain.ProjectRecord {
	rec := domain.DefaultProject()
	rec.Title = "Smart Irrigation Controller"
	rec.HardwareComponents = []domain.HardwareComponent{
		{Name: "ESP8266", Use: "Controller", Cost: 300},
		{Name: "Soil Sensor", Use: "Moisture sensing", Cost: 120},
	}
	return rec
}

const testImage = "data:image/png;base64,iVBORw0KGgo="

func newTestManager(store Store, gen Generator, an Analyzer) *Manager {
	return NewManager(store, gen, an, Options{ProgressInterval: time.Hour})
}

func TestManager_FreshSession(t *testing.T) {
	m := newTestManager(newFakeStore(), &fakeGenerator{}, &fakeAnalyzer{})

	v := m.View(context.Background(), "s1")
	assert.Equal(t, "s1", v.SessionID)
	assert.Equal(t, domain.TabArchitect, v.State.ActiveTab)
	assert.Equal(t, domain.DefaultProject(), v.State.Project)
	assert.Equal(t, domain.DefaultConstraints(), v.State.Inputs)
	assert.Equal(t, 1500.0, v.TotalCost)
	assert.True(t, v.ShowSimulator)
	assert.False(t, v.Generating)
	assert.False(t, v.CanAnalyze())
	assert.Equal(t, 1, m.Live())
}

func TestManager_GenerateSuccessMovesToDetails(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{rec: irrigationProject()}
	m := newTestManager(store, gen, &fakeAnalyzer{})
	ctx := context.Background()

	_, err := m.UpdateInputs(ctx, "s1", scenarioInputs())
	require.NoError(t, err)

	v, err := m.Generate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.TabDetails, v.State.ActiveTab)
	assert.Empty(t, v.State.Error)
	assert.Equal(t, "Smart Irrigation Controller", v.State.Project.Title)
	assert.Equal(t, 420.0, v.TotalCost)
	assert.False(t, v.ShowSimulator)
	assert.False(t, v.Generating)
	assert.Empty(t, v.ProgressMessage)

	saved, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Smart Irrigation Controller", saved.Project.Title)
}

func TestManager_GenerateFailureKeepsArchitect(t *testing.T) {
	gen := &fakeGenerator{err: domain.NewGenerationError(errors.New("invalid character"))}
	m := newTestManager(newFakeStore(), gen, &fakeAnalyzer{})
	ctx := context.Background()

	_, err := m.UpdateInputs(ctx, "s1", scenarioInputs())
	require.NoError(t, err)

	v, err := m.Generate(ctx, "s1")
	var genErr *domain.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, domain.TabArchitect, v.State.ActiveTab)
	assert.Equal(t, domain.GenerationFailedMessage, v.State.Error)
	assert.Equal(t, domain.DefaultProject(), v.State.Project)
	assert.False(t, v.Generating)

	// A later success clears the error.
	gen.err = nil
	gen.rec = domain.DefaultProject()
	v, err = m.Generate(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, v.State.Error)
}

func TestManager_GenerateRejectsConcurrentSubmission(t *testing.T) {
	gen := &fakeGenerator{
		rec:     irrigationProject(),
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	m := NewManager(newFakeStore(), gen, &fakeAnalyzer{}, Options{
		ProgressMessages: []string{"one", "two"},
		ProgressInterval: time.Hour,
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := m.Generate(ctx, "s1")
		done <- err
	}()
	<-gen.started

	msg, busy := m.Progress(ctx, "s1")
	assert.True(t, busy)
	assert.Equal(t, "one", msg)

	_, err := m.Generate(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrGenerationInFlight)

	// Switching tabs mid-flight is allowed.
	v, err := m.SelectTab(ctx, "s1", domain.TabReport)
	require.NoError(t, err)
	assert.True(t, v.Generating)

	close(gen.gate)
	require.NoError(t, <-done)

	msg, busy = m.Progress(ctx, "s1")
	assert.False(t, busy)
	assert.Empty(t, msg)
	assert.Equal(t, domain.TabDetails, m.View(ctx, "s1").State.ActiveTab)
	assert.Equal(t, 1, gen.calls)
}

func TestManager_GenerateWithKeepsInputsWhileBusy(t *testing.T) {
	gen := &fakeGenerator{
		rec:     irrigationProject(),
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	m := newTestManager(newFakeStore(), gen, &fakeAnalyzer{})
	ctx := context.Background()

	first := scenarioInputs()
	done := make(chan error, 1)
	go func() {
		_, err := m.GenerateWith(ctx, "s1", &first)
		done <- err
	}()
	<-gen.started

	second := scenarioInputs()
	second.Budget = "900"
	v, err := m.GenerateWith(ctx, "s1", &second)
	assert.ErrorIs(t, err, domain.ErrGenerationInFlight)
	assert.Equal(t, first, v.State.Inputs)

	close(gen.gate)
	require.NoError(t, <-done)
	assert.Equal(t, first, m.View(ctx, "s1").State.Inputs)
	assert.Equal(t, 1, gen.calls)
}

func TestManager_GenerateWithRejectsInvalidInputs(t *testing.T) {
	gen := &fakeGenerator{}
	m := newTestManager(newFakeStore(), gen, &fakeAnalyzer{})

	bad := scenarioInputs()
	bad.Budget = "lots"
	v, err := m.GenerateWith(context.Background(), "s1", &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, v.Generating)
	assert.Equal(t, domain.DefaultConstraints(), v.State.Inputs)
	assert.Equal(t, 0, gen.calls)
}

func TestManager_GenerateRejectsInvalidInputs(t *testing.T) {
	gen := &fakeGenerator{}
	m := newTestManager(newFakeStore(), gen, &fakeAnalyzer{})

	_, err := m.UpdateInputs(context.Background(), "s1", domain.ConstraintInput{Budget: "-4"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.DefaultConstraints(), m.View(context.Background(), "s1").State.Inputs)
	assert.Equal(t, 0, gen.calls)
}

func TestManager_SelectTab(t *testing.T) {
	m := newTestManager(newFakeStore(), &fakeGenerator{}, &fakeAnalyzer{})
	ctx := context.Background()

	for _, tab := range []domain.Tab{domain.TabReport, domain.TabDetails, domain.TabArchitect} {
		v, err := m.SelectTab(ctx, "s1", tab)
		require.NoError(t, err)
		assert.Equal(t, tab, v.State.ActiveTab)
	}

	_, err := m.SelectTab(ctx, "s1", domain.Tab("settings"))
	assert.ErrorIs(t, err, domain.ErrInvalidTab)
}

func TestManager_HazardScenario(t *testing.T) {
	an := &fakeAnalyzer{res: domain.HazardResult{HazardDetected: true, Type: "fire", Confidence: 92}}
	m := newTestManager(newFakeStore(), &fakeGenerator{}, an)
	ctx := context.Background()

	_, err := m.Analyze(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNoImage)
	assert.Empty(t, an.images)

	v, err := m.SelectImage(ctx, "s1", testImage)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseImageSelected, v.State.Simulator.Phase)
	assert.True(t, v.CanAnalyze())

	v, err = m.Analyze(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseResultReady, v.State.Simulator.Phase)
	require.NotNil(t, v.State.Simulator.Result)
	assert.True(t, v.State.Simulator.Result.HazardDetected)
	assert.Equal(t, []string{testImage}, an.images)

	// A new image discards the previous result.
	v, err = m.SelectImage(ctx, "s1", testImage)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseImageSelected, v.State.Simulator.Phase)
	assert.Nil(t, v.State.Simulator.Result)
}

func TestManager_AnalysisFailureStaysInPanel(t *testing.T) {
	an := &fakeAnalyzer{err: domain.NewAnalysisError(errors.New("boom"))}
	m := newTestManager(newFakeStore(), &fakeGenerator{}, an)
	ctx := context.Background()

	_, err := m.SelectImage(ctx, "s1", testImage)
	require.NoError(t, err)

	v, err := m.Analyze(ctx, "s1")
	var anErr *domain.AnalysisError
	require.ErrorAs(t, err, &anErr)
	assert.Equal(t, domain.PhaseResultReady, v.State.Simulator.Phase)
	assert.Equal(t, domain.AnalysisFailedMessage, v.State.Simulator.Error)
	assert.Nil(t, v.State.Simulator.Result)
	assert.Empty(t, v.State.Error)
	assert.Equal(t, domain.TabArchitect, v.State.ActiveTab)
}

func TestManager_SimulatorHiddenForOtherProjects(t *testing.T) {
	gen := &fakeGenerator{rec: irrigationProject()}
	m := newTestManager(newFakeStore(), gen, &fakeAnalyzer{})
	ctx := context.Background()

	_, err := m.SelectImage(ctx, "s1", testImage)
	require.NoError(t, err)

	v, err := m.Generate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseEmpty, v.State.Simulator.Phase)
	assert.Empty(t, v.State.Simulator.Image)

	_, err = m.SelectImage(ctx, "s1", testImage)
	assert.ErrorIs(t, err, domain.ErrSimulatorUnavailable)
	_, err = m.Analyze(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSimulatorUnavailable)
}

func TestManager_SecondAnalysisBlockedWhileInFlight(t *testing.T) {
	an := &fakeAnalyzer{
		res:     domain.HazardResult{Type: "none", Confidence: 10},
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	m := newTestManager(newFakeStore(), &fakeGenerator{}, an)
	ctx := context.Background()

	_, err := m.SelectImage(ctx, "s1", testImage)
	require.NoError(t, err)

	done := make(chan View, 1)
	go func() {
		v, _ := m.Analyze(ctx, "s1")
		done <- v
	}()
	<-an.started

	v := m.View(ctx, "s1")
	assert.True(t, v.Analyzing)
	assert.Equal(t, domain.PhaseAnalyzing, v.State.Simulator.Phase)
	assert.False(t, v.CanAnalyze())

	_, err = m.Analyze(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrAnalysisInFlight)

	// A new image mid-flight makes the pending result stale.
	v, err = m.SelectImage(ctx, "s1", "data:image/jpeg;base64,/9j/")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseImageSelected, v.State.Simulator.Phase)

	_, err = m.Analyze(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrAnalysisInFlight)

	close(an.gate)
	v = <-done
	assert.Equal(t, domain.PhaseImageSelected, v.State.Simulator.Phase)
	assert.Nil(t, v.State.Simulator.Result)
	assert.False(t, v.Analyzing)
	assert.True(t, v.CanAnalyze())
}

func TestManager_SaveFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("redis down")
	m := newTestManager(store, &fakeGenerator{rec: irrigationProject()}, &fakeAnalyzer{})

	v, err := m.Generate(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.TabDetails, v.State.ActiveTab)
	assert.Equal(t, 1, store.saves)
}

func TestManager_HydratesFromStore(t *testing.T) {
	store := newFakeStore()
	st := domain.NewWorkspaceState(time.Now())
	st.ActiveTab = domain.TabReport
	st.Simulator = domain.SimulatorState{Phase: domain.PhaseAnalyzing, Image: testImage}
	store.states["s1"] = st

	m := newTestManager(store, &fakeGenerator{}, &fakeAnalyzer{})
	v := m.View(context.Background(), "s1")
	assert.Equal(t, domain.TabReport, v.State.ActiveTab)
	assert.Equal(t, domain.PhaseImageSelected, v.State.Simulator.Phase)
	assert.False(t, v.Analyzing)
	assert.True(t, v.CanAnalyze())
}

func TestManager_AdoptsNewerStateFromOtherReplica(t *testing.T) {
	store := newFakeStore()
	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	a := NewManager(store, &fakeGenerator{}, &fakeAnalyzer{}, Options{
		ProgressInterval: time.Hour,
		Now:              func() time.Time { return t0 },
	})
	b := NewManager(store, &fakeGenerator{rec: irrigationProject()}, &fakeAnalyzer{}, Options{
		ProgressInterval: time.Hour,
		Now:              func() time.Time { return t0.Add(time.Minute) },
	})
	ctx := context.Background()

	_, err := a.SelectImage(ctx, "s1", testImage)
	require.NoError(t, err)

	_, err = b.Generate(ctx, "s1")
	require.NoError(t, err)

	v := a.View(ctx, "s1")
	assert.Equal(t, "Smart Irrigation Controller", v.State.Project.Title)
	assert.Equal(t, domain.TabDetails, v.State.ActiveTab)
	assert.Equal(t, domain.PhaseEmpty, v.State.Simulator.Phase)
	assert.False(t, v.ShowSimulator)
}

func TestManager_KeepsLiveCopyWhenStoreIsOlder(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	m := NewManager(store, &fakeGenerator{}, &fakeAnalyzer{}, Options{
		ProgressInterval: time.Hour,
		Now:              func() time.Time { return now },
	})
	ctx := context.Background()

	_, err := m.SelectTab(ctx, "s1", domain.TabReport)
	require.NoError(t, err)

	old := domain.NewWorkspaceState(now.Add(-time.Hour))
	store.mu.Lock()
	store.states["s1"] = old
	store.mu.Unlock()

	assert.Equal(t, domain.TabReport, m.View(ctx, "s1").State.ActiveTab)
}

func TestManager_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	m := NewManager(store, &fakeGenerator{}, &fakeAnalyzer{}, Options{
		IdleTTL: time.Minute,
		Now:     func() time.Time { return now },
	})
	ctx := context.Background()

	m.View(ctx, "old")
	now = now.Add(2 * time.Minute)
	m.View(ctx, "new")

	assert.Equal(t, 1, m.Sweep(ctx))
	assert.Equal(t, 1, m.Live())
	assert.Equal(t, []string{"old"}, store.deletes)
}

func TestRotator_WrapsAround(t *testing.T) {
	r := &Rotator{messages: []string{"a", "b", "c"}}
	seen := []string{r.Current()}
	for i := 0; i < 4; i++ {
		r.advance()
		seen = append(seen, r.Current())
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b"}, seen)
}

func TestRotator_StopsOnBothPaths(t *testing.T) {
	r := StartRotator([]string{"a", "b"}, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	r.Stop()
	r.Stop()

	select {
	case <-r.done:
	default:
		t.Fatal("rotator goroutine still running after Stop")
	}

	single := StartRotator([]string{"only"}, time.Millisecond)
	assert.Equal(t, "only", single.Current())
	single.Stop()

	var nilRot *Rotator
	assert.Empty(t, nilRot.Current())
	nilRot.Stop()
}

package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/studytube/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu       sync.Mutex
	position float64
	duration float64
	states   []State
	seeks    []float64
	loaded   []string
	// slowLoad keeps reporting the previous video's position after Load
	slowLoad bool
}

func (f *fakeSource) CurrentTime() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeSource) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

// State returns the queued states one by one and then keeps the last one
func (f *fakeSource) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.states) == 0 {
		return StateUnstarted
	}
	s := f.states[0]
	if len(f.states) > 1 {
		f.states = f.states[1:]
	}
	return s
}

func (f *fakeSource) SeekTo(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	f.position = seconds
}

func (f *fakeSource) Load(videoID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append(f.loaded, videoID)
	if !f.slowLoad {
		f.position = 0
	}
}

func (f *fakeSource) setPosition(p float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = p
}

type savedCheckpoint struct {
	videoID  string
	position float64
}

type fakeStore struct {
	mu          sync.Mutex
	checkpoints map[string]float64
	getErr      error
	saveErr     error
	completeErr error
	saved       []savedCheckpoint
	completions []string

	// when gate is set the first save signals arrived and waits for gate to close
	gate    chan struct{}
	arrived chan struct{}
	gated   bool
}

func (f *fakeStore) GetCheckpoint(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	pos, ok := f.checkpoints[videoID]
	if !ok {
		return nil, nil
	}
	return &models.PlaybackCheckpoint{OwnerID: ownerID, VideoID: videoID, Position: pos}, nil
}

func (f *fakeStore) SaveCheckpoint(ctx context.Context, ownerID, videoID string, position, duration float64) error {
	f.mu.Lock()
	if f.gate != nil && !f.gated {
		f.gated = true
		f.mu.Unlock()
		close(f.arrived)
		<-f.gate
		f.mu.Lock()
	}
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, savedCheckpoint{videoID: videoID, position: position})
	return nil
}

func (f *fakeStore) MarkCompleted(ctx context.Context, ownerID, videoID string) (*models.CompletionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completions = append(f.completions, videoID)
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return &models.CompletionResult{VideoID: videoID, Completed: true, Changed: true}, nil
}

func (f *fakeStore) savedCheckpoints() []savedCheckpoint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]savedCheckpoint(nil), f.saved...)
}

func (f *fakeStore) completionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.completions)
}

// quietConfig never fires the tickers within a test
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleInterval = time.Hour
	cfg.CheckpointInterval = time.Hour
	cfg.SeekPollInterval = time.Millisecond
	cfg.SettleDelay = time.Millisecond
	return cfg
}

func newTestSession(t *testing.T, source *fakeSource, store *fakeStore, cfg Config, onProgress ProgressFunc) *Session {
	t.Helper()
	s := NewSession("owner-1", "video-a", source, store, cfg, zap.NewNop(), onProgress)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestSession_Ready(t *testing.T) {
	tests := []struct {
		name           string
		checkpoints    map[string]float64
		getErr         error
		expectedResume float64
		expectedSeeks  []float64
	}{
		{
			name:           "resumes from checkpoint",
			checkpoints:    map[string]float64{"video-a": 120},
			expectedResume: 120,
			expectedSeeks:  []float64{120},
		},
		{
			name:           "starts over below threshold",
			checkpoints:    map[string]float64{"video-a": 5},
			expectedResume: 0,
		},
		{
			name:           "no checkpoint",
			expectedResume: 0,
		},
		{
			name:           "checkpoint lookup failure starts over",
			getErr:         errors.New("database error"),
			expectedResume: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{duration: 600, states: []State{StateCued}}
			store := &fakeStore{checkpoints: tt.checkpoints, getErr: tt.getErr}
			s := newTestSession(t, source, store, quietConfig(), nil)

			resumed, err := s.Ready(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.expectedResume, resumed)
			assert.Equal(t, tt.expectedSeeks, source.seeks)
		})
	}
}

func TestSession_ReadyWaitsForSeekableState(t *testing.T) {
	source := &fakeSource{
		duration: 600,
		states:   []State{StateUnstarted, StateUnstarted, StateUnstarted, StateBuffering},
	}
	store := &fakeStore{checkpoints: map[string]float64{"video-a": 120}}
	s := newTestSession(t, source, store, quietConfig(), nil)

	resumed, err := s.Ready(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 120.0, resumed)
	assert.Equal(t, []float64{120}, source.seeks)
}

func TestSession_ReadyGivesUp(t *testing.T) {
	source := &fakeSource{duration: 600}
	store := &fakeStore{checkpoints: map[string]float64{"video-a": 120}}
	cfg := quietConfig()
	cfg.SeekAttempts = 3
	s := newTestSession(t, source, store, cfg, nil)

	_, err := s.Ready(context.Background())

	assert.Error(t, err)
	assert.Empty(t, source.seeks)
}

func TestSession_AutoCompletesOnce(t *testing.T) {
	source := &fakeSource{position: 95, duration: 100}
	store := &fakeStore{}
	cfg := quietConfig()
	cfg.SampleInterval = 2 * time.Millisecond

	var (
		mu      sync.Mutex
		percent float64
	)
	s := newTestSession(t, source, store, cfg, func(videoID string, p float64) {
		mu.Lock()
		percent = p
		mu.Unlock()
	})

	s.HandleState(StatePlaying)

	assert.Eventually(t, func() bool { return store.completionCount() == 1 }, time.Second, 2*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, store.completionCount())

	mu.Lock()
	assert.Equal(t, 95.0, percent)
	mu.Unlock()
}

func TestSession_NoSamplingWhilePaused(t *testing.T) {
	source := &fakeSource{position: 95, duration: 100}
	store := &fakeStore{}
	cfg := quietConfig()
	cfg.SampleInterval = 2 * time.Millisecond
	newTestSession(t, source, store, cfg, nil)

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, store.completionCount())
}

func TestSession_AutoCompleteFailureIsNotRetried(t *testing.T) {
	source := &fakeSource{position: 99, duration: 100}
	store := &fakeStore{completeErr: errors.New("database error")}
	s := newTestSession(t, source, store, quietConfig(), nil)

	s.sample(context.Background(), s.currentGeneration())
	s.sample(context.Background(), s.currentGeneration())

	assert.Equal(t, 1, store.completionCount())
}

func TestSession_CheckpointAdvanceRule(t *testing.T) {
	source := &fakeSource{duration: 600}
	store := &fakeStore{}
	s := newTestSession(t, source, store, quietConfig(), nil)

	steps := []struct {
		position float64
		saved    bool
	}{
		{position: 3, saved: false},
		{position: 12, saved: true},
		{position: 14, saved: false},
		{position: 17, saved: true},
		{position: 2, saved: true},
	}

	expected := 0
	for _, step := range steps {
		source.setPosition(step.position)
		s.HandleState(StatePaused)
		if step.saved {
			expected++
		}
		require.Len(t, store.savedCheckpoints(), expected, "position %v", step.position)
	}
}

func TestSession_CheckpointFailureIsRetriedLater(t *testing.T) {
	source := &fakeSource{position: 30, duration: 600}
	store := &fakeStore{saveErr: errors.New("database error")}
	s := newTestSession(t, source, store, quietConfig(), nil)

	s.HandleState(StatePaused)
	assert.Empty(t, store.savedCheckpoints())

	store.mu.Lock()
	store.saveErr = nil
	store.mu.Unlock()

	s.HandleState(StatePaused)
	assert.Equal(t, []savedCheckpoint{{videoID: "video-a", position: 30}}, store.savedCheckpoints())
}

func TestSession_ResumePositionCountsAsSaved(t *testing.T) {
	source := &fakeSource{duration: 600, states: []State{StatePlaying}}
	store := &fakeStore{checkpoints: map[string]float64{"video-a": 120}}
	s := newTestSession(t, source, store, quietConfig(), nil)

	_, err := s.Ready(context.Background())
	require.NoError(t, err)

	source.setPosition(122)
	s.HandleState(StatePaused)
	assert.Empty(t, store.savedCheckpoints())
}

func TestSession_SwitchVideo(t *testing.T) {
	source := &fakeSource{position: 95, duration: 100, states: []State{StateCued}}
	store := &fakeStore{checkpoints: map[string]float64{"video-b": 40}}
	s := newTestSession(t, source, store, quietConfig(), nil)

	s.sample(context.Background(), s.currentGeneration())
	require.Equal(t, 1, store.completionCount())

	resumed, err := s.SwitchVideo(context.Background(), "video-b")
	require.NoError(t, err)

	assert.Equal(t, 40.0, resumed)
	assert.Equal(t, "video-b", s.VideoID())
	assert.Equal(t, []string{"video-b"}, source.loaded)
	assert.Equal(t, []savedCheckpoint{{videoID: "video-a", position: 95}}, store.savedCheckpoints())

	source.setPosition(92)
	s.sample(context.Background(), s.currentGeneration())
	assert.Equal(t, 2, store.completionCount())
	assert.Equal(t, []string{"video-a", "video-b"}, store.completions)
}

func TestSession_WorkFromBeforeSwitchIsDropped(t *testing.T) {
	source := &fakeSource{position: 300, duration: 310, states: []State{StateCued}, slowLoad: true}
	store := &fakeStore{}
	s := newTestSession(t, source, store, quietConfig(), nil)

	s.HandleState(StatePlaying)
	gen, playing := s.playingGeneration()
	require.True(t, playing)

	_, err := s.SwitchVideo(context.Background(), "video-b")
	require.NoError(t, err)

	s.checkpoint(context.Background(), gen)
	s.sample(context.Background(), gen)

	assert.Equal(t, []savedCheckpoint{{videoID: "video-a", position: 300}}, store.savedCheckpoints())
	assert.Zero(t, store.completionCount())
}

func TestSession_QueuedCheckpointTickDuringSwitch(t *testing.T) {
	source := &fakeSource{position: 300, duration: 600, states: []State{StateCued}, slowLoad: true}
	gate := make(chan struct{})
	store := &fakeStore{gate: gate, arrived: make(chan struct{})}
	cfg := quietConfig()
	cfg.CheckpointInterval = 2 * time.Millisecond
	s := newTestSession(t, source, store, cfg, nil)

	switched := make(chan error, 1)
	go func() {
		_, err := s.SwitchVideo(context.Background(), "video-b")
		switched <- err
	}()

	<-store.arrived
	// ticks now fire for video-a and queue behind the blocked flush
	s.HandleState(StatePlaying)
	time.Sleep(20 * time.Millisecond)
	close(gate)
	require.NoError(t, <-switched)

	time.Sleep(20 * time.Millisecond)
	for _, cp := range store.savedCheckpoints() {
		assert.Equal(t, "video-a", cp.videoID)
	}
	assert.Equal(t, "video-b", s.VideoID())
}

func TestSession_Complete(t *testing.T) {
	source := &fakeSource{position: 10, duration: 100}
	store := &fakeStore{}
	s := newTestSession(t, source, store, quietConfig(), nil)

	result, err := s.Complete(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Completed)

	source.setPosition(95)
	s.sample(context.Background(), s.currentGeneration())
	assert.Equal(t, 1, store.completionCount())
}

func TestSession_Close(t *testing.T) {
	source := &fakeSource{position: 50, duration: 100}
	store := &fakeStore{}
	cfg := quietConfig()
	cfg.SampleInterval = time.Millisecond
	s := NewSession("owner-1", "video-a", source, store, cfg, zap.NewNop(), nil)

	s.Close(context.Background())
	s.Close(context.Background())

	assert.Equal(t, []savedCheckpoint{{videoID: "video-a", position: 50}}, store.savedCheckpoints())

	source.setPosition(99)
	s.HandleState(StatePlaying)
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, store.completionCount())

	_, err := s.Ready(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.SwitchVideo(context.Background(), "video-b")
	assert.ErrorIs(t, err, ErrClosed)
}

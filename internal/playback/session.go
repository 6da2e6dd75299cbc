// Package playback tracks a viewer's progress through a video: periodic sampling,
// resumable checkpoints and automatic completion.
package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/studytube/backend/internal/models"
	"go.uber.org/zap"
)

// State is the player state, numbered like the YouTube IFrame API
type State int

const (
	StateUnstarted State = -1
	StateEnded     State = 0
	StatePlaying   State = 1
	StatePaused    State = 2
	StateBuffering State = 3
	StateCued      State = 5
)

// seekable reports whether the player accepts a seek in this state
func (s State) seekable() bool {
	switch s {
	case StatePlaying, StatePaused, StateBuffering, StateCued:
		return true
	default:
		return false
	}
}

// ErrClosed is returned by operations on a closed session
var ErrClosed = errors.New("playback session closed")

// Source is the player being tracked
type Source interface {
	CurrentTime() float64
	Duration() float64
	State() State
	SeekTo(seconds float64)
	Load(videoID string)
}

// Store persists checkpoints and completions
type Store interface {
	// GetCheckpoint returns nil and no error when the video has no checkpoint
	GetCheckpoint(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error)
	SaveCheckpoint(ctx context.Context, ownerID, videoID string, position, duration float64) error
	MarkCompleted(ctx context.Context, ownerID, videoID string) (*models.CompletionResult, error)
}

// ProgressFunc receives the watched percentage of the current video on every sample
type ProgressFunc func(videoID string, percent float64)

// Config tunes a session
type Config struct {
	SampleInterval     time.Duration
	CheckpointInterval time.Duration
	// MinAdvance is the distance in seconds from the last saved position below which a checkpoint is skipped
	MinAdvance float64
	// CompletionThreshold is the watched percentage that completes a video
	CompletionThreshold float64
	// ResumeThreshold is the checkpoint position in seconds below which playback starts from 0
	ResumeThreshold  float64
	SeekPollInterval time.Duration
	SeekAttempts     int
	SettleDelay      time.Duration
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		SampleInterval:      time.Second,
		CheckpointInterval:  5 * time.Second,
		MinAdvance:          5,
		CompletionThreshold: 90,
		ResumeThreshold:     10,
		SeekPollInterval:    250 * time.Millisecond,
		SeekAttempts:        20,
		SettleDelay:         500 * time.Millisecond,
	}
}

// Session tracks one viewer watching one video at a time
//
// A single goroutine drives the sample and checkpoint tickers; Close stops it and
// writes a final checkpoint.
type Session struct {
	ownerID    string
	source     Source
	store      Store
	cfg        Config
	logger     *zap.Logger
	onProgress ProgressFunc

	mu        sync.Mutex
	videoID   string
	playing   bool
	completed bool
	lastSaved float64
	// generation changes on every SwitchVideo; work started under an older one is dropped
	generation uint64

	// serializes checkpoint writes and video switches
	saveMu sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewSession starts tracking videoID on source
func NewSession(ownerID, videoID string, source Source, store Store, cfg Config, logger *zap.Logger, onProgress ProgressFunc) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ownerID:    ownerID,
		source:     source,
		store:      store,
		cfg:        cfg,
		logger:     logger.With(zap.String("owner_id", ownerID)),
		onProgress: onProgress,
		videoID:    videoID,
		ctx:        ctx,
		cancel:     cancel,
	}

	s.wg.Add(1)
	go s.track()
	return s
}

// VideoID returns the video currently tracked
func (s *Session) VideoID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoID
}

func (s *Session) track() {
	defer s.wg.Done()

	sample := time.NewTicker(s.cfg.SampleInterval)
	defer sample.Stop()
	checkpoint := time.NewTicker(s.cfg.CheckpointInterval)
	defer checkpoint.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-sample.C:
			if gen, ok := s.playingGeneration(); ok {
				s.sample(s.ctx, gen)
			}
		case <-checkpoint.C:
			if gen, ok := s.playingGeneration(); ok {
				s.checkpoint(s.ctx, gen)
			}
		}
	}
}

// playingGeneration returns the current generation and whether the player is playing
func (s *Session) playingGeneration() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation, s.playing
}

func (s *Session) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// HandleState reacts to a player state change
//
// Pausing writes a checkpoint; the end of the video takes a last sample first.
func (s *Session) HandleState(state State) {
	s.mu.Lock()
	s.playing = state == StatePlaying
	gen := s.generation
	s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}

	switch state {
	case StatePaused:
		s.checkpoint(s.ctx, gen)
	case StateEnded:
		s.sample(s.ctx, gen)
		s.checkpoint(s.ctx, gen)
	}
}

// sample reports progress and completes the video once it crosses the threshold
//
// Nothing is reported when the session moved to another video after gen was taken.
func (s *Session) sample(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	videoID := s.videoID
	position, duration := s.source.CurrentTime(), s.source.Duration()
	if duration <= 0 {
		s.mu.Unlock()
		return
	}
	percent := position / duration * 100
	complete := percent >= s.cfg.CompletionThreshold && !s.completed
	if complete {
		s.completed = true
	}
	s.mu.Unlock()

	if s.onProgress != nil {
		s.onProgress(videoID, percent)
	}

	if complete {
		if _, err := s.store.MarkCompleted(ctx, s.ownerID, videoID); err != nil {
			s.logger.Error("failed to auto-complete video", zap.String("video_id", videoID), zap.Error(err))
			return
		}
		s.logger.Debug("video auto-completed", zap.String("video_id", videoID), zap.Float64("percent", percent))
	}
}

// checkpoint saves the position if it moved at least MinAdvance seconds since the last save
func (s *Session) checkpoint(ctx context.Context, gen uint64) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.saveLocked(ctx, gen)
}

// saveLocked writes the checkpoint of generation gen; saveMu must be held
func (s *Session) saveLocked(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	videoID := s.videoID
	position, duration := s.source.CurrentTime(), s.source.Duration()
	skip := math.Abs(position-s.lastSaved) < s.cfg.MinAdvance
	s.mu.Unlock()

	if skip {
		return
	}

	if err := s.store.SaveCheckpoint(ctx, s.ownerID, videoID, position, duration); err != nil {
		s.logger.Warn("failed to save checkpoint", zap.String("video_id", videoID), zap.Error(err))
		return
	}

	s.mu.Lock()
	if s.generation == gen {
		s.lastSaved = position
	}
	s.mu.Unlock()
}

// Ready resumes the current video from its checkpoint once the player has loaded it
//
// Returns the position playback resumed from, 0 when it starts from the beginning.
func (s *Session) Ready(ctx context.Context) (float64, error) {
	if s.ctx.Err() != nil {
		return 0, ErrClosed
	}
	s.mu.Lock()
	videoID, gen := s.videoID, s.generation
	s.mu.Unlock()
	return s.resume(ctx, videoID, gen)
}

func (s *Session) resume(ctx context.Context, videoID string, gen uint64) (float64, error) {
	cp, err := s.store.GetCheckpoint(ctx, s.ownerID, videoID)
	if err != nil {
		s.logger.Warn("failed to load checkpoint", zap.String("video_id", videoID), zap.Error(err))
		return 0, nil
	}
	if cp == nil {
		return 0, nil
	}

	s.mu.Lock()
	current := s.generation == gen
	if current {
		s.lastSaved = cp.Position
	}
	s.mu.Unlock()

	if !current {
		return 0, nil
	}
	if cp.Position <= s.cfg.ResumeThreshold {
		return 0, nil
	}

	if err := s.seekWhenReady(ctx, cp.Position); err != nil {
		return 0, err
	}
	return cp.Position, nil
}

// seekWhenReady polls the source until it can seek, giving up after SeekAttempts polls
func (s *Session) seekWhenReady(ctx context.Context, position float64) error {
	for attempt := 0; attempt < s.cfg.SeekAttempts; attempt++ {
		if s.source.State().seekable() {
			s.source.SeekTo(position)
			return nil
		}
		if err := s.wait(ctx, s.cfg.SeekPollInterval); err != nil {
			return err
		}
	}
	return fmt.Errorf("player not seekable after %d attempts", s.cfg.SeekAttempts)
}

// wait sleeps for d unless ctx or the session ends first
func (s *Session) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrClosed
	}
}

// SwitchVideo moves the session to another video
//
// The outgoing video gets a final checkpoint, then the new one is loaded and
// resumed after SettleDelay. Returns the resume position of the new video.
func (s *Session) SwitchVideo(ctx context.Context, videoID string) (float64, error) {
	if s.ctx.Err() != nil {
		return 0, ErrClosed
	}

	s.saveMu.Lock()
	s.saveLocked(ctx, s.currentGeneration())

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.videoID = videoID
	s.playing = false
	s.completed = false
	s.lastSaved = 0
	s.mu.Unlock()
	s.saveMu.Unlock()

	s.source.Load(videoID)

	if err := s.wait(ctx, s.cfg.SettleDelay); err != nil {
		return 0, err
	}
	return s.resume(ctx, videoID, gen)
}

// Complete marks the current video completed on request of the viewer
func (s *Session) Complete(ctx context.Context) (*models.CompletionResult, error) {
	s.mu.Lock()
	videoID := s.videoID
	s.completed = true
	s.mu.Unlock()

	result, err := s.store.MarkCompleted(ctx, s.ownerID, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete video %s: %w", videoID, err)
	}
	return result, nil
}

// Close stops both tickers and writes a final checkpoint
//
// Safe to call more than once.
func (s *Session) Close(ctx context.Context) {
	s.closeOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
		s.checkpoint(ctx, s.currentGeneration())
	})
}

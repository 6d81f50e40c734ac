package tracker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultInterval        = 10 * time.Second
	defaultPrimaryTimeout  = 10 * time.Second
	defaultFallbackTimeout = 15 * time.Second
)

var (
	ErrAlreadySampling = errors.New("sampling already active")
	ErrNotSampling     = errors.New("sampling not active")
)

// attempt is the two-state acquisition policy: one high-accuracy try and, on
// timeout only, exactly one low-accuracy retry with a longer bound.
type attempt int

const (
	attemptPrimary attempt = iota
	attemptFallback
)

// Submitter delivers one sampled position for the active run.
type Submitter interface {
	Submit(ctx context.Context, runID string, pos Position) error
}

// Sampler acquires a position on a fixed cadence while a run is active.
// Start and Stop form a toggle: each Start/Stop cycle is one run with its own
// run id.
type Sampler struct {
	provider        PositionProvider
	submitter       Submitter
	interval        time.Duration
	primaryTimeout  time.Duration
	fallbackTimeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	runID  string
	wg     sync.WaitGroup
}

func NewSampler(provider PositionProvider, submitter Submitter) *Sampler {
	return &Sampler{
		provider:        provider,
		submitter:       submitter,
		interval:        defaultInterval,
		primaryTimeout:  defaultPrimaryTimeout,
		fallbackTimeout: defaultFallbackTimeout,
	}
}

// Start allocates a fresh run id and begins the sampling schedule. Calling
// it while a run is active is an error, not a restart.
func (s *Sampler) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return "", ErrAlreadySampling
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.runID = uuid.NewString()

	s.wg.Add(1)
	go s.loop(ctx, s.runID)
	return s.runID, nil
}

// Stop cancels the schedule and returns the completed run id so the caller
// can fetch its summary. Acquisitions still in flight resolve against the
// canceled run context and are discarded, never submitted.
func (s *Sampler) Stop() (string, error) {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return "", ErrNotSampling
	}
	runID := s.runID
	s.cancel()
	s.cancel = nil
	s.runID = ""
	s.mu.Unlock()

	s.wg.Wait()
	return runID, nil
}

func (s *Sampler) loop(ctx context.Context, runID string) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Ticks never block on acquisition; a slow request may still be
			// in flight when the next tick fires.
			go s.sample(ctx, runID)
		}
	}
}

func (s *Sampler) sample(ctx context.Context, runID string) {
	pos, err := s.acquire(ctx)
	if err != nil {
		// Per-tick failures skip the sample but never stop the schedule.
		log.Printf("sample skipped for run %s: %v", runID, err)
		return
	}

	// The run may have been stopped while the request was in flight; a late
	// result must not leak into a later run.
	if ctx.Err() != nil {
		return
	}

	if err := s.submitter.Submit(ctx, runID, pos); err != nil {
		log.Printf("submit failed for run %s: %v", runID, err)
	}
}

func (s *Sampler) acquire(ctx context.Context) (Position, error) {
	pos, err := s.current(ctx, attemptPrimary)
	if errors.Is(err, ErrTimeout) {
		return s.current(ctx, attemptFallback)
	}
	return pos, err
}

func (s *Sampler) current(ctx context.Context, a attempt) (Position, error) {
	opts := s.acquireOptions(a)
	reqCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	return s.provider.Current(reqCtx, opts)
}

func (s *Sampler) acquireOptions(a attempt) AcquireOptions {
	if a == attemptPrimary {
		return AcquireOptions{HighAccuracy: true, MaximumAge: 0, Timeout: s.primaryTimeout}
	}
	return AcquireOptions{HighAccuracy: false, MaximumAge: 0, Timeout: s.fallbackTimeout}
}

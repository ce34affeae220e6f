package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/revati108/arch-board/internal/notify"
)

// DefaultAutosaveDelay is the quiet period before an autosave fires.
const DefaultAutosaveDelay = 500 * time.Millisecond

// Step is one stage of an autosave run.
type Step func(ctx context.Context) error

// Autosaver runs Save after edits stop for the configured delay, then
// runs AfterSave. Steps run in order on the timer's goroutine; a failing
// step is reported and not retried.
type Autosaver struct {
	save      Step
	afterSave Step
	notifier  notify.Notifier
	debounced func(func())
	timeout   time.Duration

	mu      sync.Mutex
	stopped bool
	running sync.WaitGroup
}

// AutosaverOption configures an Autosaver.
type AutosaverOption func(*Autosaver)

// WithAfterSave runs step after every successful save, typically syncing
// the active preset.
func WithAfterSave(step Step) AutosaverOption {
	return func(a *Autosaver) { a.afterSave = step }
}

// WithNotifier sets where outcomes are reported.
func WithNotifier(n notify.Notifier) AutosaverOption {
	return func(a *Autosaver) { a.notifier = n }
}

// WithTimeout bounds one run. Zero means no bound.
func WithTimeout(d time.Duration) AutosaverOption {
	return func(a *Autosaver) { a.timeout = d }
}

// NewAutosaver returns an Autosaver that calls save after delay.
func NewAutosaver(save Step, delay time.Duration, opts ...AutosaverOption) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	a := &Autosaver{
		save:      save,
		notifier:  notify.Discard,
		debounced: debounce.New(delay),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SaverStep adapts a Saver to a Step. An empty buffer is not an error.
func SaverStep(s *Saver) Step {
	return func(ctx context.Context) error {
		_, err := s.Save(ctx)
		if errors.Is(err, ErrNothingToSave) {
			return nil
		}
		return err
	}
}

// Trigger restarts the quiet period.
func (a *Autosaver) Trigger() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.debounced(a.run)
}

// Stop cancels a pending run and waits for one in progress.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	if !a.stopped {
		a.stopped = true
		a.debounced(func() {})
	}
	a.mu.Unlock()
	a.running.Wait()
}

func (a *Autosaver) run() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.running.Add(1)
	a.mu.Unlock()
	defer a.running.Done()

	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if err := a.save(ctx); err != nil {
		slog.Error("autosave failed", "error", err)
		notify.Errorf(a.notifier, err, "Autosave failed")
		return
	}
	if a.afterSave != nil {
		if err := a.afterSave(ctx); err != nil {
			slog.Error("autosave follow-up failed", "error", err)
			notify.Errorf(a.notifier, err, "Saved, but preset sync failed")
			return
		}
	}
	a.notifier.Notify(notify.Success, "Auto-saved")
}

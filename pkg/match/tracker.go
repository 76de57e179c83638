package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/metrics"
)

// Tracker keeps one live scoreboard card per channel and refreshes all of them
// periodically with the first live match. Bindings are never expired by the tracker
// itself; once the tracked match ends the cards follow whichever match is listed first.
type Tracker struct {
	fetcher  Fetcher
	editor   domain.CardEditor
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	bindings map[string]domain.MessageRef // channel ID to card
	cancel   context.CancelFunc
	done     chan struct{}
}

// DefaultInterval replaces a non-positive refresh interval.
const DefaultInterval = time.Minute

func NewTracker(fetcher Fetcher, editor domain.CardEditor, interval time.Duration, logger *zap.Logger) *Tracker {
	if interval <= 0 {
		logger.Warn("non-positive live refresh interval, using default",
			zap.Duration("interval", interval), zap.Duration("default", DefaultInterval))
		interval = DefaultInterval
	}
	return &Tracker{
		fetcher:  fetcher,
		editor:   editor,
		interval: interval,
		logger:   logger,
		bindings: make(map[string]domain.MessageRef),
	}
}

// Bind makes ref the live card of its channel, replacing any previous one, and makes
// sure the refresh task is running.
func (t *Tracker) Bind(ref domain.MessageRef) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bindings[ref.ChannelID] = ref
	metrics.LiveBindings.Set(float64(len(t.bindings)))
	if t.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		t.cancel = cancel
		t.done = make(chan struct{})
		go t.run(ctx, t.done)
		t.logger.Info("live tracker started", zap.Duration("interval", t.interval))
	}
}

// Unbind forgets the live card of channelID. The refresh task stops with the last binding.
func (t *Tracker) Unbind(channelID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.bindings[channelID]
	delete(t.bindings, channelID)
	metrics.LiveBindings.Set(float64(len(t.bindings)))
	if len(t.bindings) == 0 && t.cancel != nil {
		t.cancel()
		t.cancel = nil
		t.done = nil
		t.logger.Info("live tracker stopped")
	}
	return ok
}

// Running reports whether the refresh task is active.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Bindings returns a copy of the binding table.
func (t *Tracker) Bindings() map[string]domain.MessageRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	refs := make(map[string]domain.MessageRef, len(t.bindings))
	for k, v := range t.bindings {
		refs[k] = v
	}
	return refs
}

// Close stops the refresh task and waits for it to exit.
func (t *Tracker) Close() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (t *Tracker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Tick(ctx); err != nil {
				t.logger.Warn("live tick failed", zap.Error(err))
			}
		}
	}
}

// Tick refreshes every bound card once. Edit failures are logged per card and do not
// affect the others; only a failed fetch is returned.
func (t *Tracker) Tick(ctx context.Context) error {
	refs := t.Bindings()
	if len(refs) == 0 {
		return nil
	}

	matches, err := t.fetcher.Fetch(ctx, ModeLive)
	if err != nil {
		return fmt.Errorf("fetching live matches: %w", err)
	}
	if len(matches) == 0 {
		t.logger.Info("no live match to show", zap.Int("bindings", len(refs)))
		return nil
	}
	card := Render(matches[0])

	var eg errgroup.Group
	for channelID, ref := range refs {
		eg.Go(func() error {
			err := t.editor.EditCard(ctx, ref, card)
			if err != nil {
				metrics.LiveEdits.WithLabelValues("error").Inc()
				t.logger.Warn("failed to update live card",
					zap.String("channel", channelID),
					zap.String("message", ref.MessageID),
					zap.Error(err),
				)
				return nil
			}
			metrics.LiveEdits.WithLabelValues("ok").Inc()
			return nil
		})
	}
	return eg.Wait()
}

package sound

import (
	"context"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Notifier = (*ChimeNotifier)(nil)
	_ domain.Notifier = (*Silent)(nil)
)

// ChimeOption configures the ChimeNotifier.
type ChimeOption func(*ChimeNotifier)

// WithQueueSize sets how many cues may wait for playback.
func WithQueueSize(n int) ChimeOption {
	return func(c *ChimeNotifier) {
		c.queue = make(chan []byte, n)
	}
}

// WithInner forwards every event to another notifier before it is queued
// for playback, so cues can be printed and heard.
func WithInner(n domain.Notifier) ChimeOption {
	return func(c *ChimeNotifier) {
		c.inner = n
	}
}

// ChimeNotifier plays a tone for each brew cue. Clips are pre-rendered and
// played one at a time on a background worker; Notify never blocks on
// audio.
type ChimeNotifier struct {
	sink  Sink
	inner domain.Notifier
	log   *logger.Logger
	queue chan []byte

	chime []byte
	blip  []byte
}

// NewChimeNotifier creates a notifier that plays through sink. Call Start
// before the first event.
func NewChimeNotifier(sink Sink, log *logger.Logger, opts ...ChimeOption) *ChimeNotifier {
	c := &ChimeNotifier{
		sink:  sink,
		log:   log,
		queue: make(chan []byte, 8),
		chime: StepComplete(),
		blip:  Countdown(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins the playback goroutine. Non-blocking.
func (c *ChimeNotifier) Start(ctx context.Context) {
	go c.playLoop(ctx)
	c.log.Debug("chime notifier started")
}

func (c *ChimeNotifier) playLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.sink.Stop()
			c.log.Debug("chime notifier stopped")
			return
		case pcm := <-c.queue:
			if err := c.sink.Play(pcm); err != nil {
				c.log.Error("playing cue: %v", err)
			}
		}
	}
}

// Notify queues the clip for ev. A full queue drops the cue.
func (c *ChimeNotifier) Notify(ctx context.Context, ev domain.Event) error {
	if c.inner != nil {
		if err := c.inner.Notify(ctx, ev); err != nil {
			return err
		}
	}

	pcm := c.clipFor(ev)
	if pcm == nil {
		return nil
	}
	select {
	case c.queue <- pcm:
		c.log.Debug("chime: queued %s cue", ev.Kind)
	default:
		c.log.Warn("chime: playback queue full, dropping %s cue", ev.Kind)
	}
	return nil
}

func (c *ChimeNotifier) clipFor(ev domain.Event) []byte {
	switch ev.Kind {
	case domain.EventPhaseChanged, domain.EventFinished:
		return c.chime
	case domain.EventCountdown:
		return c.blip
	default:
		return nil
	}
}

// Silent is a notifier that only logs. Used when audio is disabled or no
// output device is available.
type Silent struct {
	inner domain.Notifier
	log   *logger.Logger
}

// NewSilent creates a silent notifier. inner may be nil.
func NewSilent(inner domain.Notifier, log *logger.Logger) *Silent {
	return &Silent{inner: inner, log: log}
}

// Notify logs the event and forwards it to the inner notifier, if any.
func (s *Silent) Notify(ctx context.Context, ev domain.Event) error {
	s.log.Debug("silent cue: %s (to=%d)", ev.Kind, ev.To)
	if s.inner == nil {
		return nil
	}
	return s.inner.Notify(ctx, ev)
}

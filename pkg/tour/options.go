package tour

import (
	"io"
	"log"
	"time"

	"github.com/taigrr/vantage/pkg/viewpoint"
)

type options struct {
	duration time.Duration
	debounce time.Duration
	fps      int
	now      func() time.Time
	logger   *log.Logger
}

// Option configures an Engine or Navigator.
type Option func(*options)

// WithDuration sets how long a viewpoint transition takes.
func WithDuration(d time.Duration) Option {
	return func(o *options) { o.duration = d }
}

// WithDebounce sets the scroll quiet window.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithFPS sets the frame rate the orbit springs are tuned for.
func WithFPS(fps int) Option {
	return func(o *options) {
		if fps > 0 {
			o.fps = fps
		}
	}
}

// WithClock sets the clock used for requests made outside a frame.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the diagnostics logger. Logging is discarded by default.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{
		duration: viewpoint.DefaultTransition,
		debounce: viewpoint.DefaultDebounce,
		fps:      60,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard, "", 0)
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

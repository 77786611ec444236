package corpus

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/poiesic/scour"
)

// defaultProgressEvery is how many processed tasks pass between progress
// reports when the caller does not override it.
const defaultProgressEvery = 100

type config struct {
	workers       int
	logger        *slog.Logger
	progressTo    io.Writer
	progressEvery int
	sessionOpts   []scour.Option
}

func defaultConfig() *config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return &config{
		workers:       workers,
		logger:        slog.Default(),
		progressTo:    io.Discard,
		progressEvery: defaultProgressEvery,
	}
}

// Option configures an Importer or a Builder.
type Option func(*config) error

// WithWorkers sets how many tasks are processed concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			n = 1
		}
		c.workers = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithProgress reports progress to w every n processed tasks.
// Default is no progress output.
func WithProgress(w io.Writer, every int) Option {
	return func(c *config) error {
		if w == nil {
			w = io.Discard
		}
		if every < 1 {
			every = 1
		}
		c.progressTo = w
		c.progressEvery = every
		return nil
	}
}

// WithSessionOptions passes extra options to every session a Builder creates.
func WithSessionOptions(opts ...scour.Option) Option {
	return func(c *config) error {
		c.sessionOpts = opts
		return nil
	}
}

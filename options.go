package serdepipe

import "go.uber.org/zap"

// Backend selects how a pipe executes the codec.
type Backend int

const (
	// Bounded runs the codec on a suspendable execution context and
	// produces or consumes bytes lazily, with peak auxiliary memory
	// independent of the value's size. This is the default.
	Bounded Backend = iota

	// Buffered eagerly runs the full encode or decode against an in-memory
	// buffer. Peak memory is proportional to the encoded size; the external
	// contract is identical to Bounded.
	Buffered
)

func (b Backend) String() string {
	switch b {
	case Bounded:
		return "bounded"
	case Buffered:
		return "buffered"
	default:
		return "invalid"
	}
}

// Option configures a Serializer or Deserializer at construction.
type Option func(*config)

type config struct {
	backend Backend
	log     *zap.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		backend: Bounded,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithBackend selects the execution strategy for the pipe.
func WithBackend(b Backend) Option {
	return func(cfg *config) { cfg.backend = b }
}

// WithLogger attaches a logger to the pipe. State transitions and terminal
// errors are logged at Debug level.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *config) {
		if log != nil {
			cfg.log = log
		}
	}
}

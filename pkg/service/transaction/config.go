package transaction

import "time"

// Config tunes the engine's store access.
type Config struct {
	// StoreTimeout bounds each attempt at the unit of work.
	StoreTimeout time.Duration
	// LockTimeout bounds the wait for account locks.
	LockTimeout time.Duration
	// MaxRetries is the number of extra attempts after a transient store failure.
	MaxRetries uint64
	// RetryInterval is the first backoff delay; later delays grow exponentially.
	RetryInterval time.Duration
	// RejectSelfTransfer refuses transfers whose origin equals the destination.
	RejectSelfTransfer bool
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		StoreTimeout:  5 * time.Second,
		LockTimeout:   10 * time.Second,
		MaxRetries:    3,
		RetryInterval: 50 * time.Millisecond,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig overrides the engine configuration. Zero durations keep their defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		def := DefaultConfig()
		if cfg.StoreTimeout <= 0 {
			cfg.StoreTimeout = def.StoreTimeout
		}
		if cfg.LockTimeout <= 0 {
			cfg.LockTimeout = def.LockTimeout
		}
		if cfg.RetryInterval <= 0 {
			cfg.RetryInterval = def.RetryInterval
		}
		e.cfg = cfg
	}
}

// WithClock sets the source of transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

package config

import (
	"time"
)

type DB struct {
	Url    string `envconfig:"URL"`
	Driver string `envconfig:"DRIVER" default:"postgres"`
}

type Redis struct {
	URL         string        `envconfig:"URL"`
	KeyPrefix   string        `envconfig:"KEY_PREFIX" default:"ledger:lock:"`
	PoolSize    int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	LockTTL     time.Duration `envconfig:"LOCK_TTL" default:"30s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Engine tunes the transaction engine.
type Engine struct {
	StoreTimeout       time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	LockTimeout        time.Duration `envconfig:"LOCK_TIMEOUT" default:"10s"`
	MaxRetries         uint64        `envconfig:"MAX_RETRIES" default:"3"`
	RetryInterval      time.Duration `envconfig:"RETRY_INTERVAL" default:"50ms"`
	RejectSelfTransfer bool          `envconfig:"REJECT_SELF_TRANSFER" default:"false"`
}

// Log configures the process logger. HighlightKeys are the attribute keys the
// text formatter colours, so ledger identifiers stand out in the console.
type Log struct {
	Level         string   `envconfig:"LEVEL" default:"info"`
	Format        string   `envconfig:"FORMAT" default:"json"`
	TimeFormat    string   `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix        string   `envconfig:"PREFIX" default:"[ledger]"`
	HighlightKeys []string `envconfig:"HIGHLIGHT_KEYS" default:"transactionID,accountNumber,kind"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Redis     *Redis     `envconfig:"REDIS"`
	Engine    *Engine    `envconfig:"ENGINE"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}

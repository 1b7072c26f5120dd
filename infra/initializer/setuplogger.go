package initializer

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/demobank/ledger/pkg/config"
)

var (
	infoColor  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnColor  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
	keyColor   = lipgloss.AdaptiveColor{Light: "#0077B6", Dark: "#48CAE4"}
)

var levelMarks = map[log.Level]struct {
	mark  string
	color lipgloss.AdaptiveColor
}{
	log.ErrorLevel: {"❌", errorColor},
	log.WarnLevel:  {"⚠️", warnColor},
	log.InfoLevel:  {"ℹ️", infoColor},
	log.DebugLevel: {"🐛", debugColor},
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

func defaultLogConfig() *config.Log {
	return &config.Log{
		Level:         "info",
		Format:        "text",
		TimeFormat:    "2006-01-02 15:04:05",
		HighlightKeys: []string{"transactionID", "accountNumber", "kind"},
	}
}

// logStyles marks each level with an icon and colours the configured ledger keys.
func logStyles(cfg *config.Log) *log.Styles {
	styles := log.DefaultStyles()
	for level, m := range levelMarks {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(m.mark).
			Bold(true).
			Padding(0, 1).
			Foreground(m.color)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	for _, key := range cfg.HighlightKeys {
		if key == "" {
			continue
		}
		styles.Keys[key] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

func logLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// setupLogger builds the process logger and installs it as the slog default.
func setupLogger(cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = defaultLogConfig()
	}
	formatter, ok := formatters[cfg.Format]
	if !ok {
		formatter = log.TextFormatter
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           logLevel(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(logStyles(cfg))

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}

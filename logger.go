package figref

import (
	"github.com/goliatone/go-figref/internal/logging/gologger"
	"github.com/goliatone/go-figref/pkg/interfaces"
)

// LoggerConfig configures the bundled go-logger provider.
type LoggerConfig struct {
	// Level is the minimum level emitted (trace, debug, info, warn, error,
	// fatal); empty keeps the go-logger default.
	Level string
	// Format selects the output encoder: json (default), console, or pretty.
	Format string
	// AddSource annotates entries with the caller's file and line.
	AddSource bool
	// Focus restricts output to the named child loggers.
	Focus []string
}

// NewLoggerProvider constructs a logger provider backed by
// github.com/goliatone/go-logger. Pass the result to WithLoggerProvider, or
// hand child loggers from GetLogger to WithLogger directly.
func NewLoggerProvider(cfg LoggerConfig) (interfaces.LoggerProvider, error) {
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
}

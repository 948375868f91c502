package core

import "log/slog"

// Config holds the settings a stand-in is created with.
type Config struct {
	Reporter       TestReporter
	Defaults       Defaults
	Logger         *slog.Logger
	Name           string
	WithoutHistory bool
}

// Option configures a stand-in at creation.
type Option func(*Config)

// TestReporter is the subset of testing.TB that stand-ins report failures through.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// WithDefaults replaces the provider of unstubbed results.
func WithDefaults(d Defaults) Option {
	return func(c *Config) {
		c.Defaults = d
	}
}

// WithLogger traces every routed call at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithName sets the name used for the stand-in in failure messages.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithReporter sets where usage errors and verification failures are reported.
// Without a reporter they panic.
func WithReporter(t TestReporter) Option {
	return func(c *Config) {
		c.Reporter = t
	}
}

// WithoutHistory keeps only the latest call of each method. Stubbing still works;
// verification sees at most one call per method.
func WithoutHistory() Option {
	return func(c *Config) {
		c.WithoutHistory = true
	}
}

func newConfig(opts []Option) Config {
	var cfg Config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

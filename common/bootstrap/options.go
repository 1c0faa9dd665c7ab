package bootstrap

import (
	"github.com/droidbay/catalog/common/config"
	"github.com/droidbay/catalog/common/docstore"
	"github.com/droidbay/catalog/common/logger"
)

// Option configures Setup
type Option func(*options)

type options struct {
	customConfig  *config.Config
	customLogger  *logger.Logger
	customStore   docstore.Store
	skipStore     bool
	skipTelemetry bool
}

func defaultOptions() *options {
	return &options{}
}

// WithConfig supplies a pre-built config instead of loading from env
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.customConfig = cfg
	}
}

// WithLogger supplies a pre-built logger
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.customLogger = log
	}
}

// WithStore supplies a pre-built document store (used by tests)
func WithStore(store docstore.Store) Option {
	return func(o *options) {
		o.customStore = store
	}
}

// SkipStore skips document store initialization
func SkipStore() Option {
	return func(o *options) {
		o.skipStore = true
	}
}

// SkipTelemetry skips telemetry initialization
func SkipTelemetry() Option {
	return func(o *options) {
		o.skipTelemetry = true
	}
}

package model

import (
	"github.com/charmbracelet/log"

	"github.com/halfmoonlabs/substrix/internal/logger"
	"github.com/halfmoonlabs/substrix/pkg/config"
)

// BuildOption customizes Build. The teacher's completion package
// exposes this choice as a pair of constructors (NewCompleter /
// NewLazyCompleter); this module needs three independent knobs
// (logger, config, and — indirectly through config — cache sizing), so
// functional options generalize better than a growing set of
// constructor variants.
type BuildOption func(*buildOptions)

type buildOptions struct {
	logger *log.Logger
	cfg    *config.Config
}

// WithLogger overrides the logger Build and the resulting Model log
// through.
func WithLogger(l *log.Logger) BuildOption {
	return func(o *buildOptions) { o.logger = l }
}

// WithConfig overrides the ambient configuration (cache sizing, log
// level hint) Build uses.
func WithConfig(c *config.Config) BuildOption {
	return func(o *buildOptions) { o.cfg = c }
}

func resolveOptions(opts []BuildOption) *buildOptions {
	o := &buildOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.cfg == nil {
		o.cfg = config.DefaultConfig()
	}
	if o.logger == nil {
		o.logger = logger.Default("model")
		o.logger.SetLevel(logger.ParseLevel(o.cfg.Log.Level))
	}
	return o
}

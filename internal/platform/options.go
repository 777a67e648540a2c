package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/roster/pkg/core"
)

// options holds the internal configuration for a roster session.
type options struct {
	logger    *slog.Logger
	idPrefix  string
	presenter core.Presenter
}

// Option defines a functional option for configuring a roster session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		idPrefix: core.DefaultIDPrefix,
	}
}

// WithLogger sets the logger for the controller.
// A nil logger keeps the default discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIDPrefix sets the prefix of generated record ids.
// Defaults to "person-id-".
func WithIDPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.idPrefix = prefix
		}
	}
}

// WithPresenter replaces the default headless table with a custom presenter.
func WithPresenter(p core.Presenter) Option {
	return func(o *options) {
		o.presenter = p
	}
}

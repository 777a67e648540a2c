package roster

import (
	"log/slog"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/script"
)

// --- Types ---

// Session is a public alias for a controller bound to its headless table.
type Session = platform.Session

// Config is a public alias for the roster.yaml configuration.
type Config = platform.Config

// --- Configuration ---

// Output formats accepted in roster.yaml and by the CLI.
const (
	OutputTable = platform.OutputTable
	OutputYAML  = platform.OutputYAML
	OutputJSON  = platform.OutputJSON
)

// Option defines a functional option for configuring a session.
type Option = platform.Option

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithIDPrefix sets the prefix of generated record ids.
func WithIDPrefix(prefix string) Option {
	return platform.WithIDPrefix(prefix)
}

// WithPresenter replaces the default headless table.
func WithPresenter(p core.Presenter) Option {
	return platform.WithPresenter(p)
}

// --- Factory ---

// New creates a controller driving a fresh headless table.
func New(opts ...Option) *core.Controller {
	return platform.New(opts...)
}

// NewSession creates a controller together with the table it drives.
func NewSession(opts ...Option) *Session {
	return platform.NewSession(opts...)
}

// NewRunner creates a script runner whose sessions use opts.
func NewRunner(logger *slog.Logger, opts ...Option) *script.Runner {
	return script.NewRunner(logger, opts...)
}

// --- Workspace ---

// FindRoot recursively looks upwards for a workspace root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// LoadConfig reads roster.yaml from root, falling back to defaults.
func LoadConfig(root string) (Config, error) {
	return platform.LoadConfig(root)
}

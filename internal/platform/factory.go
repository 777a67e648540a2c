package platform

import (
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/view"
)

// Session is a controller together with the table it drives.
// Table is nil when a custom presenter was injected.
type Session struct {
	Controller *core.Controller
	Table      *view.Table
}

// New creates a controller wired to a fresh store.
//
//	ctrl := roster.New(roster.WithIDPrefix("emp-"))
func New(opts ...Option) *core.Controller {
	return NewSession(opts...).Controller
}

// NewSession creates a controller and, unless a presenter was injected, the
// headless table bound to it.
func NewSession(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Session{}
	presenter := o.presenter
	if presenter == nil {
		s.Table = view.NewTable()
		presenter = s.Table
	}
	s.Controller = core.NewController(core.NewStore(o.idPrefix), presenter, o.logger)
	return s
}

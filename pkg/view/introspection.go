package view

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/roster/pkg/core"
)

// TableState exposes internal state for observability.
type TableState struct {
	Rows        int     `json:"rows"`
	DirtyRows   int     `json:"dirty_rows"`
	Active      core.ID `json:"active,omitempty"`
	FormVisible bool    `json:"form_visible"`
}

// State implements introspection.Introspectable.
func (t *Table) State() any {
	state := TableState{
		Rows:        len(t.rows),
		FormVisible: t.form.Visible(),
	}
	for _, r := range t.rows {
		if r.dirty {
			state.DirtyRows++
		}
	}
	if t.active != nil {
		state.Active = t.active.id
	}
	return state
}

// ComponentType implements introspection.Component.
func (t *Table) ComponentType() string {
	return "table"
}

var _ introspection.Introspectable = (*Table)(nil)
var _ introspection.Component = (*Table)(nil)
var _ core.Presenter = (*Table)(nil)

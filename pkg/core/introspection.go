package core

import (
	"github.com/aretw0/introspection"
)

// ControllerState exposes internal state for observability.
type ControllerState struct {
	Records   int    `json:"records" yaml:"records"`
	NextID    int    `json:"next_id" yaml:"next_id"`
	Selected  string `json:"selected,omitempty" yaml:"selected,omitempty"`
	Dirty     []ID   `json:"dirty,omitempty" yaml:"dirty,omitempty"`
	Presenter string `json:"presenter" yaml:"presenter"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	state := ControllerState{
		Records:   c.store.Len(),
		NextID:    c.store.NextID(),
		Presenter: "none",
	}
	if rec, ok := c.Selected(); ok {
		state.Selected = string(rec.ID())
	}
	for _, rec := range c.store.records {
		if rec.IsDirty() {
			state.Dirty = append(state.Dirty, rec.ID())
		}
	}
	// Try to get component type if presenter implements introspection.Component
	if comp, ok := c.presenter.(introspection.Component); ok {
		state.Presenter = comp.ComponentType()
	}
	return state
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "controller"
}

var _ introspection.Introspectable = (*Controller)(nil)
var _ introspection.Component = (*Controller)(nil)

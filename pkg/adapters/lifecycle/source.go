// Package lifecycle bridges script watcher events into the lifecycle event stream.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/roster/pkg/adapters/fs"
)

// ScriptSource forwards the watcher events that call for a re-run. A removed
// script has nothing left to replay, so removals are dropped here.
type ScriptSource struct {
	in  <-chan fs.Event
	out chan lifecycle.Event
}

// NewSource creates a source reading from in. fs.Event implements
// lifecycle.Event through its String method.
func NewSource(in <-chan fs.Event) *ScriptSource {
	return &ScriptSource{in: in, out: make(chan lifecycle.Event)}
}

// Events is closed once in is closed or the start context is done.
func (s *ScriptSource) Events() <-chan lifecycle.Event { return s.out }

// Start launches the forwarding goroutine.
func (s *ScriptSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *ScriptSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e fs.Event
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.in:
			if !ok {
				return nil
			}
			e = ev
		}
		if e.Op == fs.OpRemove {
			continue
		}
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}

var _ lifecycle.Source = (*ScriptSource)(nil)

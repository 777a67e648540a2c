package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, patterns ...string) (*Watcher, <-chan Event) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	events := make(chan Event, 16)
	w := NewWatcher(Config{Patterns: patterns, Debounce: 50 * time.Millisecond}, events)
	require.NoError(t, w.Start(ctx))

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		_ = w.Stop(stopCtx)
	})
	return w, events
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for watcher event")
	}
	return Event{}
}

func TestWatcher_EmitsForMatchingFile(t *testing.T) {
	dir := t.TempDir()
	_, events := startWatcher(t, filepath.Join(dir, "**", "*.roster.yaml"))

	path := filepath.Join(dir, "a.roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: []\n"), 0644))

	e := waitEvent(t, events)
	assert.Equal(t, path, e.Path)
	assert.Contains(t, []Op{OpCreate, OpWrite}, e.Op)
	assert.NotZero(t, e.Timestamp)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	_, events := startWatcher(t, filepath.Join(dir, "*.roster.yaml"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case e := <-events:
		t.Fatalf("unexpected event %v", e)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burst.roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: []\n"), 0644))
	_, events := startWatcher(t, filepath.Join(dir, "*.roster.yaml"))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("steps: []\n"), 0644))
	}

	waitEvent(t, events)
	select {
	case e := <-events:
		t.Fatalf("expected a single debounced event, got another: %v", e)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_RequiresPatterns(t *testing.T) {
	w := NewWatcher(Config{}, make(chan Event))
	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_Matches(t *testing.T) {
	w := NewWatcher(Config{Patterns: []string{"scenarios/**/*.yaml"}}, nil)

	assert.True(t, w.Matches("scenarios/a.yaml"))
	assert.True(t, w.Matches("scenarios/deep/b.yaml"))
	assert.False(t, w.Matches("scenarios/a.json"))
	assert.False(t, w.Matches("other/a.yaml"))
}

func TestEvent_String(t *testing.T) {
	e := Event{Op: OpWrite, Path: "a.yaml"}
	assert.Equal(t, "WRITE a.yaml", e.String())
}

func TestDebouncer_StopRejects(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	fired := make(chan Event, 2)

	d.add(Event{Path: "a"}, func(e Event) { fired <- e })
	d.stopAndWait(time.Second)
	d.add(Event{Path: "b"}, func(e Event) { fired <- e })

	require.Len(t, fired, 1)
	assert.Equal(t, "a", (<-fired).Path)
}

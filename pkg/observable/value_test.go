package observable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/roster/pkg/observable"
)

type call[T any] struct {
	a, b T
}

// recorder subscribes to v and drops the initial (current, current) call.
func recorder[T comparable](t *testing.T, v *observable.Value[T]) *[]call[T] {
	t.Helper()
	calls := &[]call[T]{}
	v.Subscribe(func(a, b T) {
		*calls = append(*calls, call[T]{a, b})
	})
	require.Len(t, *calls, 1)
	*calls = (*calls)[:0]
	return calls
}

func TestSubscribe_ImmediateCallback(t *testing.T) {
	v := observable.New("hello")

	var got []call[string]
	v.Subscribe(func(a, b string) {
		got = append(got, call[string]{a, b})
	})

	assert.Equal(t, []call[string]{{"hello", "hello"}}, got)
	assert.Equal(t, 1, v.Listeners())
}

func TestSet_NotifiesNewThenOld(t *testing.T) {
	v := observable.New(1)
	calls := recorder(t, v)

	v.Set(2)

	assert.Equal(t, []call[int]{{2, 1}}, *calls)
	assert.Equal(t, 2, v.Get())
	assert.Equal(t, 2, v.Committed())
	assert.False(t, v.IsDirty())
}

func TestSet_SameValueIsSilent(t *testing.T) {
	v := observable.New(7)
	calls := recorder(t, v)

	v.Set(7)

	assert.Empty(t, *calls)
	assert.False(t, v.IsDirty())
}

func TestSet_SameValueWhileDirtyClearsDirty(t *testing.T) {
	v := observable.New("a")
	v.SetProvisional("b")
	require.True(t, v.IsDirty())
	calls := recorder(t, v)

	v.Set("b")

	assert.Empty(t, *calls, "equal value must not notify")
	assert.False(t, v.IsDirty())
	// The draft became the rollback target.
	assert.Equal(t, "b", v.Committed())
	v.Rollback()
	assert.Equal(t, "b", v.Get())
}

func TestSetProvisional_NotifiesCommittedThenDraft(t *testing.T) {
	v := observable.New(0)
	calls := recorder(t, v)

	v.SetProvisional(5)
	v.SetProvisional(6)

	assert.Equal(t, []call[int]{{0, 5}, {0, 6}}, *calls)
	assert.True(t, v.IsDirty())
	assert.Equal(t, 6, v.Get())
}

func TestSetProvisional_SnapshotTakenOnce(t *testing.T) {
	v := observable.New("x")
	for _, draft := range []string{"y", "z", "w", "x", "q"} {
		v.SetProvisional(draft)
		assert.Equal(t, "x", v.Committed(), "committed must stay at the first snapshot")
	}
}

func TestRollback_Scenario(t *testing.T) {
	v := observable.New(0)
	calls := recorder(t, v)

	v.SetProvisional(5)
	v.Rollback()

	assert.Equal(t, []call[int]{{0, 5}, {0, 0}}, *calls)
	assert.Equal(t, 0, v.Get())
	assert.False(t, v.IsDirty())
}

func TestRollback_Idempotent(t *testing.T) {
	v := observable.New(true)
	v.SetProvisional(false)
	calls := recorder(t, v)

	v.Rollback()
	v.Rollback()

	assert.Len(t, *calls, 1)
	assert.True(t, v.Get())
}

func TestRollback_CleanIsNoop(t *testing.T) {
	v := observable.New(3)
	calls := recorder(t, v)

	v.Rollback()

	assert.Empty(t, *calls)
	assert.Equal(t, 3, v.Get())
}

func TestSetAfterProvisional_RollbackIsNoop(t *testing.T) {
	v := observable.New("a")
	v.SetProvisional("b")
	v.Set("b")

	calls := recorder(t, v)
	v.Rollback()

	assert.Empty(t, *calls)
	assert.Equal(t, "b", v.Get())
}

func TestSetWhileDirty_CommitsNewValue(t *testing.T) {
	v := observable.New(10)
	v.SetProvisional(11)
	calls := recorder(t, v)

	v.Set(12)

	assert.Equal(t, []call[int]{{12, 11}}, *calls)
	assert.Equal(t, 12, v.Committed())
	assert.False(t, v.IsDirty())

	v.Rollback()
	assert.Equal(t, 12, v.Get())
}

func TestRollback_ListenerSeesDirtyDuringDelivery(t *testing.T) {
	v := observable.New(1)
	v.SetProvisional(2)

	var dirtyDuring bool
	v.Subscribe(func(a, b int) {
		dirtyDuring = v.IsDirty()
	})
	v.Rollback()

	assert.True(t, dirtyDuring)
	assert.False(t, v.IsDirty())
}

func TestNotify_ReentrantListener(t *testing.T) {
	v := observable.New(0)

	var seen []int
	v.Subscribe(func(a, b int) {
		seen = append(seen, v.Get())
		if v.Get() == 1 {
			v.Set(2)
		}
	})
	v.Set(1)

	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 2, v.Get())
}

func TestNotify_SubscribeDuringDelivery(t *testing.T) {
	v := observable.New(0)

	late := 0
	v.Subscribe(func(a, b int) {
		if b == 0 && a == 1 {
			v.Subscribe(func(int, int) { late++ })
		}
	})
	v.Set(1)

	// Only the immediate subscribe callback; the late listener missed Set(1).
	assert.Equal(t, 1, late)
	assert.Equal(t, 2, v.Listeners())
}

func TestState(t *testing.T) {
	v := observable.New("")
	v.Subscribe(func(string, string) {})
	v.SetProvisional("draft")

	state, ok := v.State().(observable.ValueState)
	require.True(t, ok)
	assert.True(t, state.Dirty)
	assert.Equal(t, 1, state.Listeners)
	assert.Equal(t, "observable", v.ComponentType())
}

package hooks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Order(t *testing.T) {
	r := NewRegistry()
	var order []string
	record := func(name string) Action {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	require.NoError(t, r.AddAction("wp_loaded", "second", record("second")))
	require.NoError(t, r.AddActionPriority("wp_loaded", "first", 1, record("first")))
	require.NoError(t, r.AddAction("wp_loaded", "third", record("third")))
	require.NoError(t, r.AddActionPriority("wp_loaded", "last", 99, record("last")))

	require.NoError(t, r.DoAction(context.Background(), "wp_loaded"))
	assert.Equal(t, []string{"first", "second", "third", "last"}, order)
}

func TestRegistry_Validation(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context) error { return nil }

	assert.ErrorIs(t, r.AddAction("  ", "x", noop), ErrHookRequired)
	assert.Error(t, r.AddAction("wp_loaded", "x", nil))

	require.NoError(t, r.AddAction("wp_loaded", "x", noop))
	assert.Error(t, r.AddAction("wp_loaded", "x", noop), "duplicate names are rejected")
	assert.NoError(t, r.AddAction("init", "x", noop), "names are scoped per hook")
}

func TestRegistry_ErrorsDoNotStopOthers(t *testing.T) {
	r := NewRegistry()
	ran := false
	require.NoError(t, r.AddActionPriority("wp_loaded", "fails", 1, func(context.Context) error {
		return errors.New("boom")
	}))
	require.NoError(t, r.AddAction("wp_loaded", "runs", func(context.Context) error {
		ran = true
		return nil
	}))

	err := r.DoAction(context.Background(), "wp_loaded")
	assert.ErrorContains(t, err, "wp_loaded/fails: boom")
	assert.True(t, ran)
}

func TestRegistry_UnknownHook(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.HasAction("nothing"))
	assert.NoError(t, r.DoAction(context.Background(), "nothing"))
}

func TestRegistry_RemoveAction(t *testing.T) {
	r := NewRegistry()
	calls := 0
	require.NoError(t, r.AddAction("wp_loaded", "count", func(context.Context) error {
		calls++
		return nil
	}))
	assert.True(t, r.HasAction("wp_loaded"))
	assert.True(t, r.RemoveAction("wp_loaded", "count"))
	assert.False(t, r.RemoveAction("wp_loaded", "count"))
	assert.False(t, r.HasAction("wp_loaded"))

	require.NoError(t, r.DoAction(context.Background(), "wp_loaded"))
	assert.Equal(t, 0, calls)
}

func TestRegistry_CanceledContext(t *testing.T) {
	r := NewRegistry()
	ran := false
	require.NoError(t, r.AddAction("wp_loaded", "never", func(context.Context) error {
		ran = true
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.DoAction(ctx, "wp_loaded")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var calls atomic.Int64
	require.NoError(t, r.AddAction("wp_loaded", "count", func(context.Context) error {
		calls.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.DoAction(context.Background(), "wp_loaded")
		}()
		go func(i int) {
			defer wg.Done()
			_ = r.AddAction("other", string(rune('a'+i)), func(context.Context) error { return nil })
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int64(20), calls.Load())
}

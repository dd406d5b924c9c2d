package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"pipeline.workers": 2}, map[string]any{"pipeline.workers": 8})

	assert.Equal(t, 8, store.GetInt("pipeline.workers"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("pipeline.intake_dir", "inbox"))
	val, ok := store.Get("pipeline.intake_dir")
	assert.True(t, ok)
	assert.Equal(t, "inbox", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":      "value",
		"dur":      5 * time.Second,
		"int":      3,
		"int64":    int64(4),
		"float":    5.0,
		"bool":     true,
		"slice":    []string{"a", "b"},
		"anySlice": []any{"c", 1, "d"},
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "value"},
		{"duration as string", store.GetString("dur"), "5s"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 3},
		{"int64", store.GetInt("int64"), 4},
		{"float64", store.GetInt("float"), 5},
		{"int wrong type", store.GetInt("str"), 0},
		{"bool", store.GetBool("bool"), true},
		{"bool missing", store.GetBool("missing"), false},
		{"slice", store.GetStringSlice("slice"), []string{"a", "b"}},
		{"any slice", store.GetStringSlice("anySlice"), []string{"c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveLoadNoOp(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", "v"))

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_SnapshotIsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"k": "v"})

	snap := store.Snapshot()
	snap["k"] = "changed"

	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("counter", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}

func TestConfigStore_KeysSorted(t *testing.T) {
	store := NewConfigStore(map[string]any{"provider.retries": 1, "pipeline.workers": 2})

	assert.Equal(t, []string{"pipeline.workers", "provider.retries"}, store.Keys())
}

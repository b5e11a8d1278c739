package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection(t *testing.T) {
	ctx := context.Background()
	source := []string{"a", "b"}
	loads := 0
	c := NewCollection(func(context.Context) ([]string, error) {
		loads++
		return append([]string(nil), source...), nil
	})

	items, v, err := c.Versioned(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.Equal(t, uint64(1), v)

	items[0] = "mutated"
	source = append(source, "c")

	again, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again, "cached and isolated from callers")
	assert.Equal(t, 1, loads)

	c.Invalidate()
	items, v, err = c.Versioned(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.Equal(t, uint64(2), v)
	assert.Equal(t, 2, loads)
}

func TestCollectionLoadError(t *testing.T) {
	ctx := context.Background()
	fail := true
	c := NewCollection(func(context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("disk gone")
		}
		return []int{1}, nil
	})

	_, err := c.Snapshot(ctx)
	require.Error(t, err)

	fail = false
	items, v, err := c.Versioned(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, items)
	assert.Equal(t, uint64(1), v)
}

func TestCollectionIsSnapshotter(t *testing.T) {
	var _ Snapshotter[int] = NewCollection(func(context.Context) ([]int, error) { return nil, nil })
}

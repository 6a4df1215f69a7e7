package contacts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contactsim/pkg/simulator"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

func TestIteratorStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	fetches := 0
	it := newIterator(context.Background(), func(context.Context) ([]int, bool, error) {
		fetches++
		if fetches == 2 {
			return nil, true, boom
		}
		return []int{fetches}, true, nil
	})

	require.True(t, it.Next())
	assert.Equal(t, 1, it.Value())
	assert.False(t, it.Next())
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), boom)
	assert.Equal(t, 2, fetches)
	assert.Zero(t, it.Value())
}

func TestIteratorSkipsEmptyPages(t *testing.T) {
	pages := [][]int{{}, {1, 2}, {}, {3}}
	k := 0
	it := newIterator(context.Background(), func(context.Context) ([]int, bool, error) {
		page := pages[k]
		k++
		return page, k < len(pages), nil
	})

	got, err := Collect(it)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestIteratorIsLazy(t *testing.T) {
	cfg := testConfig(2, 10)
	conn := connect(t, simulator.GetAllContacts(cfg, simulator.MakeContacts(3), []types.Property{stringProperty}))
	it := newTestClient(t, conn, cfg).GetAllContacts(context.Background())

	assert.Equal(t, 3, conn.Pending())
	require.True(t, it.Next())
	assert.Equal(t, 1, conn.Pending())
	require.True(t, it.Next())
	assert.Equal(t, 1, conn.Pending())
	require.True(t, it.Next())
	assert.Equal(t, 0, conn.Pending())
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}

func TestNewClientInvalidSizes(t *testing.T) {
	_, err := NewClient(nil, WithPageSize(0))
	assert.ErrorIs(t, err, types.ErrPageSizeInvalid)
	_, err = NewClient(nil, WithBatchSize(-1))
	assert.ErrorIs(t, err, types.ErrBatchSizeInvalid)
}

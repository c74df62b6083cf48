package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceLoadSuccess(t *testing.T) {
	r := NewResource[[]string]()

	_, status := r.Get()
	assert.Equal(t, StatusIdle, status)

	value, err := r.Load(context.Background(), func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, value)

	got, status := r.Get()
	assert.Equal(t, StatusReady, status)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.NoError(t, r.Err())
}

func TestResourceLoadFailure(t *testing.T) {
	r := NewResource[int]()
	boom := errors.New("boom")

	_, err := r.Load(context.Background(), func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	_, status := r.Get()
	assert.Equal(t, StatusFailed, status)
	assert.ErrorIs(t, r.Err(), boom)

	// A later successful load recovers
	value, err := r.Load(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	_, status = r.Get()
	assert.Equal(t, StatusReady, status)
	assert.NoError(t, r.Err())
}

func TestResourceResolvesEmptyOnMatchedErrors(t *testing.T) {
	notFound := errors.New("not found")
	r := NewResource[[]int]().ResolveEmptyOn(func(err error) bool {
		return errors.Is(err, notFound)
	})

	value, err := r.Load(context.Background(), func(context.Context) ([]int, error) {
		return nil, notFound
	})
	require.NoError(t, err)
	assert.Empty(t, value)

	_, status := r.Get()
	assert.Equal(t, StatusReady, status, "matched error resolves to ready, not failed")

	// Unmatched errors still fail
	_, err = r.Load(context.Background(), func(context.Context) ([]int, error) {
		return nil, errors.New("timeout")
	})
	assert.Error(t, err)
	_, status = r.Get()
	assert.Equal(t, StatusFailed, status)
}

func TestSlowLoadCannotOverwriteNewerLoad(t *testing.T) {
	r := NewResource[string]()

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	var slowErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = r.Load(context.Background(), func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started

	// A second load finishes while the first is still in flight
	value, err := r.Load(context.Background(), func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)

	close(release)
	wg.Wait()

	assert.ErrorIs(t, slowErr, ErrStale)
	got, status := r.Get()
	assert.Equal(t, StatusReady, status)
	assert.Equal(t, "fresh", got, "stale result discarded")
}

func TestSetSupersedesInflightLoad(t *testing.T) {
	r := NewResource[int]()

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	var loadErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, loadErr = r.Load(context.Background(), func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	r.Set(99)
	close(release)
	wg.Wait()

	assert.ErrorIs(t, loadErr, ErrStale)
	got, status := r.Get()
	assert.Equal(t, StatusReady, status)
	assert.Equal(t, 99, got)
}

func TestUpdateOnlyAppliesWhenReady(t *testing.T) {
	r := NewResource[[]int]()

	r.Update(func(v []int) []int { return append(v, 1) })
	_, status := r.Get()
	assert.Equal(t, StatusIdle, status, "update before first load is a no-op")

	_, err := r.Load(context.Background(), func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)

	r.Update(func(v []int) []int { return append(v, 3) })
	got, _ := r.Get()
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestResetReturnsToIdle(t *testing.T) {
	r := NewResource[string]()
	_, err := r.Load(context.Background(), func(context.Context) (string, error) {
		return "value", nil
	})
	require.NoError(t, err)

	r.Reset()
	got, status := r.Get()
	assert.Equal(t, StatusIdle, status)
	assert.Empty(t, got)
}

func TestGuardRejectsDuplicateMutations(t *testing.T) {
	g := NewGuard()

	require.True(t, g.TryAcquire("bet:5"))
	assert.False(t, g.TryAcquire("bet:5"), "same key rejected while held")
	assert.True(t, g.TryAcquire("bet:6"), "different keys are independent")

	g.Release("bet:5")
	assert.True(t, g.TryAcquire("bet:5"), "released key is reusable")

	// Releasing an unheld key must not panic
	g.Release("never-held")
}

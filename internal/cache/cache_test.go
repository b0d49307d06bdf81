package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/staffpad/staffpad/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestGetOrLoad_SecondCallHitsCache(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock[string](5*time.Minute, clock)
	calls := 0
	loader := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	first, err := c.GetOrLoad(context.Background(), "key", loader)
	assert.NoError(t, err)
	second, err := c.GetOrLoad(context.Background(), "key", loader)
	assert.NoError(t, err)

	assert.Equal(t, "value", first)
	assert.Equal(t, "value", second)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_ExpiredEntryReloads(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock[string](5*time.Minute, clock)
	calls := 0
	loader := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	_, _ = c.GetOrLoad(context.Background(), "key", loader)
	clock.SetNow(clock.FixedNow.Add(6 * time.Minute))
	_, _ = c.GetOrLoad(context.Background(), "key", loader)

	assert.Equal(t, 2, calls)
}

func TestGetOrLoad_FailedLoadRetriesNextCall(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock[string](5*time.Minute, clock)
	calls := 0
	loader := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("backend down")
		}
		return "value", nil
	}

	_, err := c.GetOrLoad(context.Background(), "key", loader)
	assert.Error(t, err)

	value, err := c.GetOrLoad(context.Background(), "key", loader)
	assert.NoError(t, err)
	assert.Equal(t, "value", value)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoad_ConcurrentCallersShareOneLoad(t *testing.T) {
	c := New[string](5 * time.Minute)
	var calls int
	var mu sync.Mutex
	started := make(chan struct{})
	release := make(chan struct{})
	loader := func(ctx context.Context) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.GetOrLoad(context.Background(), "key", loader)
	}()
	<-started
	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrLoad(context.Background(), "key", loader)
		}(i)
	}
	close(release)
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, result := range results {
		assert.Equal(t, "value", result)
	}
}

func TestInvalidate(t *testing.T) {
	c := New[int](5 * time.Minute)
	calls := 0
	loader := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	_, _ = c.GetOrLoad(context.Background(), "key", loader)
	c.Invalidate("key")
	_, _ = c.GetOrLoad(context.Background(), "key", loader)

	assert.Equal(t, 2, calls)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New[int](5 * time.Minute)
	loader := func(ctx context.Context) (int, error) { return 1, nil }

	_, _ = c.GetOrLoad(context.Background(), "1|a", loader)
	_, _ = c.GetOrLoad(context.Background(), "1|b", loader)
	_, _ = c.GetOrLoad(context.Background(), "2|a", loader)
	assert.Equal(t, 3, c.Len())

	c.InvalidatePrefix("1|")

	assert.Equal(t, 1, c.Len())
}

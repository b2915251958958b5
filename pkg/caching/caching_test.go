package caching

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Minute)

	value, negative, ok := c.Get("k")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if negative {
		t.Error("Get() negative = true, want false")
	}
	if value.(string) != "v" {
		t.Errorf("Get() value = %v, want %q", value, "v")
	}
}

func TestGetMiss(t *testing.T) {
	c := New()
	if _, _, ok := c.Get("absent"); ok {
		t.Error("Get() on empty cache ok = true, want false")
	}
}

func TestExpiry(t *testing.T) {
	c := New()
	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, _, ok := c.Get("k"); ok {
		t.Error("Get() after TTL ok = true, want false")
	}
	if n := c.Len(); n != 0 {
		t.Errorf("Len() after expiry = %d, want 0", n)
	}
}

func TestNegativeEntry(t *testing.T) {
	c := New()
	c.SetNegative("k", time.Minute)

	value, negative, ok := c.Get("k")
	if !ok {
		t.Fatal("Get() ok = false, want true for negative entry")
	}
	if !negative {
		t.Error("Get() negative = false, want true")
	}
	if value != nil {
		t.Errorf("Get() value = %v, want nil", value)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute)
	c.SetNegative("b", time.Minute)
	c.Clear()

	if n := c.Len(); n != 0 {
		t.Errorf("Len() after Clear = %d, want 0", n)
	}
}

func TestLenSkipsExpired(t *testing.T) {
	c := New()
	c.Set("live", 1, time.Minute)
	c.Set("dead", 1, time.Nanosecond)
	time.Sleep(time.Millisecond)

	if n := c.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestDoCollapsesConcurrentLoads(t *testing.T) {
	c := New()
	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Do("k", func() (any, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				<-release
				return "v", nil
			})
		}()
	}
	// Give the goroutines a moment to pile up on the same key.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("loader ran %d times, want 1", calls)
	}
}

func TestDoPropagatesError(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	if _, err := c.Do("k", func() (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Do() err = %v, want %v", err, boom)
	}
}

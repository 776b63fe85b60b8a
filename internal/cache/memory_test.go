package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("cat"); found {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("cat", true)
	c.Set("cta", false)

	if correct, found := c.Get("cat"); !found || !correct {
		t.Errorf("expected cached true verdict, got correct=%v found=%v", correct, found)
	}
	if correct, found := c.Get("cta"); !found || correct {
		t.Errorf("expected cached false verdict, got correct=%v found=%v", correct, found)
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("expected 2 hits and 1 miss, got %+v", stats)
	}
	if stats.Items != 2 {
		t.Errorf("expected 2 items, got %d", stats.Items)
	}
}

func TestMemoryCache_ZeroTTLUsesDefault(t *testing.T) {
	c := NewMemoryCache(0, 0)
	c.Set("dog", true)

	_, expires, found := c.cache.GetWithExpiration(key("dog"))
	if !found {
		t.Fatal("expected cached verdict")
	}
	if d := time.Until(expires); d < DefaultTTL-time.Minute || d > DefaultTTL {
		t.Errorf("expected expiry near %v, got %v", DefaultTTL, d)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(20*time.Millisecond, time.Minute)
	c.Set("fleeting", true)
	time.Sleep(40 * time.Millisecond)

	if _, found := c.Get("fleeting"); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tok := fmt.Sprintf("w%d", j)
				c.Set(tok, j%2 == 0)
				if correct, found := c.Get(tok); found && correct != (j%2 == 0) {
					t.Errorf("worker %d: wrong verdict for %s", i, tok)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_KeysAreNamespaced(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("word", true)

	if _, found := c.cache.Get("spchk:v1:word"); !found {
		t.Error("expected namespaced key in the store")
	}
	if _, found := c.cache.Get("word"); found {
		t.Error("raw token must not be used as a key")
	}
}

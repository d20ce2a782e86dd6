package cache

import (
	"testing"
	"time"
)

func TestLRUBasics(t *testing.T) {
	c := NewLRU[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}

	// "b" is now least recently used and should be the one evicted.
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should have survived eviction")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[string](10, -time.Second) // everything is born expired

	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}

	c.Set("k", "v")
	if n := c.CleanExpired(); n != 1 {
		t.Errorf("CleanExpired() = %d, want 1", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after cleanup, want 0", c.Len())
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after purge, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("purged entry still readable")
	}
}

package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	if got := c.Get("archive"); got != nil {
		t.Errorf("expected miss on empty cache, got %v", got)
	}

	c.Set("archive", []byte("zip-bytes"))
	if got := c.Get("archive"); string(got) != "zip-bytes" {
		t.Errorf("Get() = %q, want zip-bytes", got)
	}
}

func TestExpiration(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("archive", []byte("data"))
	time.Sleep(50 * time.Millisecond)
	if got := c.Get("archive"); got != nil {
		t.Error("expected entry to expire")
	}
}

func TestStats(t *testing.T) {
	c := New(time.Minute)
	c.Get("missing")
	c.Set("archive", []byte("data"))
	c.Get("archive")
	c.Get("archive")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Entries != 1 {
		t.Errorf("stats = %+v, want 2 hits 1 miss 1 entry", stats)
	}
}

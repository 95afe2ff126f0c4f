package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_ExpiresAndEvicts(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)

	var evicted []string
	c.OnEvicted(func(key string, _ interface{}) { evicted = append(evicted, key) })

	c.Set("short", 1, time.Millisecond)
	c.Set("long", 2, time.Hour)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired item still returned")
	}
	if v, ok := c.Get("long"); !ok || v.(int) != 2 {
		t.Errorf("Get(long) = %v, %v", v, ok)
	}

	c.Delete("long")
	if len(evicted) != 1 || evicted[0] != "long" {
		t.Errorf("evicted = %v, want [long]", evicted)
	}
}

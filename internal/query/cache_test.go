package query

import (
	"fmt"
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(time.Minute, 0)

	if _, _, ok := c.Get("courses?page=1"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("courses?page=1", "v1")
	v, fresh, ok := c.Get("courses?page=1")
	if !ok || !fresh {
		t.Fatalf("expected fresh hit, got ok=%v fresh=%v", ok, fresh)
	}
	if v != "v1" {
		t.Errorf("value = %v, want v1", v)
	}
}

func TestCacheTTLStaleness(t *testing.T) {
	c := NewCache(10*time.Millisecond, 0)
	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)

	v, fresh, ok := c.Get("k")
	if !ok {
		t.Fatal("expired entry must stay readable")
	}
	if fresh {
		t.Error("entry older than ttl should be stale")
	}
	if v != "v" {
		t.Errorf("value = %v, want v", v)
	}
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute, 0)
	c.Set("courses?page=1", "p1")
	c.Set("courses?page=2", "p2")
	c.Set("courses/c1", "entity")
	c.Set("chat?page=1", "other")

	n := c.Invalidate("courses")
	if n != 3 {
		t.Errorf("Invalidate() = %d, want 3", n)
	}

	for _, key := range []string{"courses?page=1", "courses?page=2", "courses/c1"} {
		if _, fresh, ok := c.Get(key); !ok || fresh {
			t.Errorf("key %q: ok=%v fresh=%v, want stale hit", key, ok, fresh)
		}
	}
	if _, fresh, ok := c.Get("chat?page=1"); !ok || !fresh {
		t.Errorf("unrelated key was affected: ok=%v fresh=%v", ok, fresh)
	}
}

func TestCacheGenerationDiscardsSupersededWrite(t *testing.T) {
	c := NewCache(time.Minute, 0)
	c.Set("courses?page=1", "old")

	// A request departs, then an invalidation supersedes it.
	gen := c.Generation("courses?page=1")
	c.Invalidate("courses")

	if c.SetIfGeneration("courses?page=1", "from-superseded-request", gen) {
		t.Fatal("write with a stale generation must be discarded")
	}
	v, _, _ := c.Get("courses?page=1")
	if v != "old" {
		t.Errorf("value = %v, want the pre-invalidation snapshot", v)
	}

	// A request issued after the invalidation lands normally.
	gen = c.Generation("courses?page=1")
	if !c.SetIfGeneration("courses?page=1", "new", gen) {
		t.Fatal("write with the current generation must land")
	}
	v, fresh, _ := c.Get("courses?page=1")
	if v != "new" || !fresh {
		t.Errorf("value = %v fresh = %v, want fresh new", v, fresh)
	}
}

func TestCacheInvalidateBumpsGenerationWithoutEntry(t *testing.T) {
	c := NewCache(time.Minute, 0)

	// First fetch for a key: generation captured, no entry stored yet.
	gen := c.Generation("courses?page=1")
	c.Invalidate("courses")

	if c.SetIfGeneration("courses?page=1", "late", gen) {
		t.Error("response from before the invalidation must be discarded")
	}
	if _, _, ok := c.Get("courses?page=1"); ok {
		t.Error("discarded write must not create an entry")
	}
}

func TestCacheGenerationMapStaysBounded(t *testing.T) {
	c := NewCache(time.Minute, 4)

	// Many one-off keys register a generation but never store an entry.
	for i := 0; i < 100; i++ {
		c.Generation(fmt.Sprintf("courses/%d", i))
	}
	c.Set("courses?page=1", "v")

	c.mu.RLock()
	n := len(c.gens)
	c.mu.RUnlock()
	if n > 2*4 {
		t.Errorf("generation map holds %d keys, want at most %d", n, 2*4)
	}
}

func TestCachePrunedKeyRefusesStaleWrite(t *testing.T) {
	c := NewCache(time.Minute, 2)

	gen := c.Generation("tasks/old")
	for i := 0; i < 50; i++ {
		c.Generation(fmt.Sprintf("courses/%d", i))
	}
	c.Invalidate("courses")

	// The pruned key must not restart at a generation the in-flight
	// request was issued under.
	if c.SetIfGeneration("tasks/old", "stale", gen) {
		t.Error("write issued before pruning must be discarded")
	}
	if _, _, ok := c.Get("tasks/old"); ok {
		t.Error("discarded write must not create an entry")
	}
}

func TestCachePatch(t *testing.T) {
	c := NewCache(time.Minute, 0)
	c.Set("courses/c1", 1)

	if c.Patch("missing", func(v any) any { return v }) {
		t.Error("patching a missing key should report false")
	}
	if !c.Patch("courses/c1", func(v any) any { return v.(int) + 1 }) {
		t.Fatal("patching an existing key should report true")
	}

	v, fresh, _ := c.Get("courses/c1")
	if v != 2 {
		t.Errorf("value = %v, want 2", v)
	}
	if !fresh {
		t.Error("Patch must preserve freshness")
	}
}

func TestCachePatchPrefix(t *testing.T) {
	c := NewCache(time.Minute, 0)
	c.Set("courses?page=1", 10)
	c.Set("courses?page=2", 20)
	c.Set("chat?page=1", 30)

	n := c.PatchPrefix("courses?", func(v any) any { return v.(int) + 1 })
	if n != 2 {
		t.Errorf("PatchPrefix() = %d, want 2", n)
	}
	if v, _, _ := c.Get("courses?page=2"); v != 21 {
		t.Errorf("patched value = %v, want 21", v)
	}
	if v, _, _ := c.Get("chat?page=1"); v != 30 {
		t.Errorf("unrelated value = %v, want untouched 30", v)
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(time.Minute, 2)
	c.Set("a", 1)
	time.Sleep(time.Millisecond)
	c.Set("b", 2)
	time.Sleep(time.Millisecond)
	c.Set("c", 3)

	if got := c.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if _, _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, _, ok := c.Get("c"); !ok {
		t.Error("newest entry must survive eviction")
	}
}

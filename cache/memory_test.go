package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestMemoryPutGet(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Put("aa", []byte("content"))

	got, ok := m.Get("aa")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if string(got) != "content" {
		t.Fatalf("Get() = %q, want %q", got, "content")
	}

	if _, ok := m.Get("bb"); ok {
		t.Fatal("Get() ok = true for missing key, want false")
	}
}

func TestMemoryReplace(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Put("aa", []byte("old"))
	m.Put("aa", []byte("new"))

	got, ok := m.Get("aa")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if string(got) != "new" {
		t.Fatalf("Get() = %q, want %q", got, "new")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoryCountBound(t *testing.T) {
	t.Parallel()

	m := NewMemory(WithMaxEntries(3))
	for i := 0; i < 5; i++ {
		m.Put(fmt.Sprintf("%02x", i), []byte("x"))
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	// The two oldest writes are gone.
	if _, ok := m.Get("00"); ok {
		t.Fatal("oldest entry survived eviction")
	}
	if _, ok := m.Get("04"); !ok {
		t.Fatal("newest entry was evicted")
	}
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	m := NewMemory(WithMaxEntries(3))
	m.Put("aa", []byte("a"))
	m.Put("bb", []byte("b"))
	m.Put("cc", []byte("c"))

	// Touch the oldest entry so "bb" becomes the eviction candidate.
	if _, ok := m.Get("aa"); !ok {
		t.Fatal("Get(aa) ok = false, want true")
	}

	m.Put("dd", []byte("d"))

	if _, ok := m.Get("bb"); ok {
		t.Fatal("least-recently-used entry survived eviction")
	}
	if _, ok := m.Get("aa"); !ok {
		t.Fatal("recently accessed entry was evicted")
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
}

func TestMemoryAgeBound(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := func() time.Time { return now }
	m := NewMemory(WithMaxAge(time.Minute), withClock(clock))

	m.Put("aa", []byte("a"))
	m.Put("bb", []byte("b"))

	now = now.Add(2 * time.Minute)
	m.Put("cc", []byte("c"))

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after age sweep", m.Len())
	}
	if _, ok := m.Get("cc"); !ok {
		t.Fatal("fresh entry was purged")
	}
}

func TestMemoryPurge(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := func() time.Time { return now }
	m := NewMemory(WithMaxAge(time.Minute), withClock(clock))

	m.Put("aa", []byte("a"))
	now = now.Add(2 * time.Minute)
	m.Purge()

	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after Purge", m.Len())
	}
}

func TestMemoryClear(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Put("aa", []byte("a"))
	m.Put("bb", []byte("b"))
	m.Clear()

	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", m.Len())
	}
	if _, ok := m.Get("aa"); ok {
		t.Fatal("Get() ok = true after Clear, want false")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

// fakeClock pins the package clock to start and returns a function that
// advances it. The real clock is restored when the test finishes.
func fakeClock(t *testing.T, start time.Time) func(time.Duration) {
	t.Helper()
	current := start
	now = func() time.Time { return current }
	t.Cleanup(func() { now = time.Now })
	return func(d time.Duration) { current = current.Add(d) }
}

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		queryA   string
		countA   int
		queryB   string
		countB   int
		wantSame bool
	}{
		{"identical queries", "ai trends", 5, "ai trends", 5, true},
		{"case and whitespace normalized", "  AI Trends  ", 5, "ai trends", 5, true},
		{"different queries", "ai trends", 5, "ml trends", 5, false},
		{"different result counts", "ai trends", 5, "ai trends", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Key(tt.queryA, tt.countA)
			b := Key(tt.queryB, tt.countB)
			if (a == b) != tt.wantSame {
				t.Errorf("Key(%q, %d) vs Key(%q, %d): same=%v, want %v",
					tt.queryA, tt.countA, tt.queryB, tt.countB, a == b, tt.wantSame)
			}
			if len(a) != 32 {
				t.Errorf("key length = %d, want 32 hex chars", len(a))
			}
		})
	}
}

func TestGetMiss(t *testing.T) {
	c := New(10, time.Hour)
	if _, ok := c.Get(Key("nothing here", 5)); ok {
		t.Error("Get on empty cache reported a hit")
	}
}

func TestPutThenGet(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("ai trends", 5)
	results := []types.SearchResult{
		{Title: "Trend Report", URL: "https://example.com/a", Content: "body", RelevanceScore: 0.9},
		{Title: "Outlook", URL: "https://example.com/b", RelevanceScore: 0.5},
	}

	c.Put(key, results)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if !reflect.DeepEqual(got, results) {
		t.Errorf("Get returned %+v, want %+v", got, results)
	}
}

func TestExpiredEntryIsDeleted(t *testing.T) {
	advance := fakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := New(10, time.Hour)
	key := Key("ai trends", 5)
	c.Put(key, []types.SearchResult{{Title: "stale"}})

	advance(time.Hour + time.Second)

	if _, ok := c.Get(key); ok {
		t.Error("expired entry reported as a hit")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not deleted, Len = %d", c.Len())
	}
}

func TestEntryAgedExactlyTTLIsFresh(t *testing.T) {
	advance := fakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := New(10, time.Hour)
	key := Key("ai trends", 5)
	c.Put(key, []types.SearchResult{{Title: "still good"}})

	advance(time.Hour)

	if _, ok := c.Get(key); !ok {
		t.Error("entry aged exactly the TTL should still be a hit")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	advance := fakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := New(2, time.Hour)

	keyA := Key("query a", 5)
	keyB := Key("query b", 5)
	keyC := Key("query c", 5)

	c.Put(keyA, []types.SearchResult{{Title: "a"}})
	advance(time.Minute)
	c.Put(keyB, []types.SearchResult{{Title: "b"}})
	advance(time.Minute)
	c.Put(keyC, []types.SearchResult{{Title: "c"}})

	if _, ok := c.Get(keyA); ok {
		t.Error("oldest entry should have been evicted")
	}
	for _, key := range []string{keyB, keyC} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("entry %s missing after eviction of the oldest", key)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestPutOverwritesSameKey(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("ai trends", 5)

	c.Put(key, []types.SearchResult{{Title: "first"}})
	c.Put(key, []types.SearchResult{{Title: "second"}})

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(got) != 1 || got[0].Title != "second" {
		t.Errorf("Get returned %+v, want the overwritten entry", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestOverwriteAtCapacityKeepsOtherEntries(t *testing.T) {
	fakeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := New(2, time.Hour)

	keyA := Key("query a", 5)
	keyB := Key("query b", 5)

	c.Put(keyA, []types.SearchResult{{Title: "a"}})
	c.Put(keyB, []types.SearchResult{{Title: "b"}})
	c.Put(keyA, []types.SearchResult{{Title: "a2"}})

	got, ok := c.Get(keyA)
	if !ok || got[0].Title != "a2" {
		t.Errorf("Get(keyA) = %+v, %v; want the overwritten entry", got, ok)
	}
	if _, ok := c.Get(keyB); !ok {
		t.Error("overwriting a present key must not evict another entry")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(0, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}

package cache

import (
	"strings"
	"testing"
	"time"
)

func TestResultKeyDeterministic(t *testing.T) {
	a := ResultKey("raw text", "en|invoice|true")
	b := ResultKey("raw text", "en|invoice|true")
	if a != b {
		t.Errorf("same inputs gave %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "canonica:v1:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
}

func TestResultKeySeparatesTextAndOptions(t *testing.T) {
	if ResultKey("raw", "en|") == ResultKey("raw", "vi|") {
		t.Error("different options produced the same key")
	}
	if ResultKey("a", "b") == ResultKey("ab", "") {
		t.Error("text/options boundary is ambiguous")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Get on empty cache reported a hit")
	}

	if err := c.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "payload" {
		t.Errorf("Get = (%q, %v), want stored payload", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("entry survived Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("entry survived its TTL")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("entry survived Clear")
	}
}

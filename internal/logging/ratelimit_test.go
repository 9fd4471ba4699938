package logging

import (
	"testing"
	"time"
)

func TestLimiterSuppressesWithinInterval(t *testing.T) {
	l := &limiter{last: map[string]time.Time{}, max: 8}
	now := time.Unix(100, 0)
	if !l.allow("drag", now, time.Second) {
		t.Fatalf("first call should be allowed")
	}
	if l.allow("drag", now.Add(500*time.Millisecond), time.Second) {
		t.Fatalf("call inside interval should be suppressed")
	}
	if !l.allow("other", now.Add(500*time.Millisecond), time.Second) {
		t.Fatalf("distinct key should be allowed")
	}
	if !l.allow("drag", now.Add(time.Second), time.Second) {
		t.Fatalf("call after interval should be allowed")
	}
}

func TestLimiterPrunesOldKeys(t *testing.T) {
	l := &limiter{last: map[string]time.Time{}, max: 3}
	l.last["a"] = time.Unix(1, 0)
	l.last["b"] = time.Unix(2, 0)
	l.last["c"] = time.Unix(3, 0)
	if !l.allow("d", time.Unix(4, 0), time.Second) {
		t.Fatalf("new key should be allowed")
	}
	if len(l.last) != 3 {
		t.Fatalf("expected 3 keys after prune, got %d", len(l.last))
	}
	if _, ok := l.last["a"]; ok {
		t.Fatalf("expected oldest key to be pruned")
	}
	if _, ok := l.last["d"]; !ok {
		t.Fatalf("expected newest key to remain")
	}
}

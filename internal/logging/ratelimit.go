package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// limiter remembers when each key last logged. It keeps at most max keys,
// dropping the oldest when full.
type limiter struct {
	mu   sync.Mutex
	last map[string]time.Time
	max  int
}

var everyLimiter = &limiter{last: map[string]time.Time{}, max: 1024}

func (l *limiter) allow(key string, now time.Time, interval time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if last, ok := l.last[key]; ok && now.Sub(last) < interval {
		return false
	}
	l.last[key] = now
	if len(l.last) > l.max {
		l.prune()
	}
	return true
}

func (l *limiter) prune() {
	keys := make([]string, 0, len(l.last))
	for key := range l.last {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return l.last[a].Compare(l.last[b])
	})
	for _, key := range keys[:len(keys)-l.max] {
		delete(l.last, key)
	}
}

// LogEvery emits a log entry at most once per interval for a key. Drag updates
// use it so a long drag does not flood the log file.
func LogEvery(ctx context.Context, key string, interval time.Duration, level slog.Level, msg string, attrs ...slog.Attr) {
	if !slog.Default().Enabled(ctx, level) {
		return
	}
	if key != "" && interval > 0 && !everyLimiter.allow(key, time.Now(), interval) {
		return
	}
	slog.LogAttrs(ctx, level, msg, attrs...)
}

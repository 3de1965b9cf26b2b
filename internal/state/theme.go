package state

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/cinelist/internal/domain"
)

// Theme holds the light/dark preference. Transitions only persist and
// notify; applying the theme to the screen is left to subscribers.
type Theme struct {
	kv     domain.KVStore
	logger *slog.Logger

	mu      sync.Mutex
	current domain.Theme
	subs    map[int]func(domain.Theme)
	nextSub int
}

// NewTheme reads the stored preference, defaulting to dark.
func NewTheme(kv domain.KVStore, logger *slog.Logger) *Theme {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Theme{
		kv:      kv,
		logger:  logger,
		current: domain.DefaultTheme,
		subs:    make(map[int]func(domain.Theme)),
	}
	if kv == nil {
		return t
	}
	if raw, ok := kv.Get(domain.KeyTheme); ok {
		theme, err := domain.ParseTheme(raw)
		if err != nil {
			logger.Warn("ignoring stored theme", "error", err)
		} else {
			t.current = theme
		}
	}
	return t
}

// Current returns the active theme.
func (t *Theme) Current() domain.Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Toggle flips between light and dark and returns the new value.
func (t *Theme) Toggle() domain.Theme {
	return t.apply(func(cur domain.Theme) domain.Theme { return cur.Opposite() })
}

// Set selects a theme explicitly.
func (t *Theme) Set(value domain.Theme) error {
	theme, err := domain.ParseTheme(string(value))
	if err != nil {
		return err
	}
	t.apply(func(domain.Theme) domain.Theme { return theme })
	return nil
}

// Subscribe registers fn to be called after every change. The returned
// func removes the subscription.
func (t *Theme) Subscribe(fn func(domain.Theme)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// apply moves to next(current), persists it, then notifies subscribers
// outside the lock.
func (t *Theme) apply(next func(domain.Theme) domain.Theme) domain.Theme {
	t.mu.Lock()
	theme := next(t.current)
	t.current = theme
	if t.kv != nil {
		if err := t.kv.Set(domain.KeyTheme, string(theme)); err != nil {
			t.logger.Error("failed to save theme", "error", err)
		}
	}
	subs := make([]func(domain.Theme), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(theme)
	}
	return theme
}

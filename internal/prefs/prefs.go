package prefs

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/adekomen/portfolio/internal/viewstate"
)

// ThemeKey is the preference key holding the colour scheme.
const ThemeKey = "theme"

var ErrNotFound = errors.New("prefs: key not found")

// Store is a string key-value store for visitor preferences.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ThemeKeyFor namespaces the theme key for one visitor. An empty visitor id
// gives the bare ThemeKey used by the single-user terminal front-end.
func ThemeKeyFor(visitorID string) string {
	if visitorID == "" {
		return ThemeKey
	}
	return ThemeKey + ":" + visitorID
}

// LoadTheme reads the persisted theme, falling back to light on a missing key
// or a store error.
func LoadTheme(ctx context.Context, s Store, key string) viewstate.Theme {
	v, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[warn] operation=load_theme key=%s error=%v", key, err)
		}
		return viewstate.ThemeLight
	}
	return viewstate.ParseTheme(v)
}

func SaveTheme(ctx context.Context, s Store, key string, theme viewstate.Theme) error {
	return s.Set(ctx, key, string(theme))
}

// Memory is an in-process Store.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return nil
}

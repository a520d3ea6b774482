// Package theme resolves and persists the reader's light/dark preference.
package theme

import (
	"context"
	"fmt"
	"strings"
)

// Theme is the rendered visual theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultKey is the store key the preference lives under.
const DefaultKey = "theme"

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Ambient is the environment's reported color-scheme preference.
type Ambient string

const (
	AmbientNone  Ambient = ""
	AmbientLight Ambient = "light"
	AmbientDark  Ambient = "dark"
)

// ParseAmbient reads a Sec-CH-Prefers-Color-Scheme header value.
func ParseAmbient(v string) Ambient {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(v), `"`)) {
	case "dark":
		return AmbientDark
	case "light":
		return AmbientLight
	}
	return AmbientNone
}

// Store is a string key-value store.
type Store interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
}

// State ties a Store to the preference key.
type State struct {
	Store Store
	Key   string
}

// NewState returns a State using DefaultKey.
func NewState(store Store) *State {
	return &State{Store: store, Key: DefaultKey}
}

func (s *State) key() string {
	if s.Key == "" {
		return DefaultKey
	}
	return s.Key
}

// Resolve returns the stored theme, or the ambient preference when nothing
// valid is stored. No preference at all resolves to Light.
func (s *State) Resolve(ctx context.Context, ambient Ambient) (Theme, error) {
	v, ok, err := s.Store.Load(ctx, s.key())
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if ok {
		if t := Theme(v); t.Valid() {
			return t, nil
		}
	}
	if ambient == AmbientDark {
		return Dark, nil
	}
	return Light, nil
}

// Toggle switches the resolved theme, stores the result and returns it.
func (s *State) Toggle(ctx context.Context, ambient Ambient) (Theme, error) {
	current, err := s.Resolve(ctx, ambient)
	if err != nil {
		return "", err
	}
	next := current.Opposite()
	if err := s.Store.Save(ctx, s.key(), string(next)); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}
	return next, nil
}

// Set stores an explicit choice.
func (s *State) Set(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("invalid theme %q", t)
	}
	if err := s.Store.Save(ctx, s.key(), string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Package fetch defines when associated data is loaded.
package fetch

import (
	"fmt"
	"strings"
)

// Type is a fetch strategy. The zero value is Lazy.
type Type uint8

// Fetch strategies.
const (
	Lazy  Type = iota // Load on first access.
	Eager             // Load together with the owner.
)

// String returns the strategy name.
func (t Type) String() string {
	if t == Eager {
		return "EAGER"
	}
	return "LAZY"
}

// Parse returns the strategy for s, ignoring case. An empty string
// yields Lazy.
func Parse(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lazy", "select":
		return Lazy, nil
	case "eager", "join":
		return Eager, nil
	}
	return Lazy, fmt.Errorf("fetch: unknown strategy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

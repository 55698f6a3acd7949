// Package cascade defines the persistence operations an association may
// propagate to its associated entity, and the parsing of cascade
// specifications such as "all" or "save-update, refresh".
package cascade

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type is a cascade operation.
type Type uint8

// Cascade operations.
const (
	Unk     Type = iota // Unknown.
	All                 // All operations.
	Merge               // Merge (update) the associated entity.
	Persist             // Persist (save) the associated entity.
	Remove              // Remove (delete) the associated entity.
	Refresh             // Refresh the associated entity.
)

// String returns the operation name.
func (t Type) String() string {
	s := "UNKNOWN"
	switch t {
	case All:
		s = "ALL"
	case Merge:
		s = "MERGE"
	case Persist:
		s = "PERSIST"
	case Remove:
		s = "REMOVE"
	case Refresh:
		s = "REFRESH"
	}
	return s
}

func (t Type) valid() bool { return t >= All && t <= Refresh }

// conversions maps the keywords accepted in a cascade specification to
// their operation. Keywords such as "all-delete-orphan", "lock",
// "replicate", "evict" and "delete-orphan" are not supported and are
// dropped by Parse.
var conversions = map[string]Type{
	"all":         All,
	"merge":       Merge,
	"save-update": Persist,
	"persist":     Persist,
	"delete":      Remove,
	"remove":      Remove,
	"refresh":     Refresh,
}

// ParseType returns the operation for a single keyword, ignoring case and
// surrounding whitespace.
func ParseType(s string) (Type, error) {
	if t, ok := conversions[normalize(s)]; ok {
		return t, nil
	}
	return Unk, fmt.Errorf("cascade: unknown operation %q", s)
}

// Set is an immutable set of cascade operations.
type Set uint8

// Default sets.
var (
	// None is the empty set.
	None Set
	// OwnerDefault is used by owning sides that configure no cascade.
	OwnerDefault = Of(All)
	// ChildDefault is used by non-owning sides that configure no cascade.
	ChildDefault = Of(Persist)
)

// Of returns the set holding the given operations. Unknown operations are
// ignored.
func Of(types ...Type) Set {
	var s Set
	for _, t := range types {
		if t.valid() {
			s |= 1 << t
		}
	}
	return s
}

// Parse converts a comma-separated cascade specification into a set.
// Tokens are matched case-insensitively after trimming whitespace, and
// unrecognized tokens are ignored.
func Parse(spec string) Set {
	var s Set
	for _, token := range tokens(spec) {
		if t, ok := conversions[token]; ok {
			s |= 1 << t
		}
	}
	return s
}

// Unrecognized returns the tokens of spec that Parse ignores.
func Unrecognized(spec string) []string {
	var unknown []string
	for _, token := range tokens(spec) {
		if _, ok := conversions[token]; !ok && token != "" {
			unknown = append(unknown, token)
		}
	}
	return unknown
}

// Contains reports whether t is a member of the set.
func (s Set) Contains(t Type) bool {
	return t.valid() && s&(1<<t) != 0
}

// Has reports whether the set cascades t, that is, whether it holds All
// or t itself.
func (s Set) Has(t Type) bool {
	return s.Contains(All) || s.Contains(t)
}

// Any reports whether the set holds All or any of the given operations.
func (s Set) Any(types ...Type) bool {
	if s.Contains(All) {
		return true
	}
	for _, t := range types {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// Empty reports whether the set holds no operations.
func (s Set) Empty() bool { return s == 0 }

// Len returns the number of operations in the set.
func (s Set) Len() int {
	n := 0
	for t := All; t <= Refresh; t++ {
		if s.Contains(t) {
			n++
		}
	}
	return n
}

// Types returns the operations of the set in declaration order.
func (s Set) Types() []Type {
	types := make([]Type, 0, s.Len())
	for t := All; t <= Refresh; t++ {
		if s.Contains(t) {
			types = append(types, t)
		}
	}
	return types
}

// String returns the set in "{ALL, MERGE}" form.
func (s Set) String() string {
	names := make([]string, 0, s.Len())
	for _, t := range s.Types() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func tokens(spec string) []string {
	parts := strings.Split(cases.Lower(language.Und).String(spec), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func normalize(s string) string {
	return strings.TrimSpace(cases.Lower(language.Und).String(s))
}

package edge

import "github.com/syssam/mapping/schema/fetch"

// Mapping is the mapped form configured for an association, either on the
// association itself or in an entity-level mapping block:
//
//	schema.Entity("Author").
//		Edges(edge.HasMany("books", "Book")).
//		Map("books", edge.Mapping{Cascade: edge.Spec("all")})
//
// Unset fields keep the value of the mapping they are merged into.
type Mapping struct {
	Cascade *string     `json:"cascade,omitempty" yaml:"cascade,omitempty"`
	Fetch   *fetch.Type `json:"fetch,omitempty" yaml:"fetch,omitempty"`
}

// Spec returns a pointer to a cascade specification, for use in Mapping
// literals.
func Spec(s string) *string { return &s }

// Merge returns m overridden by the fields set in other.
func (m Mapping) Merge(other Mapping) Mapping {
	if other.Cascade != nil {
		m.Cascade = other.Cascade
	}
	if other.Fetch != nil {
		m.Fetch = other.Fetch
	}
	return m
}

// IsZero reports whether no field of the mapping is set.
func (m Mapping) IsZero() bool {
	return m.Cascade == nil && m.Fetch == nil
}

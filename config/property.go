// Package config holds the resolved mapped form of persistent properties:
// the per-property mapping configuration an association reads its cascade
// specification and fetch strategy from.
package config

import (
	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/fetch"
)

// Property is the mapped form of a single property. The zero value maps
// nothing explicitly: no cascade specification and lazy fetching.
type Property struct {
	// Cascade is the cascade specification, nil when none was configured.
	// An empty specification is explicit and cascades nothing.
	Cascade *string
	// Fetch is the fetch strategy.
	Fetch fetch.Type
	// Nullable reports whether the property may be unset.
	Nullable bool
}

// FromMapping returns the mapped form for an association mapping.
func FromMapping(m edge.Mapping) *Property {
	p := &Property{}
	if m.Cascade != nil {
		spec := *m.Cascade
		p.Cascade = &spec
	}
	if m.Fetch != nil {
		p.Fetch = *m.Fetch
	}
	return p
}

// CascadeSpec returns the cascade specification and whether one was
// configured. It is safe to call on a nil Property.
func (p *Property) CascadeSpec() (string, bool) {
	if p == nil || p.Cascade == nil {
		return "", false
	}
	return *p.Cascade, true
}

// FetchStrategy returns the fetch strategy. It is safe to call on a nil
// Property.
func (p *Property) FetchStrategy() fetch.Type {
	if p == nil {
		return fetch.Lazy
	}
	return p.Fetch
}

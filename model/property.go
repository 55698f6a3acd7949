package model

import (
	"github.com/syssam/mapping/config"
	"github.com/syssam/mapping/schema/field"
)

// Property is the metadata shared by every persistent property.
type Property interface {
	// Name returns the property name.
	Name() string
	// Type returns the declared type.
	Type() field.TypeInfo
	// Owner returns the entity declaring the property.
	Owner() *Entity
	// Mapping returns the mapped form, nil when none is configured.
	Mapping() *config.Property
	// String returns "<Owner>-><Name>".
	String() string
}

// property implements the common part of Property. The owner is held by
// name and resolved through the mapping context.
type property struct {
	ctx     *Context
	owner   string
	name    string
	typ     field.TypeInfo
	mapping *config.Property
}

func newProperty(owner *Entity, name string, typ field.TypeInfo, m *config.Property) property {
	return property{
		ctx:     owner.ctx,
		owner:   owner.name,
		name:    name,
		typ:     typ,
		mapping: m,
	}
}

func (p *property) Name() string              { return p.name }
func (p *property) Type() field.TypeInfo      { return p.typ }
func (p *property) Mapping() *config.Property { return p.mapping }
func (p *property) String() string            { return p.owner + "->" + p.name }

func (p *property) Owner() *Entity {
	e, _ := p.ctx.Entity(p.owner)
	return e
}

// Simple is a property holding a value rather than an association, for
// example a string or a timestamp.
type Simple struct {
	property
}

// NewSimple returns a simple property of owner. It is not added to the
// owner; call Entity.AddProperty for that.
func NewSimple(owner *Entity, name string, typ field.TypeInfo, m *config.Property) *Simple {
	return &Simple{property: newProperty(owner, name, typ, m)}
}

// Nullable reports whether the mapped form allows the property to be unset.
func (s *Simple) Nullable() bool {
	return s.mapping != nil && s.mapping.Nullable
}

var (
	_ Property = (*Simple)(nil)
	_ Property = (*Association)(nil)
)

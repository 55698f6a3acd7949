package model

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/syssam/mapping"
)

// Entity is the metadata of a persistent entity: its name, supertype,
// owners and properties.
type Entity struct {
	ctx       *Context
	name      string
	parent    string
	belongsTo []string
	props     []Property
	byName    map[string]Property
}

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Context returns the mapping context the entity is registered in.
func (e *Entity) Context() *Context { return e.ctx }

// ParentName returns the name of the supertype, empty for root entities.
func (e *Entity) ParentName() string { return e.parent }

// Parent returns the supertype entity.
func (e *Entity) Parent() (*Entity, bool) {
	if e.parent == "" {
		return nil, false
	}
	return e.ctx.Entity(e.parent)
}

// Owners returns the names of the entities this entity belongs to.
func (e *Entity) Owners() []string {
	return append([]string(nil), e.belongsTo...)
}

// BelongsTo reports whether the entity, or one of its supertypes, declares
// that it belongs to owner.
func (e *Entity) BelongsTo(owner string) bool {
	for _, cur := range e.lineage() {
		if lo.Contains(cur.belongsTo, owner) {
			return true
		}
	}
	return false
}

// IsAssignableFrom reports whether other is this entity or one of its
// subtypes.
func (e *Entity) IsAssignableFrom(other *Entity) bool {
	if other == nil {
		return false
	}
	return lo.Contains(other.lineage(), e)
}

// AddProperty adds a property declared by this entity.
func (e *Entity) AddProperty(p Property) error {
	if e.ctx.Frozen() {
		return mapping.ErrFrozen
	}
	if p.Owner() != e {
		return mapping.NewSchemaError(e.name, p.Name(), "property is owned by another entity", nil)
	}
	if p.Name() == "" {
		return mapping.NewSchemaError(e.name, "", "property name is empty", nil)
	}
	if _, ok := e.byName[p.Name()]; ok {
		return mapping.NewSchemaError(e.name, p.Name(), "property is already declared", nil)
	}
	e.byName[p.Name()] = p
	e.props = append(e.props, p)
	return nil
}

// PropertyByName returns the property with the given name, declared by
// the entity or inherited from its supertypes.
func (e *Entity) PropertyByName(name string) (Property, bool) {
	for _, cur := range e.lineage() {
		if p, ok := cur.byName[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// Properties returns the properties declared by the entity, in
// declaration order.
func (e *Entity) Properties() []Property {
	return append([]Property(nil), e.props...)
}

// Associations returns the associations declared by the entity, in
// declaration order.
func (e *Entity) Associations() []*Association {
	return associations(e.props)
}

// String returns the entity name.
func (e *Entity) String() string { return e.name }

// allAssociations returns the declared and inherited associations.
func (e *Entity) allAssociations() []*Association {
	var all []*Association
	for _, cur := range e.lineage() {
		all = append(all, associations(cur.props)...)
	}
	return all
}

// lineage returns the entity followed by its supertypes. It stops at an
// unregistered parent or an inheritance cycle.
func (e *Entity) lineage() []*Entity {
	chain := []*Entity{e}
	for cur := e; cur.parent != ""; {
		next, ok := e.ctx.Entity(cur.parent)
		if !ok || lo.Contains(chain, next) {
			break
		}
		chain = append(chain, next)
		cur = next
	}
	return chain
}

func associations(props []Property) []*Association {
	return lo.FilterMap(props, func(p Property, _ int) (*Association, bool) {
		a, ok := p.(*Association)
		return a, ok
	})
}

var _ fmt.Stringer = (*Entity)(nil)

package model

import (
	"fmt"
	"sync/atomic"

	"github.com/syssam/mapping"
	"github.com/syssam/mapping/config"
	"github.com/syssam/mapping/schema/cascade"
	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/fetch"
	"github.com/syssam/mapping/schema/field"
)

// resolved marks the cascade cell as computed. It sits above the bits
// used by cascade.Set.
const resolved = 1 << 8

// Association is a property relating its owner to another entity, or to a
// collection of embedded components or values.
//
// Associations are created by the mapping builder and completed by a
// second pass that sets the associated entity, the referenced property
// and the owning side once every entity is known.
type Association struct {
	property
	kind       edge.Kind
	associated string
	referenced string
	owning     bool
	owningSet  bool
	// cascade holds the cascade.Set bits plus the resolved flag. It is
	// written once with a compare-and-swap from zero.
	cascade atomic.Uint32
}

// NewAssociation returns an association of owner. It is not added to the
// owner; call Entity.AddProperty for that.
func NewAssociation(owner *Entity, kind edge.Kind, name string, typ field.TypeInfo, m *config.Property) *Association {
	return &Association{
		property: newProperty(owner, name, typ, m),
		kind:     kind,
	}
}

// Kind returns the relationship kind.
func (a *Association) Kind() edge.Kind { return a.kind }

// IsOwningSide reports whether this side owns the relationship. It
// controls the default cascade behavior.
func (a *Association) IsOwningSide() bool { return a.owning }

// SetOwningSide sets the owning side. It can be called once, before the
// cascade operations are resolved.
func (a *Association) SetOwningSide(owning bool) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if a.owningSet {
		return fmt.Errorf("%w: %s", mapping.ErrOwningSideSet, a)
	}
	a.owning, a.owningSet = owning, true
	return nil
}

// SetAssociatedEntity sets the entity on the other side of the
// association. A nil entity clears it.
func (a *Association) SetAssociatedEntity(e *Entity) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if e == nil {
		a.associated = ""
		return nil
	}
	if e.ctx != a.ctx {
		return fmt.Errorf("%w: %q is registered in another mapping context", mapping.ErrUnknownEntity, e.name)
	}
	a.associated = e.name
	return nil
}

// AssociatedEntity returns the entity on the other side of the
// association, if resolved.
func (a *Association) AssociatedEntity() (*Entity, bool) {
	if a.associated == "" {
		return nil, false
	}
	return a.ctx.Entity(a.associated)
}

// SetReferencedPropertyName sets the name of the property on the
// associated entity pointing back to this association. An empty name
// makes the association unidirectional.
func (a *Association) SetReferencedPropertyName(name string) error {
	if err := a.mutable(); err != nil {
		return err
	}
	a.referenced = name
	return nil
}

// ReferencedPropertyName returns the name of the inverse property, empty
// for unidirectional associations.
func (a *Association) ReferencedPropertyName() string { return a.referenced }

// IsBidirectional reports whether both the associated entity and the
// referenced property are set.
func (a *Association) IsBidirectional() bool {
	_, ok := a.AssociatedEntity()
	return ok && a.referenced != ""
}

// InverseSide returns the association on the associated entity that
// points back to this one. It returns nil when the association is not
// bidirectional or the referenced property does not exist, and an
// *mapping.IllegalMappingError when the referenced property is not an
// association.
func (a *Association) InverseSide() (*Association, error) {
	if !a.IsBidirectional() {
		return nil, nil
	}
	target, _ := a.AssociatedEntity()
	p, ok := target.PropertyByName(a.referenced)
	if !ok {
		return nil, nil
	}
	inverse, ok := p.(*Association)
	if !ok {
		return nil, mapping.NewIllegalMappingError(a.owner, a.name, target.name, p.Name())
	}
	return inverse, nil
}

// CascadeOperations returns the operations this association cascades.
// The set is computed on first use from the cascade specification of the
// mapped form, or from the defaults when none is configured, and never
// changes afterwards.
func (a *Association) CascadeOperations() cascade.Set {
	if v := a.cascade.Load(); v&resolved != 0 {
		return cascade.Set(v &^ resolved)
	}
	a.cascade.CompareAndSwap(0, uint32(a.buildCascade())|resolved)
	return cascade.Set(a.cascade.Load() &^ resolved)
}

func (a *Association) buildCascade() cascade.Set {
	if spec, ok := a.mapping.CascadeSpec(); ok {
		return cascade.Parse(spec)
	}
	switch {
	case a.owning:
		return cascade.OwnerDefault
	// Non-owning bidirectional many-to-one associations point to a
	// shared parent and do not cascade unless configured.
	case a.kind == edge.ManyToOne && a.IsBidirectional():
		return cascade.None
	default:
		return cascade.ChildDefault
	}
}

// DoesCascade reports whether the association cascades any of the given
// operations. It is always true when the association cascades
// cascade.All.
func (a *Association) DoesCascade(ops ...cascade.Type) bool {
	return a.CascadeOperations().Any(ops...)
}

// IsEmbedded reports whether the association maps embedded components.
func (a *Association) IsEmbedded() bool { return a.kind.IsEmbedded() }

// IsBasic reports whether the association is a collection of values.
func (a *Association) IsBasic() bool { return a.kind.IsBasic() }

// IsCollection reports whether the association holds many elements.
func (a *Association) IsCollection() bool { return a.kind.IsCollection() }

// IsList reports whether the declared type is an ordered sequence, for
// which index based persistence applies.
func (a *Association) IsList() bool { return a.typ.IsList() }

// IsCircular reports whether the associated entity is the owner or one of
// its supertypes.
func (a *Association) IsCircular() bool {
	target, ok := a.AssociatedEntity()
	if !ok {
		return false
	}
	return target.IsAssignableFrom(a.Owner())
}

// FetchStrategy returns the fetch strategy of the mapped form.
func (a *Association) FetchStrategy() fetch.Type {
	return a.mapping.FetchStrategy()
}

// mutable returns an error if the association can no longer change.
func (a *Association) mutable() error {
	switch {
	case a.ctx.Frozen():
		return mapping.ErrFrozen
	case a.cascade.Load()&resolved != 0:
		return fmt.Errorf("%w: %s", mapping.ErrCascadeResolved, a)
	}
	return nil
}

package schema

import (
	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/field"
)

// Field is implemented by the field builders.
type Field interface {
	Descriptor() *field.Descriptor
}

// Edge is implemented by the association builders.
type Edge interface {
	Descriptor() *edge.Descriptor
}

// A Descriptor for entity configuration.
type Descriptor struct {
	Name      string                  // entity name.
	Parent    string                  // supertype entity, empty for root entities.
	BelongsTo []string                // owner entities.
	Fields    []*field.Descriptor     // simple properties.
	Edges     []*edge.Descriptor      // associations.
	Mappings  map[string]edge.Mapping // mapping block, keyed by association name.
	Comment   string                  // entity comment.
}

// Builder is the builder for entity definitions.
type Builder struct {
	desc *Descriptor
}

// Entity returns a new entity definition.
func Entity(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name}}
}

// Extends sets the supertype of the entity. Properties of the parent are
// visible through the entity and associations to the parent are circular.
func (b *Builder) Extends(parent string) *Builder {
	b.desc.Parent = parent
	return b
}

// BelongsTo declares the entities that own this one. Associations from an
// owner to this entity are the owning side of the relationship.
func (b *Builder) BelongsTo(owners ...string) *Builder {
	b.desc.BelongsTo = append(b.desc.BelongsTo, owners...)
	return b
}

// Fields appends simple properties to the entity.
func (b *Builder) Fields(fields ...Field) *Builder {
	for _, f := range fields {
		b.desc.Fields = append(b.desc.Fields, f.Descriptor())
	}
	return b
}

// Edges appends associations to the entity.
func (b *Builder) Edges(edges ...Edge) *Builder {
	for _, e := range edges {
		b.desc.Edges = append(b.desc.Edges, e.Descriptor())
	}
	return b
}

// Map adds an entry to the mapping block of the entity. The entry is
// merged over the mapped form declared on the association. Calling Map
// twice for the same association merges the entries.
func (b *Builder) Map(association string, m edge.Mapping) *Builder {
	if b.desc.Mappings == nil {
		b.desc.Mappings = make(map[string]edge.Mapping)
	}
	b.desc.Mappings[association] = b.desc.Mappings[association].Merge(m)
	return b
}

// Comment sets the comment of the entity.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the entity descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

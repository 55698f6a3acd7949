package edge

import (
	"fmt"

	"github.com/syssam/mapping/schema/fetch"
	"github.com/syssam/mapping/schema/field"
)

// A Descriptor for association configuration.
type Descriptor struct {
	Kind     Kind            // association kind.
	Name     string          // association name.
	Type     *field.TypeInfo // declared property type.
	Target   string          // associated entity, empty for basic collections.
	MappedBy string          // inverse property on Target.
	Owning   *bool           // explicit owning side, nil when derived.
	Mapping  Mapping         // mapped form.
	Comment  string          // association comment.
	Err      error
}

// Builder is the builder for associations.
type Builder struct {
	desc *Descriptor
}

// HasMany returns a one-to-many association to the target entity, declared
// as a list:
//
//	edge.HasMany("books", "Book").MappedBy("author")
func HasMany(name, target string) *Builder {
	return newBuilder(OneToMany, name, target, field.List)
}

// BelongsTo returns a many-to-one association to the target entity.
//
//	edge.BelongsTo("author", "Author")
func BelongsTo(name, target string) *Builder {
	return newBuilder(ManyToOne, name, target, field.Single)
}

// HasOne returns a one-to-one association to the target entity.
func HasOne(name, target string) *Builder {
	return newBuilder(OneToOne, name, target, field.Single)
}

// BelongsToMany returns a many-to-many association to the target entity,
// declared as a set.
func BelongsToMany(name, target string) *Builder {
	return newBuilder(ManyToMany, name, target, field.Set)
}

// Embed returns an embedded component association.
func Embed(name, target string) *Builder {
	return newBuilder(Embedded, name, target, field.Single)
}

// EmbedMany returns a collection of embedded components, declared as a list.
func EmbedMany(name, target string) *Builder {
	return newBuilder(EmbeddedCollection, name, target, field.List)
}

// Values returns a basic collection of value-typed elements, declared as
// a list:
//
//	edge.Values("tags", field.TypeString)
func Values(name, elem string) *Builder {
	b := newBuilder(Basic, name, "", field.List)
	b.desc.Type.Name = elem
	return b
}

func newBuilder(k Kind, name, target string, c field.Collection) *Builder {
	return &Builder{desc: &Descriptor{
		Kind:   k,
		Name:   name,
		Target: target,
		Type:   &field.TypeInfo{Name: target, Collection: c},
	}}
}

// As overrides the declared type of the association using the field type
// notation. For example, a one-to-many held in a set:
//
//	edge.HasMany("books", "Book").As("set<Book>")
func (b *Builder) As(typ string) *Builder {
	info, err := field.ParseType(typ)
	if err != nil {
		b.desc.Err = fmt.Errorf("edge %q: %w", b.desc.Name, err)
		return b
	}
	if info.IsCollection() != b.desc.Kind.IsCollection() {
		b.desc.Err = fmt.Errorf("edge %q: type %s does not fit a %s association", b.desc.Name, info, b.desc.Kind)
		return b
	}
	b.desc.Type = &info
	return b
}

// MappedBy sets the name of the property on the associated entity that
// points back to this one, making the association bidirectional.
func (b *Builder) MappedBy(ref string) *Builder {
	b.desc.MappedBy = ref
	return b
}

// Owning marks the association as the owning side (or not), overriding
// the side derived from belongsTo declarations.
func (b *Builder) Owning(owning bool) *Builder {
	b.desc.Owning = &owning
	return b
}

// Cascade sets the cascade specification, for example "all" or
// "save-update, refresh".
func (b *Builder) Cascade(spec string) *Builder {
	b.desc.Mapping.Cascade = &spec
	return b
}

// Fetch sets the fetch strategy.
func (b *Builder) Fetch(t fetch.Type) *Builder {
	b.desc.Mapping.Fetch = &t
	return b
}

// Eager is a shortcut for Fetch(fetch.Eager).
func (b *Builder) Eager() *Builder {
	return b.Fetch(fetch.Eager)
}

// Comment sets the comment of the association.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the schema.Edge interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

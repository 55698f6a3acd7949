package field

// Value type names used by the builders below.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeInt64  = "int64"
	TypeFloat  = "float64"
	TypeBool   = "bool"
	TypeTime   = "time"
	TypeBytes  = "bytes"
)

// A Descriptor for field configuration.
type Descriptor struct {
	Name     string    // field name.
	Info     *TypeInfo // field type info.
	Nullable bool      // nullable field.
	Comment  string    // field comment.
	Err      error
}

// Builder is the builder for simple (non-association) fields.
type Builder struct {
	desc *Descriptor
}

// String returns a new Field with type string.
func String(name string) *Builder { return Of(name, TypeString) }

// Int returns a new Field with type int.
func Int(name string) *Builder { return Of(name, TypeInt) }

// Int64 returns a new Field with type int64.
func Int64(name string) *Builder { return Of(name, TypeInt64) }

// Float returns a new Field with type float64.
func Float(name string) *Builder { return Of(name, TypeFloat) }

// Bool returns a new Field with type bool.
func Bool(name string) *Builder { return Of(name, TypeBool) }

// Time returns a new Field with type time.
func Time(name string) *Builder { return Of(name, TypeTime) }

// Bytes returns a new Field with type bytes.
func Bytes(name string) *Builder { return Of(name, TypeBytes) }

// Of returns a new Field with the given type notation, for example
// "decimal" or "[]string".
func Of(name, typ string) *Builder {
	info, err := ParseType(typ)
	return &Builder{desc: &Descriptor{
		Name: name,
		Info: &info,
		Err:  err,
	}}
}

// Nullable indicates that this field can be null.
func (b *Builder) Nullable() *Builder {
	b.desc.Nullable = true
	return b
}

// Comment sets the comment of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the schema.Field interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

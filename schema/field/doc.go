// Package field provides fluent builders for the simple (non-association)
// properties of an entity, and the TypeInfo used to describe the declared
// type of every property, associations included.
//
// # Field Types
//
//	field.String("title")
//	field.Int("pages")
//	field.Time("published_at").Nullable()
//	field.Of("price", "decimal")
//
// # Type Notation
//
// Types are written as an element name with an optional container:
//
//	Book             single value
//	[]Book           list (ordered, index based)
//	set<Book>        set
//	sorted-set<Book> sorted set
//	map<Book>        map keyed by string
//
// ParseType converts the notation into a TypeInfo:
//
//	info, err := field.ParseType("[]Book")
//	info.IsList() // true
//
// Collections of value types, for example "[]string", are mapped as basic
// collections by the edge package rather than as simple fields.
package field

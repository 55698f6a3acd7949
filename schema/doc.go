// Package schema provides the building blocks for defining entities in Go
// code, as an alternative to YAML or JSON mapping files:
//
//   - [field]: simple property builders and type notation
//   - [edge]: association builders and mapped forms
//   - [cascade]: cascade operations and specifications
//   - [fetch]: fetch strategies
//
// # Quick Start
//
//	author := schema.Entity("Author").
//		Fields(field.String("name")).
//		Edges(edge.HasMany("books", "Book").MappedBy("author"))
//
//	book := schema.Entity("Book").
//		BelongsTo("Author").
//		Fields(field.String("title")).
//		Edges(edge.BelongsTo("author", "Author").MappedBy("books"))
//
// Definitions are converted by load.NewSchema and resolved into metadata
// by the compiler/build package.
//
// # Mapping Blocks
//
// Map overrides the mapped form of an association declared elsewhere, for
// example one contributed by a parent definition:
//
//	schema.Entity("Author").
//		Map("books", edge.Mapping{Cascade: edge.Spec("save-update")})
package schema

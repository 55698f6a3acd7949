// Package edge provides fluent builders for defining the associations of
// an entity.
//
// # Association Kinds
//
//	// One-to-many: Author has many Books
//	edge.HasMany("books", "Book")
//
//	// Many-to-one: Book belongs to Author
//	edge.BelongsTo("author", "Author")
//
//	// One-to-one: Person has one Passport
//	edge.HasOne("passport", "Passport")
//
//	// Many-to-many: Author writes many Books, Book has many Authors
//	edge.BelongsToMany("books", "Book")
//
//	// Embedded component and collection of components
//	edge.Embed("address", "Address")
//	edge.EmbedMany("previousAddresses", "Address")
//
//	// Basic collection of values
//	edge.Values("tags", "string")
//
// # Bidirectional Associations
//
// MappedBy names the property on the associated entity that points back:
//
//	// Author schema
//	edge.HasMany("books", "Book").MappedBy("author")
//
//	// Book schema
//	edge.BelongsTo("author", "Author").MappedBy("books")
//
// When MappedBy is omitted the builder infers it if the associated entity
// has exactly one association pointing back to the owner.
//
// # Owning Side and Cascading
//
// The owning side is derived from the belongsTo declarations of the
// associated entity and can be forced with Owning. Owning sides cascade all
// operations by default; non-owning sides cascade persist, except
// bidirectional many-to-one associations, which cascade nothing. An
// explicit specification replaces the defaults:
//
//	edge.HasMany("books", "Book").Cascade("save-update, refresh")
//
// Recognized keywords are all, merge, save-update, persist, delete, remove
// and refresh. Other keywords are ignored.
//
// # Declared Type
//
// Collections default to a list for one-to-many, embedded and basic
// collections, and to a set for many-to-many. As overrides the container:
//
//	edge.HasMany("books", "Book").As("set<Book>")
//
// # Fetch Strategy
//
//	edge.BelongsTo("author", "Author").Eager()
package edge

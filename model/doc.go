// Package model holds the association metadata of a mapping: the entity
// registry (Context), entities, and their simple and association
// properties.
//
// Metadata is usually produced by the compiler/build package. Building it
// by hand follows the same two passes:
//
//	mc := model.NewContext()
//	author, _ := mc.AddEntity("Author", "")
//	book, _ := mc.AddEntity("Book", "", "Author")
//
//	books := model.NewAssociation(author, edge.OneToMany, "books",
//		field.TypeInfo{Name: "Book", Collection: field.List}, nil)
//	_ = author.AddProperty(books)
//
//	// Second pass, once every entity is known.
//	_ = books.SetAssociatedEntity(book)
//	_ = books.SetOwningSide(true)
//	mc.Freeze()
//
//	books.DoesCascade(cascade.Remove) // true, owning sides cascade all
//
// Associations answer cascade, direction and classification queries.
// Their cascade operations are computed once, on first use or by
// Context.Freeze, and never change afterwards.
package model

// Package mapping holds the shared error taxonomy of the association
// metadata model.
//
// The metadata itself lives in the model package and is built from schema
// definitions by the compiler/build package:
//
//	schemas, err := load.LoadFile("mapping.yaml")
//	if err != nil {
//		return err
//	}
//	b, err := build.New(build.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	mc, err := b.Build(ctx, schemas)
//	if err != nil {
//		return err
//	}
//	books, _ := mc.Association("Author", "books")
//	books.DoesCascade(cascade.Remove)
//
// Errors returned by the builder wrap one of the sentinel errors declared
// here, so callers can match them with errors.Is:
//
//	if errors.Is(err, mapping.ErrIllegalMapping) {
//		// abort bootstrap
//	}
package mapping

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-openapi/inflect"

	"github.com/syssam/mapping/model"
	"github.com/syssam/mapping/schema/cascade"
)

// writeInspect prints every entity followed by a table of its declared
// properties.
func writeInspect(w io.Writer, mc *model.Context) error {
	entities := mc.Entities()
	fmt.Fprintf(w, "%s, %s\n", count(len(entities), "entity"), count(len(mc.Associations()), "association"))
	for _, e := range entities {
		fmt.Fprintf(w, "\n%s\n", heading(e))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, p := range e.Properties() {
			switch p := p.(type) {
			case *model.Association:
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					p.Name(), p.Kind(), p.Type(), target(p), strings.Join(flags(p), ","),
					p.CascadeOperations(), p.FetchStrategy())
			case *model.Simple:
				nullable := ""
				if p.Nullable() {
					nullable = "nullable"
				}
				fmt.Fprintf(tw, "  %s\tfield\t%s\t\t%s\t\t\n", p.Name(), p.Type(), nullable)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// writeCascade prints the associations an operation propagates through.
func writeCascade(w io.Writer, entity string, op cascade.Type, targets []*model.Association) error {
	if _, err := fmt.Fprintf(w, "%s on %s cascades through %s\n", op, entity, count(len(targets), "association")); err != nil {
		return err
	}
	for _, a := range targets {
		if _, err := fmt.Fprintf(w, "  %s\t%s\n", a, target(a)); err != nil {
			return err
		}
	}
	return nil
}

func heading(e *model.Entity) string {
	var b strings.Builder
	b.WriteString(e.Name())
	if parent := e.ParentName(); parent != "" {
		b.WriteString(" extends ")
		b.WriteString(parent)
	}
	if owners := e.Owners(); len(owners) > 0 {
		b.WriteString(" belongs to ")
		b.WriteString(strings.Join(owners, ", "))
	}
	return b.String()
}

// target returns the associated entity, with the referenced property of
// bidirectional associations.
func target(a *model.Association) string {
	e, ok := a.AssociatedEntity()
	if !ok {
		return "-"
	}
	if ref := a.ReferencedPropertyName(); ref != "" {
		return e.Name() + "." + ref
	}
	return e.Name()
}

func flags(a *model.Association) []string {
	var fs []string
	if a.IsOwningSide() {
		fs = append(fs, "owning")
	}
	if a.IsCircular() {
		fs = append(fs, "circular")
	}
	if a.IsList() {
		fs = append(fs, "indexed")
	}
	return fs
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %s", n, inflect.Pluralize(noun))
}

// Package snapshot encodes a built mapping context with msgpack and
// restores it without reloading and resolving the schemas.
package snapshot

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/mapping"
	"github.com/syssam/mapping/config"
	"github.com/syssam/mapping/model"
	"github.com/syssam/mapping/schema/cascade"
	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/fetch"
	"github.com/syssam/mapping/schema/field"
)

// Version is the snapshot format version.
const Version = 1

// Graph is the encoded form of a mapping context.
type Graph struct {
	Version  int       `msgpack:"version"`
	Entities []*Entity `msgpack:"entities"`
}

// Entity is an encoded entity with its declared properties.
type Entity struct {
	Name       string      `msgpack:"name"`
	Parent     string      `msgpack:"parent,omitempty"`
	BelongsTo  []string    `msgpack:"belongs_to,omitempty"`
	Properties []*Property `msgpack:"properties,omitempty"`
}

// Property is an encoded property. Association is nil for simple
// properties.
type Property struct {
	Name        string       `msgpack:"name"`
	Type        string       `msgpack:"type"`
	Nullable    bool         `msgpack:"nullable,omitempty"`
	Association *Association `msgpack:"association,omitempty"`
}

// Association holds the resolved facts of an association. Cascade is the
// configured specification; Resolved records the computed operations and
// is checked when decoding.
type Association struct {
	Kind       string   `msgpack:"kind"`
	Target     string   `msgpack:"target,omitempty"`
	Referenced string   `msgpack:"referenced,omitempty"`
	Owning     bool     `msgpack:"owning"`
	Cascade    *string  `msgpack:"cascade,omitempty"`
	Fetch      string   `msgpack:"fetch,omitempty"`
	Resolved   []string `msgpack:"resolved,omitempty"`
}

// NewGraph returns the encoded form of mc.
func NewGraph(mc *model.Context) *Graph {
	g := &Graph{Version: Version}
	for _, e := range mc.Entities() {
		g.Entities = append(g.Entities, &Entity{
			Name:       e.Name(),
			Parent:     e.ParentName(),
			BelongsTo:  e.Owners(),
			Properties: lo.Map(e.Properties(), func(p model.Property, _ int) *Property { return newProperty(p) }),
		})
	}
	return g
}

func newProperty(p model.Property) *Property {
	sp := &Property{Name: p.Name(), Type: p.Type().String()}
	switch p := p.(type) {
	case *model.Simple:
		sp.Nullable = p.Nullable()
	case *model.Association:
		a := &Association{
			Kind:       p.Kind().String(),
			Referenced: p.ReferencedPropertyName(),
			Owning:     p.IsOwningSide(),
		}
		if ops := p.CascadeOperations(); !ops.Empty() {
			a.Resolved = lo.Map(ops.Types(), func(t cascade.Type, _ int) string { return t.String() })
		}
		if target, ok := p.AssociatedEntity(); ok {
			a.Target = target.Name()
		}
		if spec, ok := p.Mapping().CascadeSpec(); ok {
			a.Cascade = &spec
		}
		if f := p.FetchStrategy(); f != fetch.Lazy {
			a.Fetch = f.String()
		}
		sp.Association = a
	}
	return sp
}

// Encode returns the msgpack encoding of mc.
func Encode(mc *model.Context) ([]byte, error) {
	b, err := msgpack.Marshal(NewGraph(mc))
	if err != nil {
		return nil, fmt.Errorf("snapshot: encoding: %w", err)
	}
	return b, nil
}

// Decode restores a frozen mapping context from its msgpack encoding.
func Decode(data []byte) (*model.Context, error) {
	var g Graph
	if err := msgpack.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("snapshot: decoding: %w", err)
	}
	return g.Context()
}

// Context rebuilds the mapping context described by g. The cascade
// operations of each association are recomputed and must match the
// recorded ones.
func (g *Graph) Context() (*model.Context, error) {
	if g.Version != Version {
		return nil, fmt.Errorf("snapshot: unsupported version %d", g.Version)
	}
	mc := model.NewContext()
	for _, se := range g.Entities {
		if _, err := mc.AddEntity(se.Name, se.Parent, se.BelongsTo...); err != nil {
			return nil, err
		}
	}
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	type link struct {
		assoc *model.Association
		sa    *Association
	}
	var links []link
	for _, se := range g.Entities {
		e, _ := mc.Entity(se.Name)
		for _, sp := range se.Properties {
			typ, err := field.ParseType(sp.Type)
			if err != nil {
				return nil, mapping.NewSchemaError(se.Name, sp.Name, "invalid type in snapshot", err)
			}
			if sp.Association == nil {
				if err := e.AddProperty(model.NewSimple(e, sp.Name, typ, &config.Property{Nullable: sp.Nullable})); err != nil {
					return nil, err
				}
				continue
			}
			a, err := newAssociation(e, sp.Name, typ, sp.Association)
			if err != nil {
				return nil, err
			}
			if err := e.AddProperty(a); err != nil {
				return nil, err
			}
			links = append(links, link{assoc: a, sa: sp.Association})
		}
	}
	for _, l := range links {
		if l.sa.Target != "" {
			target, ok := mc.Entity(l.sa.Target)
			if !ok {
				return nil, mapping.NewSchemaError(l.assoc.Owner().Name(), l.assoc.Name(),
					fmt.Sprintf("unknown target entity %q", l.sa.Target), mapping.ErrUnknownEntity)
			}
			if err := l.assoc.SetAssociatedEntity(target); err != nil {
				return nil, err
			}
		}
		if err := l.assoc.SetReferencedPropertyName(l.sa.Referenced); err != nil {
			return nil, err
		}
		if err := l.assoc.SetOwningSide(l.sa.Owning); err != nil {
			return nil, err
		}
	}
	mc.Freeze()
	for _, l := range links {
		want := cascade.Of(lo.FilterMap(l.sa.Resolved, func(s string, _ int) (cascade.Type, bool) {
			t, err := cascade.ParseType(s)
			return t, err == nil
		})...)
		if got := l.assoc.CascadeOperations(); got != want {
			return nil, fmt.Errorf("snapshot: %s cascades %s, recorded %s", l.assoc, got, want)
		}
	}
	return mc, nil
}

func newAssociation(e *model.Entity, name string, typ field.TypeInfo, sa *Association) (*model.Association, error) {
	kind, err := edge.ParseKind(sa.Kind)
	if err != nil {
		return nil, mapping.NewSchemaError(e.Name(), name, "invalid kind in snapshot", err)
	}
	m := &config.Property{Cascade: sa.Cascade}
	if sa.Fetch != "" {
		if m.Fetch, err = fetch.Parse(sa.Fetch); err != nil {
			return nil, mapping.NewSchemaError(e.Name(), name, "invalid fetch strategy in snapshot", err)
		}
	}
	return model.NewAssociation(e, kind, name, typ, m), nil
}

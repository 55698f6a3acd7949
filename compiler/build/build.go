// Package build creates the association metadata of a mapping from loaded
// entity schemas.
//
// Build runs three passes. The first registers every entity and its
// properties. The second, once all entities are known, resolves the
// associated entity, the referenced property and the owning side of each
// association. The last verifies inverse sides concurrently and computes
// every cascade set before the context is frozen.
package build

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/mapping"
	"github.com/syssam/mapping/compiler/load"
	"github.com/syssam/mapping/config"
	"github.com/syssam/mapping/model"
	"github.com/syssam/mapping/schema/cascade"
	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/fetch"
	"github.com/syssam/mapping/schema/field"
)

// Builder builds mapping contexts.
type Builder struct {
	cfg *Config
}

// New returns a builder configured with the given options.
func New(opts ...Option) (*Builder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Builder{cfg: cfg}, nil
}

// Config returns the builder configuration.
func (b *Builder) Config() Config { return *b.cfg }

// Build creates, resolves, verifies and freezes the mapping context of the
// given schemas. Errors of the same pass are aggregated.
func (b *Builder) Build(ctx context.Context, schemas []*load.Schema) (*model.Context, error) {
	mc := model.NewContext()
	for _, s := range schemas {
		if _, err := mc.AddEntity(s.Name, s.Parent, s.BelongsTo...); err != nil {
			return nil, err
		}
	}
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	r := &resolver{cfg: b.cfg, mc: mc}
	var errs []error
	for _, s := range schemas {
		errs = append(errs, r.addProperties(s)...)
	}
	if err := mapping.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.resolve(); err != nil {
		return nil, err
	}
	if err := b.verify(ctx, mc); err != nil {
		return nil, err
	}
	mc.Freeze()
	b.cfg.Logger.Debug("mapping built",
		"entities", len(mc.Entities()),
		"associations", len(mc.Associations()),
	)
	return mc, nil
}

// pending is an association waiting for the second pass.
type pending struct {
	assoc    *model.Association
	target   string
	mappedBy string
	owning   *bool
}

type resolver struct {
	cfg     *Config
	mc      *model.Context
	pending []*pending
}

func (r *resolver) addProperties(s *load.Schema) []error {
	e, ok := r.mc.Entity(s.Name)
	if !ok {
		return []error{fmt.Errorf("%w: %q", mapping.ErrUnknownEntity, s.Name)}
	}
	var errs []error
	for _, f := range s.Fields {
		typ, err := field.ParseType(f.Type)
		if err != nil {
			errs = append(errs, mapping.NewSchemaError(s.Name, f.Name, "invalid field type", err))
			continue
		}
		if err := e.AddProperty(model.NewSimple(e, f.Name, typ, &config.Property{Nullable: f.Nullable})); err != nil {
			errs = append(errs, err)
		}
	}
	declared := make(map[string]bool, len(s.Associations))
	for _, a := range s.Associations {
		declared[a.Name] = true
		if err := r.addAssociation(e, a, s.Mapping[a.Name]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(s.Mapping)) {
		if !declared[name] {
			errs = append(errs, mapping.NewSchemaError(s.Name, name, "mapping block names an undeclared association", nil))
		}
	}
	return errs
}

func (r *resolver) addAssociation(e *model.Entity, a *load.Association, m *load.Mapping) error {
	kind, err := edge.ParseKind(a.Kind)
	if err != nil {
		return mapping.NewSchemaError(e.Name(), a.Name, "invalid association kind", err)
	}
	typ, target, err := r.typeOf(e.Name(), a, kind)
	if err != nil {
		return err
	}
	em := edge.Mapping{Cascade: a.Cascade}
	if a.Fetch != "" {
		f, err := fetch.Parse(a.Fetch)
		if err != nil {
			return mapping.NewSchemaError(e.Name(), a.Name, "invalid fetch strategy", err)
		}
		em.Fetch = &f
	}
	if m != nil {
		override := edge.Mapping{Cascade: m.Cascade}
		if m.Fetch != "" {
			f, err := fetch.Parse(m.Fetch)
			if err != nil {
				return mapping.NewSchemaError(e.Name(), a.Name, "invalid fetch strategy in mapping block", err)
			}
			override.Fetch = &f
		}
		em = em.Merge(override)
	}
	if em.Cascade != nil {
		if unknown := cascade.Unrecognized(*em.Cascade); len(unknown) > 0 {
			if r.cfg.StrictCascade {
				return mapping.NewConfigError("cascade", *em.Cascade,
					fmt.Sprintf("unknown cascade keywords %s on %s->%s", strings.Join(unknown, ", "), e.Name(), a.Name))
			}
			r.cfg.Logger.Debug("ignoring unknown cascade keywords",
				"association", e.Name()+"->"+a.Name,
				"keywords", unknown,
			)
		}
	}
	assoc := model.NewAssociation(e, kind, a.Name, typ, config.FromMapping(em))
	if err := e.AddProperty(assoc); err != nil {
		return err
	}
	r.pending = append(r.pending, &pending{
		assoc:    assoc,
		target:   target,
		mappedBy: a.MappedBy,
		owning:   a.Owning,
	})
	return nil
}

// typeOf returns the declared type of an association and the name of its
// associated entity.
func (r *resolver) typeOf(owner string, a *load.Association, kind edge.Kind) (field.TypeInfo, string, error) {
	var typ field.TypeInfo
	switch {
	case a.Type != "":
		t, err := field.ParseType(a.Type)
		if err != nil {
			return typ, "", mapping.NewSchemaError(owner, a.Name, "invalid association type", err)
		}
		typ = t
	case a.Target != "" && !kind.IsBasic():
		typ = field.TypeInfo{Name: a.Target, Collection: defaultCollection(kind)}
	case r.cfg.Inference && !kind.IsBasic():
		typ = field.TypeInfo{Name: inferTarget(a.Name, kind), Collection: defaultCollection(kind)}
		r.cfg.Logger.Debug("inferred association target",
			"association", owner+"->"+a.Name,
			"target", typ.Name,
		)
	default:
		return typ, "", mapping.NewSchemaError(owner, a.Name, "association type is missing", nil)
	}
	if kind.IsCollection() != typ.IsCollection() {
		return typ, "", mapping.NewSchemaError(owner, a.Name,
			fmt.Sprintf("type %s does not match kind %s", typ, kind), nil)
	}
	if kind.IsBasic() {
		if a.Target != "" {
			return typ, "", mapping.NewSchemaError(owner, a.Name, "basic associations have no target entity", nil)
		}
		return typ, "", nil
	}
	target := a.Target
	if target == "" {
		target = typ.Name
	}
	return typ, target, nil
}

// resolve runs the second pass.
func (r *resolver) resolve() error {
	var errs []error
	for _, p := range r.pending {
		if err := r.link(p); err != nil {
			errs = append(errs, err)
		}
	}
	if err := mapping.NewAggregateError(errs...); err != nil {
		return err
	}
	for _, p := range r.pending {
		if p.mappedBy == "" {
			continue
		}
		if inv, ok := r.mc.Association(p.target, p.mappedBy); ok {
			if err := r.mirror(p.assoc, inv); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if r.cfg.Inference {
		for _, p := range r.pending {
			if err := r.infer(p.assoc); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, p := range r.pending {
		owning := owningSide(p)
		if err := p.assoc.SetOwningSide(owning); err != nil {
			errs = append(errs, err)
			continue
		}
		r.cfg.Logger.Debug("resolved association",
			"association", p.assoc.String(),
			"kind", p.assoc.Kind().String(),
			"target", p.target,
			"referenced", p.assoc.ReferencedPropertyName(),
			"owning", owning,
		)
	}
	return mapping.NewAggregateError(errs...)
}

// link sets the associated entity and the explicit referenced property.
func (r *resolver) link(p *pending) error {
	a := p.assoc
	owner := a.Owner().Name()
	if a.IsBasic() {
		if p.mappedBy != "" {
			return mapping.NewAssociationError(owner, "", a.Name(), "basic associations cannot be mapped by another property", nil)
		}
		return nil
	}
	target, ok := r.mc.Entity(p.target)
	if !ok {
		return mapping.NewSchemaError(owner, a.Name(), fmt.Sprintf("unknown target entity %q", p.target), mapping.ErrUnknownEntity)
	}
	if err := a.SetAssociatedEntity(target); err != nil {
		return err
	}
	if p.mappedBy == "" {
		return nil
	}
	if a.IsEmbedded() {
		return mapping.NewAssociationError(owner, p.target, a.Name(), "embedded associations cannot be mapped by another property", nil)
	}
	return a.SetReferencedPropertyName(p.mappedBy)
}

// mirror makes inv reference a when inv has no referenced property and a
// is reachable by name from the entity inv points to.
func (r *resolver) mirror(a, inv *model.Association) error {
	if inv == a || inv.ReferencedPropertyName() != "" || !inv.Kind().IsEntity() {
		return nil
	}
	t, ok := inv.AssociatedEntity()
	if !ok {
		return nil
	}
	if p, found := t.PropertyByName(a.Name()); !found || p != model.Property(a) {
		return nil
	}
	return inv.SetReferencedPropertyName(a.Name())
}

// infer picks the referenced property of a unidirectional association
// among the associations of its target pointing back to the owner.
func (r *resolver) infer(a *model.Association) error {
	if !a.Kind().IsEntity() || a.ReferencedPropertyName() != "" {
		return nil
	}
	target, ok := a.AssociatedEntity()
	if !ok {
		return nil
	}
	candidates := lo.Filter(inherited(target), func(c *model.Association, _ int) bool {
		if c == a || !a.Kind().Pairs(c.Kind()) {
			return false
		}
		if ref := c.ReferencedPropertyName(); ref != "" && ref != a.Name() {
			return false
		}
		t, ok := c.AssociatedEntity()
		return ok && t.IsAssignableFrom(a.Owner())
	})
	switch len(candidates) {
	case 0:
		return nil
	case 1:
	default:
		r.cfg.Logger.Warn("ambiguous referenced property, association left unidirectional",
			"association", a.String(),
			"candidates", lo.Map(candidates, func(c *model.Association, _ int) string { return c.String() }),
		)
		return nil
	}
	inv := candidates[0]
	if err := a.SetReferencedPropertyName(inv.Name()); err != nil {
		return err
	}
	r.cfg.Logger.Debug("inferred referenced property",
		"association", a.String(),
		"inverse", inv.String(),
	)
	return r.mirror(a, inv)
}

// verify checks the inverse side of every association, one goroutine per
// entity, and computes the cascade sets.
func (b *Builder) verify(ctx context.Context, mc *model.Context) error {
	entities := mc.Entities()
	errs := make([][]error, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i, e := range entities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			errs[i] = b.verifyEntity(e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return mapping.NewAggregateError(lo.Flatten(errs)...)
}

func (b *Builder) verifyEntity(e *model.Entity) []error {
	var errs []error
	for _, a := range e.Associations() {
		inv, err := a.InverseSide()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		target := ""
		if t, ok := a.AssociatedEntity(); ok {
			target = t.Name()
		}
		switch ref := a.ReferencedPropertyName(); {
		case ref != "" && inv == nil:
			errs = append(errs, mapping.NewAssociationError(e.Name(), target, a.Name(),
				fmt.Sprintf("referenced property %q does not exist", ref), nil))
			continue
		case inv == nil:
		case !a.Kind().Pairs(inv.Kind()):
			errs = append(errs, mapping.NewAssociationError(e.Name(), target, a.Name(),
				fmt.Sprintf("%s %s cannot be the inverse of a %s association", inv.Kind(), inv, a.Kind()), nil))
			continue
		case !pointsTo(inv, a.Owner()):
			errs = append(errs, mapping.NewAssociationError(e.Name(), target, a.Name(),
				fmt.Sprintf("inverse side %s does not point back to %s", inv, e.Name()), nil))
			continue
		case inv.ReferencedPropertyName() != "" && inv.ReferencedPropertyName() != a.Name():
			errs = append(errs, mapping.NewAssociationError(e.Name(), target, a.Name(),
				fmt.Sprintf("inverse side %s is mapped by %q", inv, inv.ReferencedPropertyName()), nil))
			continue
		case a.IsOwningSide() && inv.IsOwningSide():
			b.cfg.Logger.Warn("both sides of a bidirectional association are owning",
				"association", a.String(),
				"inverse", inv.String(),
			)
		}
		b.cfg.Logger.Debug("cascade resolved",
			"association", a.String(),
			"cascade", a.CascadeOperations().String(),
			"fetch", a.FetchStrategy().String(),
		)
	}
	return errs
}

// owningSide decides the owning side: embedded and basic associations own
// their elements, an explicit setting wins, then the owner of a belongsTo
// declaration, then unidirectional one-to-many associations.
func owningSide(p *pending) bool {
	a := p.assoc
	switch {
	case a.IsEmbedded() || a.IsBasic():
		return true
	case p.owning != nil:
		return *p.owning
	}
	if target, ok := a.AssociatedEntity(); ok && belongsTo(target, a.Owner()) {
		return true
	}
	return a.Kind() == edge.OneToMany && !a.IsBidirectional()
}

// belongsTo reports whether e belongs to owner or one of its supertypes.
func belongsTo(e, owner *model.Entity) bool {
	for o, ok := owner, true; ok; o, ok = o.Parent() {
		if e.BelongsTo(o.Name()) {
			return true
		}
	}
	return false
}

func pointsTo(a *model.Association, e *model.Entity) bool {
	t, ok := a.AssociatedEntity()
	return ok && t.IsAssignableFrom(e)
}

// inherited returns the associations declared by e and its supertypes.
func inherited(e *model.Entity) []*model.Association {
	var all []*model.Association
	for o, ok := e, true; ok; o, ok = o.Parent() {
		all = append(all, o.Associations()...)
	}
	return all
}

func defaultCollection(k edge.Kind) field.Collection {
	switch k {
	case edge.ManyToMany:
		return field.Set
	case edge.OneToMany, edge.EmbeddedCollection, edge.Basic:
		return field.List
	}
	return field.Single
}

func inferTarget(name string, k edge.Kind) string {
	if k.IsCollection() {
		name = inflect.Singularize(name)
	}
	return inflect.Camelize(name)
}

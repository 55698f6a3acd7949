package model

import (
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/syssam/mapping"
	"github.com/syssam/mapping/schema/cascade"
)

// Context is the registry of the entities of one mapping. Entities refer
// to each other by name and resolve those names through their Context.
//
// A Context is populated by a single goroutine during bootstrap. After
// Freeze it is read-only and safe for concurrent use.
type Context struct {
	entities map[string]*Entity
	order    []*Entity
	frozen   atomic.Bool
}

// NewContext returns an empty mapping context.
func NewContext() *Context {
	return &Context{entities: make(map[string]*Entity)}
}

// AddEntity registers a new entity. Parent names the supertype entity and
// owners the entities this one belongs to; neither has to be registered
// yet, Validate checks them once all entities are known.
func (c *Context) AddEntity(name, parent string, owners ...string) (*Entity, error) {
	if c.Frozen() {
		return nil, mapping.ErrFrozen
	}
	if name == "" {
		return nil, mapping.NewSchemaError("", "", "entity name is empty", nil)
	}
	if _, ok := c.entities[name]; ok {
		return nil, mapping.NewSchemaError(name, "", "entity is already registered", nil)
	}
	e := &Entity{
		ctx:       c,
		name:      name,
		parent:    parent,
		belongsTo: lo.Uniq(owners),
		byName:    make(map[string]Property),
	}
	c.entities[name] = e
	c.order = append(c.order, e)
	return e, nil
}

// Entity returns the entity registered under name.
func (c *Context) Entity(name string) (*Entity, bool) {
	e, ok := c.entities[name]
	return e, ok
}

// Entities returns all entities in registration order.
func (c *Context) Entities() []*Entity {
	return append([]*Entity(nil), c.order...)
}

// Association returns the association name declared on, or inherited by,
// the given entity.
func (c *Context) Association(entity, name string) (*Association, bool) {
	e, ok := c.Entity(entity)
	if !ok {
		return nil, false
	}
	p, ok := e.PropertyByName(name)
	if !ok {
		return nil, false
	}
	a, ok := p.(*Association)
	return a, ok
}

// Associations returns the associations declared by all entities, in
// registration order.
func (c *Context) Associations() []*Association {
	var all []*Association
	for _, e := range c.order {
		all = append(all, e.Associations()...)
	}
	return all
}

// Validate checks the references between entities: parents and owners
// must be registered and inheritance must be acyclic.
func (c *Context) Validate() error {
	var errs []error
	for _, e := range c.order {
		if e.parent != "" {
			if _, ok := c.entities[e.parent]; !ok {
				errs = append(errs, mapping.NewSchemaError(e.name, "", fmt.Sprintf("unknown parent entity %q", e.parent), mapping.ErrUnknownEntity))
			}
		}
		for _, owner := range e.belongsTo {
			if _, ok := c.entities[owner]; !ok {
				errs = append(errs, mapping.NewSchemaError(e.name, "", fmt.Sprintf("belongsTo unknown entity %q", owner), mapping.ErrUnknownEntity))
			}
		}
	}
	for _, e := range c.order {
		seen := map[string]bool{e.name: true}
		for p := e.parent; p != ""; {
			if seen[p] {
				errs = append(errs, mapping.NewSchemaError(e.name, "", fmt.Sprintf("inheritance cycle through %q", p), nil))
				break
			}
			seen[p] = true
			parent, ok := c.entities[p]
			if !ok {
				break
			}
			p = parent.parent
		}
	}
	return mapping.NewAggregateError(errs...)
}

// Freeze computes the cascade operations of every association and marks
// the context read-only. Subsequent mutations fail with mapping.ErrFrozen.
func (c *Context) Freeze() {
	for _, a := range c.Associations() {
		a.CascadeOperations()
	}
	c.frozen.Store(true)
}

// Frozen reports whether the context was frozen.
func (c *Context) Frozen() bool {
	return c.frozen.Load()
}

// CascadeTargets returns the associations an operation on the given
// entity propagates through, breadth first. Associations are followed
// into their associated entity once per entity, and circular associations
// are reported but not followed.
func (c *Context) CascadeTargets(entity string, op cascade.Type) ([]*Association, error) {
	root, ok := c.Entity(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %q", mapping.ErrUnknownEntity, entity)
	}
	var (
		targets []*Association
		queue   = []*Entity{root}
		visited = map[string]bool{root.name: true}
	)
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		for _, a := range e.allAssociations() {
			if a.IsBasic() || !a.DoesCascade(op) {
				continue
			}
			targets = append(targets, a)
			next, ok := a.AssociatedEntity()
			if !ok || a.IsCircular() || visited[next.name] {
				continue
			}
			visited[next.name] = true
			queue = append(queue, next)
		}
	}
	return targets, nil
}

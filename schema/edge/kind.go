package edge

import (
	"fmt"
	"strings"
)

// Kind is the relationship kind of an association.
type Kind uint8

// Association kinds.
const (
	Unk                Kind = iota // Unknown.
	OneToMany                      // One to many / has many.
	ManyToOne                      // Many to one / belongs to.
	OneToOne                       // One to one / has one.
	ManyToMany                     // Many to many.
	Embedded                       // Embedded component.
	EmbeddedCollection             // Collection of embedded components.
	Basic                          // Collection of value-typed elements.
)

// String returns the kind name.
func (k Kind) String() string {
	s := "unknown"
	switch k {
	case OneToMany:
		s = "one-to-many"
	case ManyToOne:
		s = "many-to-one"
	case OneToOne:
		s = "one-to-one"
	case ManyToMany:
		s = "many-to-many"
	case Embedded:
		s = "embedded"
	case EmbeddedCollection:
		s = "embedded-collection"
	case Basic:
		s = "basic"
	}
	return s
}

// ParseKind parses a kind name. Case, dashes and underscores are ignored
// and the GORM-style aliases hasMany, belongsTo and hasOne are accepted.
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "onetomany", "hasmany", "o2m":
		return OneToMany, nil
	case "manytoone", "belongsto", "m2o":
		return ManyToOne, nil
	case "onetoone", "hasone", "o2o":
		return OneToOne, nil
	case "manytomany", "m2m":
		return ManyToMany, nil
	case "embedded":
		return Embedded, nil
	case "embeddedcollection", "embeddedmany":
		return EmbeddedCollection, nil
	case "basic", "basiccollection":
		return Basic, nil
	}
	return Unk, fmt.Errorf("edge: unknown association kind %q", s)
}

// IsEmbedded reports whether the kind maps embedded components.
func (k Kind) IsEmbedded() bool { return k == Embedded || k == EmbeddedCollection }

// IsBasic reports whether the kind maps a collection of value types.
func (k Kind) IsBasic() bool { return k == Basic }

// IsCollection reports whether the association holds many elements.
func (k Kind) IsCollection() bool {
	switch k {
	case OneToMany, ManyToMany, EmbeddedCollection, Basic:
		return true
	}
	return false
}

// IsEntity reports whether the association points to another entity
// that can have an inverse side.
func (k Kind) IsEntity() bool {
	switch k {
	case OneToMany, ManyToOne, OneToOne, ManyToMany:
		return true
	}
	return false
}

// Pairs reports whether an association of kind k can have an inverse of
// kind other.
func (k Kind) Pairs(other Kind) bool {
	switch k {
	case OneToMany:
		return other == ManyToOne
	case ManyToOne:
		return other == OneToMany || other == OneToOne
	case OneToOne:
		return other == OneToOne || other == ManyToOne
	case ManyToMany:
		return other == ManyToMany
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

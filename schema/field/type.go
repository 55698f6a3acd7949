package field

import (
	"fmt"
	"strings"
)

// Collection describes the container shape of a property type.
type Collection uint8

// Collection kinds.
const (
	Single    Collection = iota // Not a collection.
	List                        // Ordered sequence, index based.
	Set                         // Unordered, unique elements.
	SortedSet                   // Ordered by element value, unique elements.
	Map                         // Keyed by string.
)

// String returns the collection name.
func (c Collection) String() string {
	s := "single"
	switch c {
	case List:
		s = "list"
	case Set:
		s = "set"
	case SortedSet:
		s = "sorted-set"
	case Map:
		s = "map"
	}
	return s
}

// TypeInfo holds the declared type of a property: the element type name
// (an entity name or a value type such as "string") and its container.
type TypeInfo struct {
	Name       string     `json:"name,omitempty"`
	Collection Collection `json:"collection,omitempty"`
}

// IsList reports whether the type is an ordered sequence.
func (t TypeInfo) IsList() bool { return t.Collection == List }

// IsCollection reports whether the type holds more than one element.
func (t TypeInfo) IsCollection() bool { return t.Collection != Single }

// Valid reports whether the type has an element name.
func (t TypeInfo) Valid() bool { return t.Name != "" }

// String returns the type in the notation accepted by ParseType.
func (t TypeInfo) String() string {
	switch t.Collection {
	case List:
		return "[]" + t.Name
	case Set, SortedSet, Map:
		return t.Collection.String() + "<" + t.Name + ">"
	}
	return t.Name
}

// ParseType parses a type notation:
//
//	Book             single value
//	[]Book           list
//	list<Book>       list
//	set<Book>        set
//	sorted-set<Book> sorted set
//	map<Book>        map keyed by string
func ParseType(s string) (TypeInfo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeInfo{}, fmt.Errorf("field: empty type")
	}
	if name, ok := strings.CutPrefix(s, "[]"); ok {
		return typeOf(s, name, List)
	}
	open := strings.IndexByte(s, '<')
	if open < 0 {
		if strings.ContainsAny(s, "<>[] ") {
			return TypeInfo{}, fmt.Errorf("field: malformed type %q", s)
		}
		return TypeInfo{Name: s}, nil
	}
	if !strings.HasSuffix(s, ">") {
		return TypeInfo{}, fmt.Errorf("field: malformed type %q", s)
	}
	var c Collection
	switch strings.ToLower(s[:open]) {
	case "list":
		c = List
	case "set":
		c = Set
	case "sorted-set", "sortedset":
		c = SortedSet
	case "map":
		c = Map
	default:
		return TypeInfo{}, fmt.Errorf("field: unknown collection %q in type %q", s[:open], s)
	}
	return typeOf(s, s[open+1:len(s)-1], c)
}

func typeOf(s, name string, c Collection) (TypeInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "<>[] ") {
		return TypeInfo{}, fmt.Errorf("field: malformed type %q", s)
	}
	return TypeInfo{Name: name, Collection: c}, nil
}

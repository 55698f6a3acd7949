// Package load decodes entity schemas from mapping files and converts
// schema definitions written with the Go DSL into the same form.
package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/mapping/schema"
	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/field"
)

// Document is the root of a mapping file.
type Document struct {
	Entities []*Schema `json:"entities" yaml:"entities"`
}

// Schema represents an entity loaded from a mapping file or a schema
// definition.
type Schema struct {
	Name         string              `json:"name" yaml:"name"`
	Parent       string              `json:"parent,omitempty" yaml:"parent,omitempty"`
	BelongsTo    []string            `json:"belongsTo,omitempty" yaml:"belongsTo,omitempty"`
	Fields       []*Field            `json:"fields,omitempty" yaml:"fields,omitempty"`
	Associations []*Association      `json:"associations,omitempty" yaml:"associations,omitempty"`
	Mapping      map[string]*Mapping `json:"mapping,omitempty" yaml:"mapping,omitempty"`
	Comment      string              `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Field represents a simple property.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Comment  string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Association represents an association. Kind, Type and Fetch hold the
// textual forms accepted by edge.ParseKind, field.ParseType and
// fetch.Parse.
type Association struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     string  `json:"kind" yaml:"kind"`
	Type     string  `json:"type,omitempty" yaml:"type,omitempty"`
	Target   string  `json:"target,omitempty" yaml:"target,omitempty"`
	MappedBy string  `json:"mappedBy,omitempty" yaml:"mappedBy,omitempty"`
	Owning   *bool   `json:"owning,omitempty" yaml:"owning,omitempty"`
	Cascade  *string `json:"cascade,omitempty" yaml:"cascade,omitempty"`
	Fetch    string  `json:"fetch,omitempty" yaml:"fetch,omitempty"`
	Comment  string  `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Mapping is an entry of an entity mapping block. It overrides the mapped
// form declared on the association with the same name.
type Mapping struct {
	Cascade *string `json:"cascade,omitempty" yaml:"cascade,omitempty"`
	Fetch   string  `json:"fetch,omitempty" yaml:"fetch,omitempty"`
}

// NewSchema creates a loaded schema from an entity descriptor. It returns
// an error if one of the field or association descriptors contains an
// error.
func NewSchema(d *schema.Descriptor) (*Schema, error) {
	s := &Schema{
		Name:      d.Name,
		Parent:    d.Parent,
		BelongsTo: append([]string(nil), d.BelongsTo...),
		Comment:   d.Comment,
	}
	for _, fd := range d.Fields {
		f, err := NewField(fd)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", d.Name, err)
		}
		s.Fields = append(s.Fields, f)
	}
	for _, ed := range d.Edges {
		a, err := NewAssociation(ed)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", d.Name, err)
		}
		s.Associations = append(s.Associations, a)
	}
	for name, m := range d.Mappings {
		if s.Mapping == nil {
			s.Mapping = make(map[string]*Mapping)
		}
		s.Mapping[name] = newMapping(m)
	}
	return s, nil
}

// NewField creates a loaded field from a field descriptor.
func NewField(fd *field.Descriptor) (*Field, error) {
	if fd.Err != nil {
		return nil, fmt.Errorf("field %q: %w", fd.Name, fd.Err)
	}
	if fd.Info == nil {
		return nil, fmt.Errorf("missing type info for field %q", fd.Name)
	}
	return &Field{
		Name:     fd.Name,
		Type:     fd.Info.String(),
		Nullable: fd.Nullable,
		Comment:  fd.Comment,
	}, nil
}

// NewAssociation creates a loaded association from an edge descriptor.
func NewAssociation(ed *edge.Descriptor) (*Association, error) {
	if ed.Err != nil {
		return nil, ed.Err
	}
	a := &Association{
		Name:     ed.Name,
		Kind:     ed.Kind.String(),
		Target:   ed.Target,
		MappedBy: ed.MappedBy,
		Owning:   ed.Owning,
		Comment:  ed.Comment,
	}
	if ed.Type != nil {
		a.Type = ed.Type.String()
	}
	m := newMapping(ed.Mapping)
	a.Cascade, a.Fetch = m.Cascade, m.Fetch
	return a, nil
}

func newMapping(m edge.Mapping) *Mapping {
	lm := &Mapping{Cascade: m.Cascade}
	if m.Fetch != nil {
		lm.Fetch = strings.ToLower(m.Fetch.String())
	}
	return lm
}

// ParseYAML decodes a YAML mapping document. Unknown keys are rejected.
func ParseYAML(data []byte) ([]*Schema, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("load: decoding yaml: %w", err)
	}
	return doc.Entities, nil
}

// ParseJSON decodes a JSON mapping document. Unknown keys are rejected.
func ParseJSON(data []byte) ([]*Schema, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("load: decoding json: %w", err)
	}
	return doc.Entities, nil
}

// LoadFile reads a mapping file. The format is chosen by the extension:
// .yaml, .yml or .json.
func LoadFile(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("load: unsupported mapping file extension %q", ext)
	}
}

// MarshalYAML encodes schemas as a YAML mapping document.
func MarshalYAML(schemas []*Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Entities: schemas}); err != nil {
		return nil, fmt.Errorf("load: encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("load: encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

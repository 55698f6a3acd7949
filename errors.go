package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for mapping configuration failures.
var (
	// ErrIllegalMapping is returned when the resolved mapping is inconsistent,
	// for example when the inverse side of an association is a plain field.
	ErrIllegalMapping = errors.New("mapping: illegal mapping")

	// ErrInvalidSchema indicates an entity or property definition error.
	ErrInvalidSchema = errors.New("mapping: invalid schema")

	// ErrInvalidAssociation indicates an association definition error.
	ErrInvalidAssociation = errors.New("mapping: invalid association")

	// ErrInvalidConfig indicates an invalid builder option or configuration value.
	ErrInvalidConfig = errors.New("mapping: invalid configuration")

	// ErrUnknownEntity is returned when an entity name is not registered
	// in the mapping context.
	ErrUnknownEntity = errors.New("mapping: unknown entity")

	// ErrFrozen is returned when metadata is modified after the mapping
	// context was frozen.
	ErrFrozen = errors.New("mapping: metadata is frozen")

	// ErrOwningSideSet is returned when the owning side of an association
	// is set more than once.
	ErrOwningSideSet = errors.New("mapping: owning side already set")

	// ErrCascadeResolved is returned when the owning side of an association
	// is set after its cascade operations were computed.
	ErrCascadeResolved = errors.New("mapping: cascade operations already resolved")
)

// IllegalMappingError is returned when an association points to an inverse
// side that is not itself an association.
type IllegalMappingError struct {
	Owner    string // Owner entity of the association.
	Property string // Association name.
	Entity   string // Associated entity.
	Inverse  string // Property on the associated entity.
}

// Error returns the error string.
func (e *IllegalMappingError) Error() string {
	return fmt.Sprintf(
		"mapping: the inverse side [%s.%s] of the association [%s.%s] is not valid. "+
			"Associations can only map to other entities and collection types",
		e.Entity, e.Inverse, e.Owner, e.Property,
	)
}

// Is reports whether the target matches ErrIllegalMapping.
func (e *IllegalMappingError) Is(target error) bool {
	return target == ErrIllegalMapping
}

// Path returns the inverse path in "Entity.property" form.
func (e *IllegalMappingError) Path() string {
	return e.Entity + "." + e.Inverse
}

// NewIllegalMappingError returns a new IllegalMappingError.
func NewIllegalMappingError(owner, property, entity, inverse string) *IllegalMappingError {
	return &IllegalMappingError{Owner: owner, Property: property, Entity: entity, Inverse: inverse}
}

// IsIllegalMapping returns true if the error is an IllegalMappingError.
func IsIllegalMapping(err error) bool {
	if err == nil {
		return false
	}
	var e *IllegalMappingError
	return errors.As(err, &e) || errors.Is(err, ErrIllegalMapping)
}

// SchemaError represents an entity or property definition error.
type SchemaError struct {
	Entity   string // Entity name
	Property string // Property name (if applicable)
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("mapping: schema error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(entity, property, message string, cause error) *SchemaError {
	return &SchemaError{
		Entity:   entity,
		Property: property,
		Message:  message,
		Cause:    cause,
	}
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e)
}

// AssociationError represents an association/relationship error.
type AssociationError struct {
	From        string
	To          string
	Association string
	Message     string
	Cause       error
}

// Error implements the error interface.
func (e *AssociationError) Error() string {
	var b strings.Builder
	b.WriteString("mapping: association error")
	if e.Association != "" {
		b.WriteString(" on ")
		b.WriteString(e.Association)
	}
	if e.From != "" && e.To != "" {
		b.WriteString(" (")
		b.WriteString(e.From)
		b.WriteString(" -> ")
		b.WriteString(e.To)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *AssociationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidAssociation.
func (e *AssociationError) Is(target error) bool {
	return target == ErrInvalidAssociation
}

// NewAssociationError creates a new AssociationError.
func NewAssociationError(from, to, association, message string, cause error) *AssociationError {
	return &AssociationError{
		From:        from,
		To:          to,
		Association: association,
		Message:     message,
		Cause:       cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("mapping: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("mapping: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// AggregateError collects the errors of independent checks.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("mapping: %d errors occurred:\n\t* %s", len(e.Errors), strings.Join(msgs, "\n\t* "))
}

// Unwrap returns the collected errors for errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns nil for no errors, the error itself for a
// single error, and an AggregateError otherwise. Nil errors are dropped.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

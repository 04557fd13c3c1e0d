package repository

import (
	"fmt"
	"time"
)

// Field describes a single queryable entity property.
type Field struct {
	// Column is the database column backing the property.
	Column string

	// Queryable marks whether the property may appear in filter conditions
	// and order-by clauses.
	Queryable bool
}

// Schema is an explicit per-entity field registry: table name, primary key
// column and a mapping of API property names to columns. Each entity supplies
// its own Schema so the repository never has to introspect struct types at
// runtime.
type Schema struct {
	Table         string
	PrimaryColumn string
	Fields        map[string]Field
}

// Column resolves a property name to its queryable column. The boolean is
// false for unknown or non-queryable properties.
func (s Schema) Column(field string) (string, bool) {
	f, ok := s.Fields[field]
	if !ok || !f.Queryable {
		return "", false
	}
	return f.Column, true
}

// Validate checks the schema descriptor for construction-time mistakes.
func (s Schema) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("schema table name is required")
	}
	if s.PrimaryColumn == "" {
		return fmt.Errorf("schema primary column is required")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema for table %s has no fields", s.Table)
	}
	return nil
}

// Auditable is implemented by entities that carry audit columns. The
// repository stamps actor identity and timestamps on create and update.
type Auditable interface {
	StampCreated(actor string, at time.Time)
	StampUpdated(actor string, at time.Time)
}

// FormatActor renders an actor identity string as "name | email". Both parts
// empty yields an empty string.
func FormatActor(name, email string) string {
	if name == "" && email == "" {
		return ""
	}
	return fmt.Sprintf("%s | %s", name, email)
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaColumn(t *testing.T) {
	schema := Schema{
		Table:         "books",
		PrimaryColumn: "id",
		Fields: map[string]Field{
			"title":  {Column: "title", Queryable: true},
			"secret": {Column: "secret", Queryable: false},
		},
	}

	col, ok := schema.Column("title")
	assert.True(t, ok)
	assert.Equal(t, "title", col)

	_, ok = schema.Column("secret")
	assert.False(t, ok, "non-queryable fields must not resolve")

	_, ok = schema.Column("unknown")
	assert.False(t, ok)
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr bool
	}{
		{
			name: "valid",
			schema: Schema{
				Table:         "books",
				PrimaryColumn: "id",
				Fields:        map[string]Field{"id": {Column: "id", Queryable: true}},
			},
		},
		{
			name:    "missing table",
			schema:  Schema{PrimaryColumn: "id", Fields: map[string]Field{"id": {Column: "id"}}},
			wantErr: true,
		},
		{
			name:    "missing primary column",
			schema:  Schema{Table: "books", Fields: map[string]Field{"id": {Column: "id"}}},
			wantErr: true,
		},
		{
			name:    "no fields",
			schema:  Schema{Table: "books", PrimaryColumn: "id"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatActor(t *testing.T) {
	assert.Equal(t, "Jane Doe | jane@example.com", FormatActor("Jane Doe", "jane@example.com"))
	assert.Equal(t, " | jane@example.com", FormatActor("", "jane@example.com"))
	assert.Equal(t, "Jane Doe | ", FormatActor("Jane Doe", ""))
	assert.Empty(t, FormatActor("", ""))
}

package repository

import (
	"context"

	"github.com/bookvault/bookvault/pkg/query"
)

// PageRequest describes a paginated query over an entity collection.
type PageRequest struct {
	// Filter is a filter DSL string; empty means "match all".
	Filter string

	// OrderBy is the entity property to sort on. Defaults to "id".
	OrderBy string

	// Page is 1-based. Values below 1 are normalized to 1.
	Page int

	// PageSize defaults to 20 when not positive.
	PageSize int

	// Descending flips the sort direction.
	Descending bool
}

// Repository defines the generic data-access contract. Reads that miss return
// (nil, nil) rather than an error; translating absence into NotFound is the
// service layer's concern.
type Repository[T any] interface {
	// Create persists item, stamping creation metadata when the entity is
	// Auditable, and returns the persisted form including store-assigned
	// fields.
	Create(ctx context.Context, item *T, actorName, actorEmail string) (*T, error)

	// GetSingleByID does a point lookup by primary key.
	GetSingleByID(ctx context.Context, id string) (*T, error)

	// GetSingleByConditions returns the first entity satisfying the AND of
	// conditions.
	GetSingleByConditions(ctx context.Context, conditions []query.Condition) (*T, error)

	// CountByConditions counts rows satisfying the AND of conditions.
	CountByConditions(ctx context.Context, conditions []query.Condition) (int64, error)

	// GetAll returns the full unfiltered collection. Unbounded; callers are
	// responsible for not using it on large tables.
	GetAll(ctx context.Context) ([]T, error)

	// GetAllByConditions returns all rows satisfying the AND of conditions.
	GetAllByConditions(ctx context.Context, conditions []query.Condition) ([]T, error)

	// Update upserts by primary key, stamping update metadata when the entity
	// is Auditable.
	Update(ctx context.Context, item *T, actorName, actorEmail string) (*T, error)

	// Delete removes the row by primary key. Hard delete.
	Delete(ctx context.Context, id string) error

	// GetPageData returns one page of rows matching the request's filter,
	// together with the total count of ALL matching rows so callers can
	// compute total pages.
	GetPageData(ctx context.Context, req PageRequest) ([]T, int64, error)

	// Schema exposes the entity's field registry.
	Schema() Schema
}

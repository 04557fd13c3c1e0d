package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bookvault/bookvault/pkg/db"
	"github.com/bookvault/bookvault/pkg/query"
)

const (
	defaultOrderField = "id"
	defaultPageSize   = 20
)

// GenericRepository implements Repository[T] on top of GORM. The entity's
// Schema is passed in explicitly at construction; no runtime reflection over
// struct tags is used to validate filter or order fields.
type GenericRepository[T any] struct {
	db        *gorm.DB
	dbManager *db.Manager
	schema    Schema
}

// NewGenericRepository creates a repository for one entity type. It panics on
// an invalid schema descriptor since that is a programming error caught at
// composition time, not a runtime condition.
func NewGenericRepository[T any](manager *db.Manager, schema Schema) *GenericRepository[T] {
	if err := schema.Validate(); err != nil {
		panic(fmt.Sprintf("repository: %v", err))
	}
	return &GenericRepository[T]{
		db:        manager.DB(),
		dbManager: manager,
		schema:    schema,
	}
}

// Schema exposes the entity's field registry.
func (r *GenericRepository[T]) Schema() Schema {
	return r.schema
}

// withQueryTimeout wraps a context with the configured query timeout.
func (r *GenericRepository[T]) withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.dbManager != nil && r.dbManager.Config() != nil {
		if timeout := r.dbManager.Config().QueryTimeout; timeout > 0 {
			return context.WithTimeout(ctx, timeout)
		}
	}
	return ctx, func() {}
}

// Create persists item and stamps creation metadata.
func (r *GenericRepository[T]) Create(ctx context.Context, item *T, actorName, actorEmail string) (*T, error) {
	if item == nil {
		return nil, fmt.Errorf("item cannot be nil")
	}

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	if a, ok := any(item).(Auditable); ok {
		a.StampCreated(FormatActor(actorName, actorEmail), time.Now().UTC())
	}

	if err := r.db.WithContext(ctx).Table(r.schema.Table).Create(item).Error; err != nil {
		return nil, storeErr(err)
	}
	return item, nil
}

// GetSingleByID does a point lookup; absence is (nil, nil), not an error.
func (r *GenericRepository[T]) GetSingleByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	var entity T
	err := r.db.WithContext(ctx).Table(r.schema.Table).
		Where(r.schema.PrimaryColumn+" = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &entity, nil
}

// GetSingleByConditions returns the first entity satisfying the AND of
// conditions, or (nil, nil).
func (r *GenericRepository[T]) GetSingleByConditions(ctx context.Context, conditions []query.Condition) (*T, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Table(r.schema.Table)
	tx, err := r.applyConditions(tx, conditions)
	if err != nil {
		return nil, err
	}

	var entity T
	if err := tx.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &entity, nil
}

// CountByConditions counts rows satisfying the AND of conditions.
func (r *GenericRepository[T]) CountByConditions(ctx context.Context, conditions []query.Condition) (int64, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Table(r.schema.Table)
	tx, err := r.applyConditions(tx, conditions)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// GetAll returns the full unfiltered collection.
func (r *GenericRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	var entities []T
	if err := r.db.WithContext(ctx).Table(r.schema.Table).Find(&entities).Error; err != nil {
		return nil, storeErr(err)
	}
	return entities, nil
}

// GetAllByConditions returns all rows satisfying the AND of conditions.
func (r *GenericRepository[T]) GetAllByConditions(ctx context.Context, conditions []query.Condition) ([]T, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Table(r.schema.Table)
	tx, err := r.applyConditions(tx, conditions)
	if err != nil {
		return nil, err
	}

	var entities []T
	if err := tx.Find(&entities).Error; err != nil {
		return nil, storeErr(err)
	}
	return entities, nil
}

// Update upserts by primary key and stamps update metadata.
func (r *GenericRepository[T]) Update(ctx context.Context, item *T, actorName, actorEmail string) (*T, error) {
	if item == nil {
		return nil, fmt.Errorf("item cannot be nil")
	}

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	if a, ok := any(item).(Auditable); ok {
		a.StampUpdated(FormatActor(actorName, actorEmail), time.Now().UTC())
	}

	if err := r.db.WithContext(ctx).Table(r.schema.Table).Save(item).Error; err != nil {
		return nil, storeErr(err)
	}
	return item, nil
}

// Delete removes the row by primary key. Rows are removed for real; the
// deleted_date audit column is schema compatibility only.
func (r *GenericRepository[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Table(r.schema.Table).
		Where(r.schema.PrimaryColumn+" = ?", id).
		Delete(new(T)).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// GetPageData returns one page of rows matching the request's filter plus the
// total count of all matching rows.
func (r *GenericRepository[T]) GetPageData(ctx context.Context, req PageRequest) ([]T, int64, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	orderBy := req.OrderBy
	if orderBy == "" {
		orderBy = defaultOrderField
	}
	orderColumn, ok := r.schema.Column(orderBy)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidOrderField, orderBy)
	}

	groups, err := query.ParseFilter(req.Filter)
	if err != nil {
		return nil, 0, err
	}

	tx := r.db.WithContext(ctx).Table(r.schema.Table)
	tx, err = r.applyGroups(tx, groups)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, storeErr(err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	direction := " ASC"
	if req.Descending {
		direction = " DESC"
	}

	var entities []T
	err = tx.Order(orderColumn + direction).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entities).Error
	if err != nil {
		return nil, 0, storeErr(err)
	}

	return entities, total, nil
}

// applyGroups attaches the parsed OR-groups as a single predicate. One group
// is applied directly; multiple groups are OR-ed.
func (r *GenericRepository[T]) applyGroups(tx *gorm.DB, groups []query.Group) (*gorm.DB, error) {
	switch len(groups) {
	case 0:
		return tx, nil
	case 1:
		return r.applyConditions(tx, groups[0])
	}

	combined, err := r.groupPredicate(groups[0])
	if err != nil {
		return nil, err
	}
	for _, group := range groups[1:] {
		pred, err := r.groupPredicate(group)
		if err != nil {
			return nil, err
		}
		combined = combined.Or(pred)
	}
	return tx.Where(combined), nil
}

// groupPredicate builds an AND-ed predicate on a fresh session so it can be
// composed with Or without leaking into the outer query.
func (r *GenericRepository[T]) groupPredicate(group query.Group) (*gorm.DB, error) {
	return r.applyConditions(r.db.Session(&gorm.Session{NewDB: true}), group)
}

// applyConditions AND-chains conditions onto tx. Column names come from the
// validated schema registry, never from user input.
func (r *GenericRepository[T]) applyConditions(tx *gorm.DB, conditions []query.Condition) (*gorm.DB, error) {
	for _, cond := range conditions {
		column, ok := r.schema.Column(cond.Field)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilterField, cond.Field)
		}

		switch cond.Op {
		case query.Equals:
			tx = tx.Where(column+" = ?", cond.Value)
		case query.NotEquals:
			tx = tx.Where(column+" <> ?", cond.Value)
		case query.GreaterThan:
			tx = tx.Where(column+" > ?", cond.Value)
		case query.LessThan:
			tx = tx.Where(column+" < ?", cond.Value)
		case query.GreaterThanOrEqual:
			tx = tx.Where(column+" >= ?", cond.Value)
		case query.LessThanOrEqual:
			tx = tx.Where(column+" <= ?", cond.Value)
		case query.Contains:
			tx = tx.Where(column+" LIKE ?", "%"+asString(cond.Value)+"%")
		case query.StartsWith:
			tx = tx.Where(column+" LIKE ?", asString(cond.Value)+"%")
		case query.EndsWith:
			tx = tx.Where(column+" LIKE ?", "%"+asString(cond.Value))
		case query.In:
			tx = tx.Where(column+" IN ?", cond.Value)
		case query.IsNull:
			tx = tx.Where(column + " IS NULL")
		default:
			return nil, fmt.Errorf("%w: %q", query.ErrUnknownOperator, cond.Op)
		}
	}
	return tx, nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStore, err)
}

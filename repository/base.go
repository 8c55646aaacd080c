package repository

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TxContextKey carries an open *gorm.DB transaction through a context so
// every repository call inside a WithTransaction block joins the same tx.
var TxContextKey = txContextKey{}

// TxManager runs a function inside a database transaction. Flows depend on
// this interface instead of *gorm.DB so they can be tested with fakes.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// GormTxManager is the production TxManager backed by gorm.
type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithTransaction begins a transaction, stores it in the context under
// TxContextKey and commits or rolls back based on fn's error.
func (m *GormTxManager) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, TxContextKey, tx)
		return fn(txCtx)
	})
}

// BaseRepository provides the common CRUD surface shared by the concrete
// repositories. T is the model type, F its filter type.
type BaseRepository[T any, F any] struct {
	db *gorm.DB
}

func NewBaseRepository[T any, F any](db *gorm.DB) *BaseRepository[T, F] {
	return &BaseRepository[T, F]{db: db}
}

// getDB returns the transaction bound to ctx when one is present, otherwise
// the root connection.
func (r *BaseRepository[T, F]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *BaseRepository[T, F]) Save(ctx context.Context, entity *T) error {
	return r.getDB(ctx).Create(entity).Error
}

func (r *BaseRepository[T, F]) Update(ctx context.Context, entity *T) error {
	return r.getDB(ctx).Save(entity).Error
}

func (r *BaseRepository[T, F]) ByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T, F]) applyFilter(query *gorm.DB, filter F) *gorm.DB {
	return query.Where(&filter)
}

func (r *BaseRepository[T, F]) ByFilter(ctx context.Context, filter F, orderBy string, limit int, offset int) ([]T, error) {
	var entities []T
	query := r.applyFilter(r.getDB(ctx).Model(new(T)), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *BaseRepository[T, F]) CountByFilter(ctx context.Context, filter F) (int64, error) {
	var count int64
	query := r.applyFilter(r.getDB(ctx).Model(new(T)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

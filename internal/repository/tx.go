package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor 在 service 层划定事务边界，事务句柄通过 ctx 传递给各 repo
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactorImpl struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &TransactorImpl{db: db}
}

// Transaction 已处于事务中时直接复用外层事务
func (s *TransactorImpl) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn 优先使用 ctx 中的事务
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrSessionClosed = errors.New("unit of work session already closed")

// UnitOfWork groups repository operations from multiple aggregates into one
// transaction: everything issued through a session commits or rolls back
// together.
type UnitOfWork interface {
	Begin(ctx context.Context) (UnitOfWorkSession, error)
}

type UnitOfWorkSession interface {
	Products() ProductRepository
	Suppliers() SupplierRepository
	// Commit commits the transaction and reports the number of rows the
	// session's repositories changed.
	Commit() (int64, error)
	// Rollback aborts the transaction. Rolling back a closed session is a
	// no-op so it can sit in a defer.
	Rollback() error
}

type gormUnitOfWork struct{ db *gorm.DB }

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Begin(ctx context.Context) (UnitOfWorkSession, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	s := &gormSession{tx: tx}
	s.products = &GormProductRepository{db: tx, tally: &s.rows}
	s.suppliers = &GormSupplierRepository{db: tx, tally: &s.rows}
	return s, nil
}

// gormSession is bound to a single logical operation and is not safe for
// concurrent use.
type gormSession struct {
	tx        *gorm.DB
	products  ProductRepository
	suppliers SupplierRepository
	rows      int64
	closed    bool
}

func (s *gormSession) Products() ProductRepository   { return s.products }
func (s *gormSession) Suppliers() SupplierRepository { return s.suppliers }

func (s *gormSession) Commit() (int64, error) {
	if s.closed {
		return 0, ErrSessionClosed
	}
	s.closed = true
	if err := s.tx.Commit().Error; err != nil {
		return 0, err
	}
	return s.rows, nil
}

func (s *gormSession) Rollback() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.tx.Rollback().Error
}

package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type updateCall struct {
	id       uint
	fields   map[string]any
	expected []byte
}

type stubProductRepository struct {
	products     []domain.Product
	findAllCalls int
	findAllErr   error
	findByIDFn   func(id uint) (*domain.Product, error)
	insertErr    error
	inserted     []*domain.Product
	updateFn     func(id uint, fields map[string]any, expected []byte) (*domain.Product, error)
	updateCalls  []updateCall
	deleteErr    error
	deleted      []uint
}

func (s *stubProductRepository) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(id)
	}
	return nil, repository.ErrProductNotFound
}

func (s *stubProductRepository) FindAllJoined(_ context.Context) ([]domain.Product, error) {
	s.findAllCalls++
	if s.findAllErr != nil {
		return nil, s.findAllErr
	}
	return s.products, nil
}

func (s *stubProductRepository) Insert(_ context.Context, p *domain.Product) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	p.ID = uint(len(s.inserted) + 1)
	p.RowVersion = domain.NewRowVersion()
	s.inserted = append(s.inserted, p)
	return nil
}

func (s *stubProductRepository) UpdateWithVersionCheck(_ context.Context, id uint, fields map[string]any, expected []byte) (*domain.Product, error) {
	s.updateCalls = append(s.updateCalls, updateCall{id: id, fields: fields, expected: expected})
	if s.updateFn != nil {
		return s.updateFn(id, fields, expected)
	}
	return &domain.Product{ID: id, RowVersion: domain.NewRowVersion()}, nil
}

func (s *stubProductRepository) Delete(_ context.Context, id uint) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubSupplierRepository struct {
	createErr error
	created   []*domain.Supplier
}

func (s *stubSupplierRepository) List(context.Context) ([]domain.Supplier, error) { return nil, nil }

func (s *stubSupplierRepository) FindByID(_ context.Context, _ uint) (*domain.Supplier, error) {
	return nil, repository.ErrSupplierNotFound
}

func (s *stubSupplierRepository) Create(_ context.Context, sup *domain.Supplier) error {
	if s.createErr != nil {
		return s.createErr
	}
	sup.ID = uint(len(s.created) + 1)
	s.created = append(s.created, sup)
	return nil
}

func (s *stubSupplierRepository) Update(context.Context, *domain.Supplier) error { return nil }
func (s *stubSupplierRepository) Delete(context.Context, uint) error             { return nil }

// stubCacheStore records calls and serves a plain map so tests can inspect
// every cache interaction without wiring TTL clocks.
type stubCacheStore struct {
	entries       map[string][]byte
	getErr        error
	setErr        error
	invalidateErr error
	getCalls      int
	setCalls      int
	invalidated   []string
}

func newStubCacheStore() *stubCacheStore {
	return &stubCacheStore{entries: map[string][]byte{}}
}

func (s *stubCacheStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.getCalls++
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	payload, ok := s.entries[key]
	return payload, ok, nil
}

func (s *stubCacheStore) Set(_ context.Context, key string, value []byte, _, _ time.Duration) error {
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.entries[key] = value
	return nil
}

func (s *stubCacheStore) Invalidate(_ context.Context, key string) error {
	if s.invalidateErr != nil {
		return s.invalidateErr
	}
	s.invalidated = append(s.invalidated, key)
	delete(s.entries, key)
	return nil
}

type stubUnitOfWork struct {
	session  *stubSession
	beginErr error
	begins   int
}

func (u *stubUnitOfWork) Begin(context.Context) (repository.UnitOfWorkSession, error) {
	u.begins++
	if u.beginErr != nil {
		return nil, u.beginErr
	}
	return u.session, nil
}

type stubSession struct {
	products  *stubProductRepository
	suppliers *stubSupplierRepository
	commitErr error
	commits   int
	rollbacks int
	closed    bool
}

func (s *stubSession) Products() repository.ProductRepository   { return s.products }
func (s *stubSession) Suppliers() repository.SupplierRepository { return s.suppliers }

func (s *stubSession) Commit() (int64, error) {
	if s.closed {
		return 0, repository.ErrSessionClosed
	}
	s.closed = true
	if s.commitErr != nil {
		return 0, s.commitErr
	}
	s.commits++
	rows := int64(len(s.products.inserted) + len(s.products.updateCalls) + len(s.products.deleted))
	rows += int64(len(s.suppliers.created))
	return rows, nil
}

func (s *stubSession) Rollback() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.rollbacks++
	return nil
}

func newStubUnitOfWork() *stubUnitOfWork {
	return &stubUnitOfWork{session: &stubSession{
		products:  &stubProductRepository{},
		suppliers: &stubSupplierRepository{},
	}}
}

package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/catalogkit/product-catalog-service/internal/apperr"
	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/repository"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateRejectsInvalidInputBeforeStore(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := NewCatalogWriteService(uow, newStubCacheStore(), discardLogger())

	cases := []struct {
		name  string
		in    CreateProductInput
		field string
	}{
		{"missing name", CreateProductInput{Price: 9.99}, "name"},
		{"zero price", CreateProductInput{Name: "Widget"}, "price"},
		{"price above cap", CreateProductInput{Name: "Widget", Price: 1000000}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			e := apperr.From(err)
			if e == nil || e.Kind != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := e.Fields[tc.field]; !ok {
				t.Fatalf("expected a message for %q, got %v", tc.field, e.Fields)
			}
		})
	}
	if uow.begins != 0 {
		t.Fatalf("invalid input must not open a transaction, got %d begins", uow.begins)
	}
}

func TestCreateCommitsAndInvalidatesCollection(t *testing.T) {
	uow := newStubUnitOfWork()
	store := newStubCacheStore()
	store.entries["all_products"] = []byte("[]")
	svc := NewCatalogWriteService(uow, store, discardLogger())

	p, err := svc.Create(context.Background(), CreateProductInput{Name: "Widget", Price: 9.99})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 || len(p.RowVersion) != domain.RowVersionSize {
		t.Fatalf("created product missing identity or version token: %+v", p)
	}
	if uow.session.commits != 1 {
		t.Fatalf("expected 1 commit, got %d", uow.session.commits)
	}
	if _, cached := store.entries["all_products"]; cached {
		t.Fatal("collection cache must be invalidated after a write")
	}
}

func TestCreateRollsBackOnInsertFailure(t *testing.T) {
	uow := newStubUnitOfWork()
	uow.session.products.insertErr = errors.New("unique constraint")
	store := newStubCacheStore()
	store.entries["all_products"] = []byte("[]")
	svc := NewCatalogWriteService(uow, store, discardLogger())

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "Widget", Price: 9.99})
	if apperr.KindOf(err) != apperr.KindStore {
		t.Fatalf("expected store error, got %v", err)
	}
	if uow.session.rollbacks != 1 || uow.session.commits != 0 {
		t.Fatalf("expected rollback without commit, got %d/%d", uow.session.rollbacks, uow.session.commits)
	}
	if _, cached := store.entries["all_products"]; !cached {
		t.Fatal("failed write must leave the cache alone")
	}
}

func TestUpdateSendsOnlySuppliedFields(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := NewCatalogWriteService(uow, newStubCacheStore(), discardLogger())

	token := domain.NewRowVersion()
	in := UpdateProductInput{Name: strPtr("Renamed"), Price: floatPtr(19.99), ExpectedVersion: token}
	if _, err := svc.Update(context.Background(), 7, in); err != nil {
		t.Fatalf("update: %v", err)
	}
	calls := uow.session.products.updateCalls
	if len(calls) != 1 {
		t.Fatalf("expected 1 update call, got %d", len(calls))
	}
	want := map[string]any{"name": "Renamed", "price": 19.99}
	if calls[0].id != 7 || !reflect.DeepEqual(calls[0].fields, want) {
		t.Fatalf("unexpected update call: %+v", calls[0])
	}
	if !domain.RowVersionEqual(calls[0].expected, token) {
		t.Fatal("expected version token must be passed through unchanged")
	}
}

func TestUpdateMapsVersionMismatchToConflict(t *testing.T) {
	uow := newStubUnitOfWork()
	uow.session.products.updateFn = func(uint, map[string]any, []byte) (*domain.Product, error) {
		return nil, repository.ErrVersionMismatch
	}
	store := newStubCacheStore()
	store.entries["all_products"] = []byte("[]")
	svc := NewCatalogWriteService(uow, store, discardLogger())

	_, err := svc.Update(context.Background(), 7, UpdateProductInput{Name: strPtr("Renamed")})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, cached := store.entries["all_products"]; !cached {
		t.Fatal("a rejected stale write must not invalidate the cache")
	}
}

func TestUpdateMapsMissingProductToNotFound(t *testing.T) {
	uow := newStubUnitOfWork()
	uow.session.products.updateFn = func(uint, map[string]any, []byte) (*domain.Product, error) {
		return nil, repository.ErrProductNotFound
	}
	svc := NewCatalogWriteService(uow, newStubCacheStore(), discardLogger())

	_, err := svc.Update(context.Background(), 999, UpdateProductInput{Name: strPtr("Renamed")})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCommitsAndInvalidates(t *testing.T) {
	uow := newStubUnitOfWork()
	store := newStubCacheStore()
	store.entries["all_products"] = []byte("[]")
	svc := NewCatalogWriteService(uow, store, discardLogger())

	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := uow.session.products.deleted; len(got) != 1 || got[0] != 3 {
		t.Fatalf("unexpected deletes: %v", got)
	}
	if _, cached := store.entries["all_products"]; cached {
		t.Fatal("collection cache must be invalidated after a delete")
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	uow := newStubUnitOfWork()
	uow.session.products.deleteErr = repository.ErrProductNotFound
	svc := NewCatalogWriteService(uow, newStubCacheStore(), discardLogger())

	if err := svc.Delete(context.Background(), 999); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAtomicCreateCommitsBothOrNeither(t *testing.T) {
	in := AtomicSupplierProductInput{
		Supplier: SupplierInput{Name: "Acme Supplies", ContactEmail: "sales@acme.example"},
		Product:  CreateProductInput{Name: "Widget", Price: 9.99},
	}

	t.Run("happy path", func(t *testing.T) {
		uow := newStubUnitOfWork()
		store := newStubCacheStore()
		store.entries["all_products"] = []byte("[]")
		svc := NewCatalogWriteService(uow, store, discardLogger())

		sup, p, err := svc.CreateSupplierWithProduct(context.Background(), in)
		if err != nil {
			t.Fatalf("atomic create: %v", err)
		}
		if sup.ID == 0 || p.ID == 0 {
			t.Fatalf("both aggregates need identities: supplier=%+v product=%+v", sup, p)
		}
		if uow.session.commits != 1 {
			t.Fatalf("expected 1 commit, got %d", uow.session.commits)
		}
		if _, cached := store.entries["all_products"]; cached {
			t.Fatal("collection cache must be invalidated after an atomic write")
		}
	})

	t.Run("product insert failure rolls back the supplier", func(t *testing.T) {
		uow := newStubUnitOfWork()
		uow.session.products.insertErr = errors.New("unique constraint")
		store := newStubCacheStore()
		store.entries["all_products"] = []byte("[]")
		svc := NewCatalogWriteService(uow, store, discardLogger())

		_, _, err := svc.CreateSupplierWithProduct(context.Background(), in)
		if apperr.KindOf(err) != apperr.KindStore {
			t.Fatalf("expected store error, got %v", err)
		}
		if uow.session.rollbacks != 1 || uow.session.commits != 0 {
			t.Fatalf("expected rollback without commit, got %d/%d", uow.session.rollbacks, uow.session.commits)
		}
		if _, cached := store.entries["all_products"]; !cached {
			t.Fatal("failed atomic write must leave the cache alone")
		}
	})
}

func TestAtomicCreateValidationPrefixesChildFields(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := NewCatalogWriteService(uow, newStubCacheStore(), discardLogger())

	in := AtomicSupplierProductInput{
		Supplier: SupplierInput{Name: "Acme", ContactEmail: "not-an-email"},
		Product:  CreateProductInput{Price: 9.99},
	}
	_, _, err := svc.CreateSupplierWithProduct(context.Background(), in)
	e := apperr.From(err)
	if e == nil || e.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := e.Fields["supplier.contact_email"]; !ok {
		t.Fatalf("expected supplier.contact_email message, got %v", e.Fields)
	}
	if _, ok := e.Fields["product.name"]; !ok {
		t.Fatalf("expected product.name message, got %v", e.Fields)
	}
	if uow.begins != 0 {
		t.Fatal("invalid atomic input must not open a transaction")
	}
}

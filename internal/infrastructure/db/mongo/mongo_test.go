package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/buildhub/property-api/internal/core/domain"
	"github.com/buildhub/property-api/internal/core/schema"
)

func TestTenantRepository_InsertAssignsSequenceID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: schema.Tenants},
				{Key: "seq", Value: int64(7)},
			}}),
			mtest.CreateSuccessResponse(),
		)

		repo := NewTenantRepository(mt.DB)
		got, err := repo.Insert(context.Background(), &domain.Tenant{
			Name:      "Acme",
			Namespace: domain.PlaceholderNamespace(),
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if got.ID != 7 {
			t.Fatalf("expected id 7, got %d", got.ID)
		}
		if got.Active {
			t.Fatalf("inserted record must keep active=false")
		}
	})
}

func TestTenantRepository_NotFoundMapping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "property_root.tenants", mtest.FirstBatch))

		_, err := NewTenantRepository(mt.DB).FindByID(context.Background(), 42)
		if !errors.Is(err, domain.ErrTenantNotFound) {
			t.Fatalf("expected ErrTenantNotFound, got %v", err)
		}
	})

	mt.Run("delete inactive of active record", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		err := NewTenantRepository(mt.DB).DeleteInactive(context.Background(), 7)
		if !errors.Is(err, domain.ErrTenantNotFound) {
			t.Fatalf("expected ErrTenantNotFound, got %v", err)
		}
	})
}

func TestPrincipalRepository_DuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: schema.Principals},
				{Key: "seq", Value: int64(2)},
			}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		_, err := NewPrincipalRepository(mt.DB).Create(context.Background(), &domain.Principal{Email: "a@b.test"})
		if !errors.Is(err, domain.ErrPrincipalExists) {
			t.Fatalf("expected ErrPrincipalExists, got %v", err)
		}
	})
}

func TestNamespaceRegistry(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("register tolerates existing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    codeNamespaceExists,
			Name:    "NamespaceExists",
			Message: "collection already exists",
		}))

		if err := NewNamespaceRegistry(mt.Client).Register(context.Background(), "namespace_3"); err != nil {
			t.Fatalf("Register: %v", err)
		}
	})

	mt.Run("register failure is a provisioning error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		err := NewNamespaceRegistry(mt.Client).Register(context.Background(), "namespace_3")
		if !errors.Is(err, domain.ErrProvisioning) {
			t.Fatalf("expected ErrProvisioning, got %v", err)
		}
	})

	mt.Run("register rejects root", func(mt *mtest.T) {
		err := NewNamespaceRegistry(mt.Client).Register(context.Background(), "property_root")
		if !errors.Is(err, domain.ErrInvalidNamespace) {
			t.Fatalf("expected ErrInvalidNamespace, got %v", err)
		}
	})

	mt.Run("list all", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "databases", Value: bson.A{
			bson.D{{Key: "name", Value: "namespace_10"}},
			bson.D{{Key: "name", Value: "namespace_9"}},
			bson.D{{Key: "name", Value: "namespace_01"}},
			bson.D{{Key: "name", Value: "namespace_2"}},
		}}))

		got, err := NewNamespaceRegistry(mt.Client).ListAll(context.Background())
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		want := []domain.Namespace{"namespace_2", "namespace_9", "namespace_10"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})
}

func TestStoreFactory_TenantRejectsNonTenantNames(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reject", func(mt *mtest.T) {
		f := NewStoreFactory(mt.Client, "property_root")
		for _, ns := range []domain.Namespace{"property_root", "admin", "pending_x", "namespace_1.principals"} {
			if _, err := f.Tenant(ns); !errors.Is(err, domain.ErrInvalidNamespace) {
				t.Fatalf("%s: expected ErrInvalidNamespace, got %v", ns, err)
			}
		}

		s, err := f.Tenant("namespace_4")
		if err != nil {
			t.Fatalf("Tenant: %v", err)
		}
		if s.Namespace() != "namespace_4" {
			t.Fatalf("store bound to %s", s.Namespace())
		}
		if f.Root().Namespace() != "property_root" {
			t.Fatalf("unexpected root namespace")
		}
	})
}

func TestIndexModel(t *testing.T) {
	m := indexModel(schema.Index{Name: "audit_logs_created_idx", Keys: []string{"-created_at", "_id"}, Unique: true})
	keys, ok := m.Keys.(bson.D)
	if !ok || len(keys) != 2 {
		t.Fatalf("unexpected keys: %#v", m.Keys)
	}
	if keys[0].Key != "created_at" || keys[0].Value != -1 || keys[1].Value != 1 {
		t.Fatalf("unexpected key order or direction: %#v", keys)
	}
	if m.Options == nil || m.Options.Unique == nil || !*m.Options.Unique || *m.Options.Name != "audit_logs_created_idx" {
		t.Fatalf("unexpected options: %#v", m.Options)
	}
}

package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/financia-ai/financia/internal/apperr"
)

func seedGlobal(t *testing.T, repo Repository, name string) Category {
	t.Helper()
	now := time.Now().UTC()
	cat := Category{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(context.Background(), cat); err != nil {
		t.Fatalf("seed global category: %v", err)
	}
	return cat
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	ownerID := uuid.NewString()

	cat, err := svc.Create(ctx, ownerID, Input{Name: "  Food  ", Description: "groceries"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.Name != "Food" {
		t.Fatalf("expected trimmed name, got %q", cat.Name)
	}
	if cat.UserID == nil || *cat.UserID != ownerID {
		t.Fatalf("expected owner %s, got %v", ownerID, cat.UserID)
	}

	fetched, err := svc.Get(ctx, ownerID, cat.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.ID != cat.ID {
		t.Fatalf("expected %s, got %s", cat.ID, fetched.ID)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	if _, err := svc.Create(context.Background(), uuid.NewString(), Input{Name: "   "}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	ownerID := uuid.NewString()

	cat, err := svc.Create(ctx, ownerID, Input{Name: "Food", Description: "groceries"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A full replace with an empty description clears it.
	updated, err := svc.Update(ctx, ownerID, cat.ID, Input{Name: "Dining"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Dining" || updated.Description != "" {
		t.Fatalf("expected replaced fields, got %+v", updated)
	}

	// The name stays required on update, same as create.
	if _, err := svc.Update(ctx, ownerID, cat.ID, Input{Name: "  ", Description: "kept?"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
}

func TestListIncludesGlobals(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()
	userA := uuid.NewString()
	userB := uuid.NewString()

	seedGlobal(t, repo, "Uncategorized")
	if _, err := svc.Create(ctx, userA, Input{Name: "Food"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, userB, Input{Name: "Travel"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	cats, err := svc.List(ctx, userA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected own + global categories, got %d", len(cats))
	}
	for _, cat := range cats {
		if cat.UserID != nil && *cat.UserID == userB {
			t.Fatalf("list leaked another user's category")
		}
	}
}

func TestForeignCategoryCollapsesToNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	userA := uuid.NewString()
	userB := uuid.NewString()

	cat, err := svc.Create(ctx, userA, Input{Name: "Food"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, userB, cat.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Update(ctx, userB, cat.ID, Input{Name: "Hijacked"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Delete(ctx, userB, cat.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGlobalCategoriesReadOnly(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()
	ownerID := uuid.NewString()

	global := seedGlobal(t, repo, "Uncategorized")

	if _, err := svc.Get(ctx, ownerID, global.ID); err != nil {
		t.Fatalf("expected global category readable: %v", err)
	}
	if _, err := svc.Update(ctx, ownerID, global.ID, Input{Name: "Mine now"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on global update, got %v", err)
	}
	if err := svc.Delete(ctx, ownerID, global.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on global delete, got %v", err)
	}
}

func TestAccessibleTo(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()
	userA := uuid.NewString()
	userB := uuid.NewString()

	global := seedGlobal(t, repo, "Uncategorized")
	own, err := svc.Create(ctx, userA, Input{Name: "Food"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, tc := range []struct {
		owner string
		catID string
		want  bool
	}{
		{userA, own.ID, true},
		{userA, global.ID, true},
		{userB, own.ID, false},
		{userB, uuid.NewString(), false},
	} {
		ok, err := svc.AccessibleTo(ctx, tc.owner, tc.catID)
		if err != nil {
			t.Fatalf("accessible: %v", err)
		}
		if ok != tc.want {
			t.Fatalf("accessible(%s, %s): expected %v, got %v", tc.owner, tc.catID, tc.want, ok)
		}
	}
}

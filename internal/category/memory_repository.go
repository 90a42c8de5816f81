package category

import (
	"context"
	"sort"
	"sync"

	"github.com/financia-ai/financia/internal/apperr"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Category
}

// NewMemoryRepository constructs an in-memory category store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Category)}
}

func (r *memoryRepository) Create(_ context.Context, cat Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[cat.ID]; exists {
		return apperr.Conflictf("category %s exists", cat.ID)
	}
	r.storage[cat.ID] = cat
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.storage[id]
	if !ok {
		return Category{}, apperr.NotFoundf("category")
	}
	return cat, nil
}

func (r *memoryRepository) ListForOwner(_ context.Context, ownerID string) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var cats []Category
	for _, cat := range r.storage {
		if cat.UserID == nil || *cat.UserID == ownerID {
			cats = append(cats, cat)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

func (r *memoryRepository) Update(_ context.Context, cat Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[cat.ID]; !ok {
		return apperr.NotFoundf("category")
	}
	r.storage[cat.ID] = cat
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return apperr.NotFoundf("category")
	}
	delete(r.storage, id)
	return nil
}

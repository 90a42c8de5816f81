package transaction

import (
	"context"
	"sort"
	"sync"

	"github.com/financia-ai/financia/internal/apperr"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Transaction
}

// NewMemoryRepository constructs an in-memory transaction store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Transaction)}
}

func (r *memoryRepository) Create(_ context.Context, tx Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[tx.ID]; exists {
		return apperr.Conflictf("transaction %s exists", tx.ID)
	}
	r.storage[tx.ID] = tx
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.storage[id]
	if !ok {
		return Transaction{}, apperr.NotFoundf("transaction")
	}
	return tx, nil
}

func (r *memoryRepository) ListForOwner(_ context.Context, ownerID string, filter Filter) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var txs []Transaction
	for _, tx := range r.storage {
		if tx.UserID != ownerID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && (tx.CategoryID == nil || *tx.CategoryID != filter.CategoryID) {
			continue
		}
		if filter.From != nil && tx.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.OccurredAt.After(*filter.To) {
			continue
		}
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].OccurredAt.Equal(txs[j].OccurredAt) {
			return txs[i].OccurredAt.After(txs[j].OccurredAt)
		}
		if !txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		}
		return txs[i].ID > txs[j].ID
	})
	return txs, nil
}

func (r *memoryRepository) Update(_ context.Context, tx Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[tx.ID]; !ok {
		return apperr.NotFoundf("transaction")
	}
	r.storage[tx.ID] = tx
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return apperr.NotFoundf("transaction")
	}
	delete(r.storage, id)
	return nil
}

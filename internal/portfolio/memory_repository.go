package portfolio

import (
	"context"
	"sort"
	"sync"

	"github.com/financia-ai/financia/internal/apperr"
)

type memoryRepository struct {
	mu     sync.RWMutex
	assets map[string]Asset
	debts  map[string]Debt
}

// NewMemoryRepository constructs an in-memory portfolio store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{assets: make(map[string]Asset), debts: make(map[string]Debt)}
}

func (r *memoryRepository) CreateAsset(_ context.Context, asset Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.assets[asset.ID]; exists {
		return apperr.Conflictf("asset %s exists", asset.ID)
	}
	r.assets[asset.ID] = asset
	return nil
}

func (r *memoryRepository) GetAsset(_ context.Context, id string) (Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	asset, ok := r.assets[id]
	if !ok {
		return Asset{}, apperr.NotFoundf("asset")
	}
	return asset, nil
}

func (r *memoryRepository) ListAssets(_ context.Context, ownerID, assetType, status string) ([]Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var assets []Asset
	for _, asset := range r.assets {
		if asset.UserID != ownerID {
			continue
		}
		if assetType != "" && asset.Type != assetType {
			continue
		}
		if status != "" && asset.Status != status {
			continue
		}
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool {
		if !assets[i].CreatedAt.Equal(assets[j].CreatedAt) {
			return assets[i].CreatedAt.After(assets[j].CreatedAt)
		}
		return assets[i].ID > assets[j].ID
	})
	return assets, nil
}

func (r *memoryRepository) UpdateAsset(_ context.Context, asset Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[asset.ID]; !ok {
		return apperr.NotFoundf("asset")
	}
	r.assets[asset.ID] = asset
	return nil
}

func (r *memoryRepository) DeleteAsset(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[id]; !ok {
		return apperr.NotFoundf("asset")
	}
	delete(r.assets, id)
	return nil
}

func (r *memoryRepository) CreateDebt(_ context.Context, debt Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.debts[debt.ID]; exists {
		return apperr.Conflictf("debt %s exists", debt.ID)
	}
	r.debts[debt.ID] = debt
	return nil
}

func (r *memoryRepository) GetDebt(_ context.Context, id string) (Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	debt, ok := r.debts[id]
	if !ok {
		return Debt{}, apperr.NotFoundf("debt")
	}
	return debt, nil
}

func (r *memoryRepository) ListDebts(_ context.Context, ownerID, debtType, status string) ([]Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var debts []Debt
	for _, debt := range r.debts {
		if debt.UserID != ownerID {
			continue
		}
		if debtType != "" && debt.Type != debtType {
			continue
		}
		if status != "" && debt.Status != status {
			continue
		}
		debts = append(debts, debt)
	}
	sort.Slice(debts, func(i, j int) bool {
		if !debts[i].CreatedAt.Equal(debts[j].CreatedAt) {
			return debts[i].CreatedAt.After(debts[j].CreatedAt)
		}
		return debts[i].ID > debts[j].ID
	})
	return debts, nil
}

func (r *memoryRepository) UpdateDebt(_ context.Context, debt Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.debts[debt.ID]; !ok {
		return apperr.NotFoundf("debt")
	}
	r.debts[debt.ID] = debt
	return nil
}

func (r *memoryRepository) DeleteDebt(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.debts[id]; !ok {
		return apperr.NotFoundf("debt")
	}
	delete(r.debts, id)
	return nil
}

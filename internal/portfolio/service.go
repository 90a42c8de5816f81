package portfolio

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financia-ai/financia/internal/apperr"
	"github.com/financia-ai/financia/internal/money"
)

const dateLayout = "2006-01-02"

// Service exposes ownership-scoped portfolio operations over assets and
// debts. The ownership rules match transactions: absence and foreign
// ownership are indistinguishable.
type Service struct {
	repo Repository
}

// NewService builds a portfolio service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAssets returns the owner's assets, optionally filtered by type/status.
func (s *Service) ListAssets(ctx context.Context, ownerID, assetType, status string) ([]Asset, error) {
	if assetType != "" && !validAssetType(assetType) {
		return nil, apperr.Validationf("invalid asset type %q", assetType)
	}
	if status != "" && !validAssetStatus(status) {
		return nil, apperr.Validationf("invalid asset status %q", status)
	}
	return s.repo.ListAssets(ctx, ownerID, assetType, status)
}

// GetAsset fetches an asset the caller owns.
func (s *Service) GetAsset(ctx context.Context, ownerID, id string) (Asset, error) {
	asset, err := s.repo.GetAsset(ctx, id)
	if err != nil {
		return Asset{}, err
	}
	if asset.UserID != ownerID {
		return Asset{}, apperr.NotFoundf("asset %s", id)
	}
	return asset, nil
}

// CreateAsset validates the input and stores an asset owned by the caller.
func (s *Service) CreateAsset(ctx context.Context, ownerID string, input AssetInput) (Asset, error) {
	asset, err := assetFromInput(input)
	if err != nil {
		return Asset{}, err
	}

	now := time.Now().UTC()
	asset.ID = uuid.New().String()
	asset.UserID = ownerID
	asset.CreatedAt = now
	asset.UpdatedAt = now

	if err := s.repo.CreateAsset(ctx, asset); err != nil {
		return Asset{}, err
	}
	return asset, nil
}

// UpdateAsset rewrites an asset the caller owns.
func (s *Service) UpdateAsset(ctx context.Context, ownerID, id string, input AssetInput) (Asset, error) {
	existing, err := s.GetAsset(ctx, ownerID, id)
	if err != nil {
		return Asset{}, err
	}

	asset, err := assetFromInput(input)
	if err != nil {
		return Asset{}, err
	}
	asset.ID = existing.ID
	asset.UserID = existing.UserID
	asset.CreatedAt = existing.CreatedAt
	asset.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateAsset(ctx, asset); err != nil {
		return Asset{}, err
	}
	return asset, nil
}

// DeleteAsset permanently removes an asset the caller owns.
func (s *Service) DeleteAsset(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetAsset(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.DeleteAsset(ctx, id)
}

// ListDebts returns the owner's debts, optionally filtered by type/status.
func (s *Service) ListDebts(ctx context.Context, ownerID, debtType, status string) ([]Debt, error) {
	if debtType != "" && !validDebtType(debtType) {
		return nil, apperr.Validationf("invalid debt type %q", debtType)
	}
	if status != "" && !validDebtStatus(status) {
		return nil, apperr.Validationf("invalid debt status %q", status)
	}
	return s.repo.ListDebts(ctx, ownerID, debtType, status)
}

// GetDebt fetches a debt the caller owns.
func (s *Service) GetDebt(ctx context.Context, ownerID, id string) (Debt, error) {
	debt, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return Debt{}, err
	}
	if debt.UserID != ownerID {
		return Debt{}, apperr.NotFoundf("debt %s", id)
	}
	return debt, nil
}

// CreateDebt validates the input and stores a debt owned by the caller.
func (s *Service) CreateDebt(ctx context.Context, ownerID string, input DebtInput) (Debt, error) {
	debt, err := debtFromInput(input)
	if err != nil {
		return Debt{}, err
	}

	now := time.Now().UTC()
	debt.ID = uuid.New().String()
	debt.UserID = ownerID
	debt.CreatedAt = now
	debt.UpdatedAt = now

	if err := s.repo.CreateDebt(ctx, debt); err != nil {
		return Debt{}, err
	}
	return debt, nil
}

// UpdateDebt rewrites a debt the caller owns.
func (s *Service) UpdateDebt(ctx context.Context, ownerID, id string, input DebtInput) (Debt, error) {
	existing, err := s.GetDebt(ctx, ownerID, id)
	if err != nil {
		return Debt{}, err
	}

	debt, err := debtFromInput(input)
	if err != nil {
		return Debt{}, err
	}
	debt.ID = existing.ID
	debt.UserID = existing.UserID
	debt.CreatedAt = existing.CreatedAt
	debt.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateDebt(ctx, debt); err != nil {
		return Debt{}, err
	}
	return debt, nil
}

// DeleteDebt permanently removes a debt the caller owns.
func (s *Service) DeleteDebt(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetDebt(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.DeleteDebt(ctx, id)
}

// NetWorth aggregates a portfolio: assets not sold minus debts not paid off.
type NetWorth struct {
	TotalAssetsCents int64
	TotalDebtsCents  int64
	NetWorthCents    int64
}

// DebtOverview summarizes outstanding debts.
type DebtOverview struct {
	TotalDebtCents       int64
	MonthlyPaymentsCents int64
	AverageInterestRate  float64
	DebtTypeCents        map[string]int64
}

// ComputeNetWorth sums the current worth of the owner's unsold assets and
// subtracts outstanding debt balances.
func (s *Service) ComputeNetWorth(ctx context.Context, ownerID string) (NetWorth, error) {
	assets, err := s.repo.ListAssets(ctx, ownerID, "", "")
	if err != nil {
		return NetWorth{}, err
	}
	debts, err := s.repo.ListDebts(ctx, ownerID, "", "")
	if err != nil {
		return NetWorth{}, err
	}

	var nw NetWorth
	for _, asset := range assets {
		if asset.Status == AssetStatusSold {
			continue
		}
		nw.TotalAssetsCents += asset.CurrentWorth()
	}
	for _, debt := range debts {
		if debt.Status == DebtStatusPaidOff {
			continue
		}
		nw.TotalDebtsCents += debt.CurrentBalanceCents
	}
	nw.NetWorthCents = nw.TotalAssetsCents - nw.TotalDebtsCents
	return nw, nil
}

// ComputeDebtOverview totals outstanding balances, monthly payment load, the
// balance-weighted average interest rate and a per-type breakdown.
func (s *Service) ComputeDebtOverview(ctx context.Context, ownerID string) (DebtOverview, error) {
	debts, err := s.repo.ListDebts(ctx, ownerID, "", "")
	if err != nil {
		return DebtOverview{}, err
	}

	overview := DebtOverview{DebtTypeCents: make(map[string]int64)}
	var weightedInterest float64
	for _, debt := range debts {
		if debt.Status == DebtStatusPaidOff {
			continue
		}
		overview.TotalDebtCents += debt.CurrentBalanceCents
		if debt.PaymentFrequency == FrequencyMonthly {
			overview.MonthlyPaymentsCents += debt.MinimumPaymentCents
		}
		weightedInterest += debt.InterestRate * float64(debt.CurrentBalanceCents)
		overview.DebtTypeCents[debt.Type] += debt.CurrentBalanceCents
	}
	if overview.TotalDebtCents > 0 {
		overview.AverageInterestRate = weightedInterest / float64(overview.TotalDebtCents)
	}
	return overview, nil
}

func assetFromInput(input AssetInput) (Asset, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Asset{}, apperr.Validationf("asset name is required")
	}
	if !validAssetType(input.Type) {
		return Asset{}, apperr.Validationf("invalid asset type %q", input.Type)
	}
	status := input.Status
	if status == "" {
		status = AssetStatusActive
	}
	if !validAssetStatus(status) {
		return Asset{}, apperr.Validationf("invalid asset status %q", status)
	}

	value, err := money.ToCents(input.Value)
	if err != nil {
		return Asset{}, err
	}
	acquisition, err := money.ToCents(input.AcquisitionValue)
	if err != nil {
		return Asset{}, err
	}
	current, err := money.ToCents(input.CurrentValue)
	if err != nil {
		return Asset{}, err
	}

	var acquired *time.Time
	if strings.TrimSpace(input.AcquisitionDate) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(input.AcquisitionDate))
		if err != nil {
			return Asset{}, apperr.Validationf("acquisition_date must be a valid %s date", dateLayout)
		}
		utc := parsed.UTC()
		acquired = &utc
	}

	return Asset{
		Name:                  name,
		Type:                  input.Type,
		Status:                status,
		ValueCents:            value,
		AcquisitionValueCents: acquisition,
		CurrentValueCents:     current,
		Currency:              strings.TrimSpace(input.Currency),
		Institution:           strings.TrimSpace(input.Institution),
		Notes:                 strings.TrimSpace(input.Notes),
		AcquisitionDate:       acquired,
	}, nil
}

func debtFromInput(input DebtInput) (Debt, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Debt{}, apperr.Validationf("debt name is required")
	}
	if !validDebtType(input.Type) {
		return Debt{}, apperr.Validationf("invalid debt type %q", input.Type)
	}
	status := input.Status
	if status == "" {
		status = DebtStatusCurrent
	}
	if !validDebtStatus(status) {
		return Debt{}, apperr.Validationf("invalid debt status %q", status)
	}
	frequency := input.PaymentFrequency
	if frequency == "" {
		frequency = FrequencyMonthly
	}
	if !validFrequency(frequency) {
		return Debt{}, apperr.Validationf("invalid payment frequency %q", frequency)
	}
	if input.InterestRate < 0 {
		return Debt{}, apperr.Validationf("interest rate must not be negative")
	}

	original, err := money.ToCents(input.OriginalAmount)
	if err != nil {
		return Debt{}, err
	}
	balance, err := money.ToCents(input.CurrentBalance)
	if err != nil {
		return Debt{}, err
	}
	minimum, err := money.ToCents(input.MinimumPayment)
	if err != nil {
		return Debt{}, err
	}

	return Debt{
		Name:                name,
		Type:                input.Type,
		Status:              status,
		OriginalAmountCents: original,
		CurrentBalanceCents: balance,
		MinimumPaymentCents: minimum,
		InterestRate:        input.InterestRate,
		PaymentFrequency:    frequency,
		Lender:              strings.TrimSpace(input.Lender),
		Notes:               strings.TrimSpace(input.Notes),
	}, nil
}

package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/financia-ai/financia/internal/apperr"
)

// Repository persists portfolio assets and debts.
type Repository interface {
	CreateAsset(ctx context.Context, asset Asset) error
	GetAsset(ctx context.Context, id string) (Asset, error)
	ListAssets(ctx context.Context, ownerID, assetType, status string) ([]Asset, error)
	UpdateAsset(ctx context.Context, asset Asset) error
	DeleteAsset(ctx context.Context, id string) error

	CreateDebt(ctx context.Context, debt Debt) error
	GetDebt(ctx context.Context, id string) (Debt, error)
	ListDebts(ctx context.Context, ownerID, debtType, status string) ([]Debt, error)
	UpdateDebt(ctx context.Context, debt Debt) error
	DeleteDebt(ctx context.Context, id string) error
}

// PostgresRepository stores portfolio records in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateAsset inserts an asset record.
func (r *PostgresRepository) CreateAsset(ctx context.Context, asset Asset) error {
	assetID, err := uuid.Parse(asset.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(asset.UserID)
	if err != nil {
		return err
	}
	var acquired *time.Time
	if asset.AcquisitionDate != nil {
		utc := asset.AcquisitionDate.UTC()
		acquired = &utc
	}
	_, err = r.db.Exec(ctx, `INSERT INTO assets
        (id, user_id, name, type, status, value_cents, acquisition_value_cents, current_value_cents, currency, institution, notes, acquisition_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		assetID, ownerID, asset.Name, asset.Type, asset.Status, asset.ValueCents,
		asset.AcquisitionValueCents, asset.CurrentValueCents, asset.Currency,
		asset.Institution, asset.Notes, acquired, asset.CreatedAt.UTC(), asset.UpdatedAt.UTC())
	return err
}

// GetAsset fetches an asset by identifier.
func (r *PostgresRepository) GetAsset(ctx context.Context, id string) (Asset, error) {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return Asset{}, apperr.NotFoundf("asset %s", id)
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, name, type, status, value_cents, acquisition_value_cents, current_value_cents, currency, institution, notes, acquisition_date, created_at, updated_at
        FROM assets WHERE id = $1`, assetID)
	return scanAsset(row)
}

// ListAssets returns the owner's assets, newest first, optionally filtered.
func (r *PostgresRepository) ListAssets(ctx context.Context, ownerID, assetType, status string) ([]Asset, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperr.NotFoundf("user %s", ownerID)
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, name, type, status, value_cents, acquisition_value_cents, current_value_cents, currency, institution, notes, acquisition_date, created_at, updated_at
        FROM assets WHERE user_id = $1 AND ($2 = '' OR type = $2) AND ($3 = '' OR status = $3)
        ORDER BY created_at DESC, id DESC`, owner, assetType, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// UpdateAsset rewrites the mutable fields of an asset.
func (r *PostgresRepository) UpdateAsset(ctx context.Context, asset Asset) error {
	assetID, err := uuid.Parse(asset.ID)
	if err != nil {
		return apperr.NotFoundf("asset %s", asset.ID)
	}
	var acquired *time.Time
	if asset.AcquisitionDate != nil {
		utc := asset.AcquisitionDate.UTC()
		acquired = &utc
	}
	cmd, err := r.db.Exec(ctx, `UPDATE assets SET name = $1, type = $2, status = $3, value_cents = $4,
        acquisition_value_cents = $5, current_value_cents = $6, currency = $7, institution = $8,
        notes = $9, acquisition_date = $10, updated_at = $11 WHERE id = $12`,
		asset.Name, asset.Type, asset.Status, asset.ValueCents, asset.AcquisitionValueCents,
		asset.CurrentValueCents, asset.Currency, asset.Institution, asset.Notes, acquired,
		asset.UpdatedAt.UTC(), assetID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("asset %s", asset.ID)
	}
	return nil
}

// DeleteAsset removes an asset permanently.
func (r *PostgresRepository) DeleteAsset(ctx context.Context, id string) error {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return apperr.NotFoundf("asset %s", id)
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, assetID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("asset %s", id)
	}
	return nil
}

// CreateDebt inserts a debt record.
func (r *PostgresRepository) CreateDebt(ctx context.Context, debt Debt) error {
	debtID, err := uuid.Parse(debt.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(debt.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO debts
        (id, user_id, name, type, status, original_amount_cents, current_balance_cents, minimum_payment_cents, interest_rate, payment_frequency, lender, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		debtID, ownerID, debt.Name, debt.Type, debt.Status, debt.OriginalAmountCents,
		debt.CurrentBalanceCents, debt.MinimumPaymentCents, debt.InterestRate,
		debt.PaymentFrequency, debt.Lender, debt.Notes, debt.CreatedAt.UTC(), debt.UpdatedAt.UTC())
	return err
}

// GetDebt fetches a debt by identifier.
func (r *PostgresRepository) GetDebt(ctx context.Context, id string) (Debt, error) {
	debtID, err := uuid.Parse(id)
	if err != nil {
		return Debt{}, apperr.NotFoundf("debt %s", id)
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, name, type, status, original_amount_cents, current_balance_cents, minimum_payment_cents, interest_rate, payment_frequency, lender, notes, created_at, updated_at
        FROM debts WHERE id = $1`, debtID)
	return scanDebt(row)
}

// ListDebts returns the owner's debts, newest first, optionally filtered.
func (r *PostgresRepository) ListDebts(ctx context.Context, ownerID, debtType, status string) ([]Debt, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperr.NotFoundf("user %s", ownerID)
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, name, type, status, original_amount_cents, current_balance_cents, minimum_payment_cents, interest_rate, payment_frequency, lender, notes, created_at, updated_at
        FROM debts WHERE user_id = $1 AND ($2 = '' OR type = $2) AND ($3 = '' OR status = $3)
        ORDER BY created_at DESC, id DESC`, owner, debtType, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

// UpdateDebt rewrites the mutable fields of a debt.
func (r *PostgresRepository) UpdateDebt(ctx context.Context, debt Debt) error {
	debtID, err := uuid.Parse(debt.ID)
	if err != nil {
		return apperr.NotFoundf("debt %s", debt.ID)
	}
	cmd, err := r.db.Exec(ctx, `UPDATE debts SET name = $1, type = $2, status = $3, original_amount_cents = $4,
        current_balance_cents = $5, minimum_payment_cents = $6, interest_rate = $7, payment_frequency = $8,
        lender = $9, notes = $10, updated_at = $11 WHERE id = $12`,
		debt.Name, debt.Type, debt.Status, debt.OriginalAmountCents, debt.CurrentBalanceCents,
		debt.MinimumPaymentCents, debt.InterestRate, debt.PaymentFrequency, debt.Lender,
		debt.Notes, debt.UpdatedAt.UTC(), debtID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("debt %s", debt.ID)
	}
	return nil
}

// DeleteDebt removes a debt permanently.
func (r *PostgresRepository) DeleteDebt(ctx context.Context, id string) error {
	debtID, err := uuid.Parse(id)
	if err != nil {
		return apperr.NotFoundf("debt %s", id)
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM debts WHERE id = $1`, debtID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("debt %s", id)
	}
	return nil
}

func scanAsset(row pgx.Row) (Asset, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		acquired  *time.Time
		createdAt time.Time
		updatedAt time.Time
		asset     Asset
	)
	if err := row.Scan(&id, &ownerID, &asset.Name, &asset.Type, &asset.Status, &asset.ValueCents,
		&asset.AcquisitionValueCents, &asset.CurrentValueCents, &asset.Currency,
		&asset.Institution, &asset.Notes, &acquired, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Asset{}, apperr.NotFoundf("asset")
		}
		return Asset{}, err
	}
	asset.ID = id.String()
	asset.UserID = ownerID.String()
	if acquired != nil {
		utc := acquired.UTC()
		asset.AcquisitionDate = &utc
	}
	asset.CreatedAt = createdAt.UTC()
	asset.UpdatedAt = updatedAt.UTC()
	return asset, nil
}

func scanDebt(row pgx.Row) (Debt, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		debt      Debt
	)
	if err := row.Scan(&id, &ownerID, &debt.Name, &debt.Type, &debt.Status, &debt.OriginalAmountCents,
		&debt.CurrentBalanceCents, &debt.MinimumPaymentCents, &debt.InterestRate,
		&debt.PaymentFrequency, &debt.Lender, &debt.Notes, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Debt{}, apperr.NotFoundf("debt")
		}
		return Debt{}, err
	}
	debt.ID = id.String()
	debt.UserID = ownerID.String()
	debt.CreatedAt = createdAt.UTC()
	debt.UpdatedAt = updatedAt.UTC()
	return debt, nil
}

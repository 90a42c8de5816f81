package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/financia-ai/financia/internal/apperr"
)

// Repository persists transactions.
type Repository interface {
	Create(ctx context.Context, tx Transaction) error
	Get(ctx context.Context, id string) (Transaction, error)
	ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]Transaction, error)
	Update(ctx context.Context, tx Transaction) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores transactions in PostgreSQL. Every method is a
// single statement or transaction, so each logical operation is atomic.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a transaction record.
func (r *PostgresRepository) Create(ctx context.Context, tx Transaction) error {
	txID, err := uuid.Parse(tx.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(tx.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO transactions
        (id, user_id, amount_cents, type, status, category_id, description, tags, notes, occurred_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		txID, ownerID, tx.AmountCents, tx.Type, tx.Status, tx.CategoryID, tx.Description,
		joinTags(tx.Tags), tx.Notes, tx.OccurredAt.UTC(), tx.CreatedAt.UTC(), tx.UpdatedAt.UTC())
	return err
}

// Get fetches a transaction by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Transaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return Transaction{}, apperr.NotFoundf("transaction %s", id)
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, amount_cents, type, status, category_id, description, tags, notes, occurred_at, created_at, updated_at
        FROM transactions WHERE id = $1`, txID)
	return scanTransaction(row)
}

// ListForOwner returns the owner's transactions ordered by occurrence date
// descending, newest insert first on ties.
func (r *PostgresRepository) ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]Transaction, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperr.NotFoundf("user %s", ownerID)
	}

	query := strings.Builder{}
	query.WriteString(`SELECT id, user_id, amount_cents, type, status, category_id, description, tags, notes, occurred_at, created_at, updated_at
        FROM transactions WHERE user_id = $1`)
	args := []any{owner}

	appendClause := func(clause string, value any) {
		args = append(args, value)
		query.WriteString(fmt.Sprintf(" AND "+clause, len(args)))
	}
	if filter.Type != "" {
		appendClause("type = $%d", filter.Type)
	}
	if filter.Status != "" {
		appendClause("status = $%d", filter.Status)
	}
	if filter.CategoryID != "" {
		catID, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, apperr.Validationf("invalid category id %s", filter.CategoryID)
		}
		appendClause("category_id = $%d", catID)
	}
	if filter.From != nil {
		appendClause("occurred_at >= $%d", filter.From.UTC())
	}
	if filter.To != nil {
		appendClause("occurred_at <= $%d", filter.To.UTC())
	}
	query.WriteString(" ORDER BY occurred_at DESC, created_at DESC, id DESC")

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Update rewrites the mutable fields of a transaction.
func (r *PostgresRepository) Update(ctx context.Context, tx Transaction) error {
	txID, err := uuid.Parse(tx.ID)
	if err != nil {
		return apperr.NotFoundf("transaction %s", tx.ID)
	}
	cmd, err := r.db.Exec(ctx, `UPDATE transactions SET amount_cents = $1, type = $2, status = $3, category_id = $4,
        description = $5, tags = $6, notes = $7, occurred_at = $8, updated_at = $9 WHERE id = $10`,
		tx.AmountCents, tx.Type, tx.Status, tx.CategoryID, tx.Description,
		joinTags(tx.Tags), tx.Notes, tx.OccurredAt.UTC(), tx.UpdatedAt.UTC(), txID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("transaction %s", tx.ID)
	}
	return nil
}

// Delete removes a transaction permanently.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	txID, err := uuid.Parse(id)
	if err != nil {
		return apperr.NotFoundf("transaction %s", id)
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, txID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("transaction %s", id)
	}
	return nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		id         uuid.UUID
		ownerID    uuid.UUID
		categoryID *uuid.UUID
		tags       string
		occurredAt time.Time
		createdAt  time.Time
		updatedAt  time.Time
		tx         Transaction
	)
	if err := row.Scan(&id, &ownerID, &tx.AmountCents, &tx.Type, &tx.Status, &categoryID,
		&tx.Description, &tags, &tx.Notes, &occurredAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, apperr.NotFoundf("transaction")
		}
		return Transaction{}, err
	}
	tx.ID = id.String()
	tx.UserID = ownerID.String()
	if categoryID != nil {
		cat := categoryID.String()
		tx.CategoryID = &cat
	}
	tx.Tags = splitTags(tags)
	tx.OccurredAt = occurredAt.UTC()
	tx.CreatedAt = createdAt.UTC()
	tx.UpdatedAt = updatedAt.UTC()
	return tx, nil
}

// Tags are stored comma-joined in a single column.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

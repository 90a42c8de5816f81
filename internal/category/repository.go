package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/financia-ai/financia/internal/apperr"
)

// Repository persists categories.
type Repository interface {
	Create(ctx context.Context, cat Category) error
	Get(ctx context.Context, id string) (Category, error)
	ListForOwner(ctx context.Context, ownerID string) ([]Category, error)
	Update(ctx context.Context, cat Category) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores categories in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a category record.
func (r *PostgresRepository) Create(ctx context.Context, cat Category) error {
	catID, err := uuid.Parse(cat.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO categories (id, name, description, user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		catID, cat.Name, cat.Description, cat.UserID, cat.CreatedAt.UTC(), cat.UpdatedAt.UTC())
	return err
}

// Get fetches a category by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Category, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return Category{}, apperr.NotFoundf("category %s", id)
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, description, user_id, created_at, updated_at
        FROM categories WHERE id = $1`, catID)
	return scanCategory(row)
}

// ListForOwner returns the owner's categories plus the global ones, name ascending.
func (r *PostgresRepository) ListForOwner(ctx context.Context, ownerID string) ([]Category, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperr.NotFoundf("user %s", ownerID)
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, description, user_id, created_at, updated_at
        FROM categories WHERE user_id = $1 OR user_id IS NULL ORDER BY name ASC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// Update rewrites the mutable fields of a category.
func (r *PostgresRepository) Update(ctx context.Context, cat Category) error {
	catID, err := uuid.Parse(cat.ID)
	if err != nil {
		return apperr.NotFoundf("category %s", cat.ID)
	}
	cmd, err := r.db.Exec(ctx, `UPDATE categories SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		cat.Name, cat.Description, cat.UpdatedAt.UTC(), catID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("category %s", cat.ID)
	}
	return nil
}

// Delete removes a category permanently.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	catID, err := uuid.Parse(id)
	if err != nil {
		return apperr.NotFoundf("category %s", id)
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, catID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFoundf("category %s", id)
	}
	return nil
}

func scanCategory(row pgx.Row) (Category, error) {
	var (
		id        uuid.UUID
		userID    *uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		cat       Category
	)
	if err := row.Scan(&id, &cat.Name, &cat.Description, &userID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFoundf("category")
		}
		return Category{}, err
	}
	cat.ID = id.String()
	if userID != nil {
		owner := userID.String()
		cat.UserID = &owner
	}
	cat.CreatedAt = createdAt.UTC()
	cat.UpdatedAt = updatedAt.UTC()
	return cat, nil
}

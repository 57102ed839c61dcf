package repositories

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ManagerRepository struct {
	Q Querier
}

func NewManagerRepository(q Querier) *ManagerRepository {
	return &ManagerRepository{Q: q}
}

func (r *ManagerRepository) Create(ctx context.Context, manager *models.Manager) error {
	if manager.ID == "" {
		manager.ID = uuid.New().String()
	}

	query := `
		INSERT INTO managers (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.Q.QueryRow(ctx, query,
		manager.ID,
		manager.Name,
		manager.Email,
		manager.PasswordHash,
	).Scan(&manager.CreatedAt, &manager.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}
	return nil
}

func (r *ManagerRepository) GetByID(ctx context.Context, id string) (*models.Manager, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM managers
		WHERE id = $1
	`

	manager := &models.Manager{}
	err := r.Q.QueryRow(ctx, query, id).Scan(
		&manager.ID,
		&manager.Name,
		&manager.Email,
		&manager.PasswordHash,
		&manager.CreatedAt,
		&manager.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	return manager, nil
}

func (r *ManagerRepository) List(ctx context.Context) ([]*models.Manager, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM managers
		ORDER BY name ASC
	`

	rows, err := r.Q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	var managers []*models.Manager
	for rows.Next() {
		manager := &models.Manager{}
		err := rows.Scan(
			&manager.ID,
			&manager.Name,
			&manager.Email,
			&manager.PasswordHash,
			&manager.CreatedAt,
			&manager.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		managers = append(managers, manager)
	}

	return managers, rows.Err()
}

func (r *ManagerRepository) Update(ctx context.Context, manager *models.Manager) error {
	query := `
		UPDATE managers
		SET name = $2, email = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.Q.Exec(ctx, query, manager.ID, manager.Name, manager.Email, manager.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to update manager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("manager not found: %s", manager.ID)
	}
	return nil
}

// Delete removes the manager row. Dependent rows (workers, bores, expenses,
// stock, logs) go with it via ON DELETE CASCADE.
func (r *ManagerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM managers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete manager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("manager not found: %s", id)
	}
	return nil
}

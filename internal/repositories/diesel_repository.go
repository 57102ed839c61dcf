package repositories

import (
	"context"
	"fmt"

	"borewell-backend/internal/models"

	"github.com/google/uuid"
)

type DieselRepository struct {
	Q Querier
}

func NewDieselRepository(q Querier) *DieselRepository {
	return &DieselRepository{Q: q}
}

func (r *DieselRepository) CreatePurchase(ctx context.Context, purchase *models.DieselPurchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}

	query := `
		INSERT INTO diesel_purchases (id, liters, cost, date, manager_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.Q.Exec(ctx, query,
		purchase.ID,
		purchase.Liters,
		purchase.Cost,
		purchase.Date,
		purchase.ManagerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create diesel purchase: %w", err)
	}
	return nil
}

func (r *DieselRepository) ListPurchasesByManager(ctx context.Context, managerID string) ([]*models.DieselPurchase, error) {
	query := `
		SELECT id, liters, cost, date, manager_id
		FROM diesel_purchases
		WHERE manager_id = $1
		ORDER BY date DESC
	`

	rows, err := r.Q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list diesel purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*models.DieselPurchase
	for rows.Next() {
		purchase := &models.DieselPurchase{}
		err := rows.Scan(
			&purchase.ID,
			&purchase.Liters,
			&purchase.Cost,
			&purchase.Date,
			&purchase.ManagerID,
		)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}

	return purchases, rows.Err()
}

func (r *DieselRepository) CreateUsage(ctx context.Context, usage *models.DieselUsage) error {
	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}

	query := `
		INSERT INTO diesel_usage (id, liters_used, purpose, date, manager_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.Q.Exec(ctx, query,
		usage.ID,
		usage.LitersUsed,
		usage.Purpose,
		usage.Date,
		usage.ManagerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create diesel usage: %w", err)
	}
	return nil
}

func (r *DieselRepository) ListUsageByManager(ctx context.Context, managerID string) ([]*models.DieselUsage, error) {
	query := `
		SELECT id, liters_used, purpose, date, manager_id
		FROM diesel_usage
		WHERE manager_id = $1
		ORDER BY date DESC
	`

	rows, err := r.Q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list diesel usage: %w", err)
	}
	defer rows.Close()

	var usages []*models.DieselUsage
	for rows.Next() {
		usage := &models.DieselUsage{}
		err := rows.Scan(
			&usage.ID,
			&usage.LitersUsed,
			&usage.Purpose,
			&usage.Date,
			&usage.ManagerID,
		)
		if err != nil {
			return nil, err
		}
		usages = append(usages, usage)
	}

	return usages, rows.Err()
}

func (r *DieselRepository) DeleteUsage(ctx context.Context, id string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM diesel_usage WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete diesel usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("diesel usage not found: %s", id)
	}
	return nil
}

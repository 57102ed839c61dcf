package repositories

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BoreRepository persists bores with their billed pipe entries and payments.
// Mutations run on the caller's Querier so bore creation and deletion can
// share a transaction with the pipe-stock side.
type BoreRepository struct {
	Q Querier
}

func NewBoreRepository(q Querier) *BoreRepository {
	return &BoreRepository{Q: q}
}

func (r *BoreRepository) Create(ctx context.Context, bore *models.Bore) error {
	if bore.ID == "" {
		bore.ID = uuid.New().String()
	}

	query := `
		INSERT INTO bores (id, date, bore_number, total_feet, price_per_feet, agent_name, total_bill, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.Q.QueryRow(ctx, query,
		bore.ID,
		bore.Date,
		bore.BoreNumber,
		bore.TotalFeet,
		bore.PricePerFeet,
		bore.AgentName,
		bore.TotalBill,
		bore.ManagerID,
	).Scan(&bore.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bore: %w", err)
	}

	for i := range bore.PipesUsed {
		entry := &bore.PipesUsed[i]
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		entry.BoreID = bore.ID
		_, err := r.Q.Exec(ctx, `
			INSERT INTO pipe_entries (id, bore_id, size, length, price_per_pipe_foot)
			VALUES ($1, $2, $3, $4, $5)
		`, entry.ID, entry.BoreID, entry.Size, entry.Length, entry.PricePerPipeFoot)
		if err != nil {
			return fmt.Errorf("failed to create pipe entry: %w", err)
		}
	}

	return nil
}

func (r *BoreRepository) GetByID(ctx context.Context, id string) (*models.Bore, error) {
	query := `
		SELECT id, date, bore_number, total_feet, price_per_feet, agent_name, total_bill, manager_id, created_at
		FROM bores
		WHERE id = $1
	`

	bore := &models.Bore{}
	err := r.Q.QueryRow(ctx, query, id).Scan(
		&bore.ID,
		&bore.Date,
		&bore.BoreNumber,
		&bore.TotalFeet,
		&bore.PricePerFeet,
		&bore.AgentName,
		&bore.TotalBill,
		&bore.ManagerID,
		&bore.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bore: %w", err)
	}

	if bore.PipesUsed, err = r.pipeEntries(ctx, bore.ID); err != nil {
		return nil, err
	}
	if bore.Payments, err = r.payments(ctx, bore.ID); err != nil {
		return nil, err
	}
	return bore, nil
}

func (r *BoreRepository) ListByManager(ctx context.Context, managerID string) ([]*models.Bore, error) {
	query := `
		SELECT id, date, bore_number, total_feet, price_per_feet, agent_name, total_bill, manager_id, created_at
		FROM bores
		WHERE manager_id = $1
		ORDER BY date DESC
	`

	rows, err := r.Q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bores: %w", err)
	}
	defer rows.Close()

	var bores []*models.Bore
	for rows.Next() {
		bore := &models.Bore{}
		err := rows.Scan(
			&bore.ID,
			&bore.Date,
			&bore.BoreNumber,
			&bore.TotalFeet,
			&bore.PricePerFeet,
			&bore.AgentName,
			&bore.TotalBill,
			&bore.ManagerID,
			&bore.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bores = append(bores, bore)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, bore := range bores {
		if bore.PipesUsed, err = r.pipeEntries(ctx, bore.ID); err != nil {
			return nil, err
		}
		if bore.Payments, err = r.payments(ctx, bore.ID); err != nil {
			return nil, err
		}
	}
	return bores, nil
}

func (r *BoreRepository) pipeEntries(ctx context.Context, boreID string) ([]models.PipeEntry, error) {
	query := `
		SELECT id, bore_id, size, length, price_per_pipe_foot
		FROM pipe_entries
		WHERE bore_id = $1
		ORDER BY size ASC
	`

	rows, err := r.Q.Query(ctx, query, boreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipe entries: %w", err)
	}
	defer rows.Close()

	var entries []models.PipeEntry
	for rows.Next() {
		var entry models.PipeEntry
		err := rows.Scan(&entry.ID, &entry.BoreID, &entry.Size, &entry.Length, &entry.PricePerPipeFoot)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *BoreRepository) payments(ctx context.Context, boreID string) ([]models.Payment, error) {
	query := `
		SELECT id, bore_id, date, amount
		FROM payments
		WHERE bore_id = $1
		ORDER BY date ASC
	`

	rows, err := r.Q.Query(ctx, query, boreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(&payment.ID, &payment.BoreID, &payment.Date, &payment.Amount)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *BoreRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}

	_, err := r.Q.Exec(ctx, `
		INSERT INTO payments (id, bore_id, date, amount)
		VALUES ($1, $2, $3, $4)
	`, payment.ID, payment.BoreID, payment.Date, payment.Amount)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *BoreRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM payments WHERE id = $1", paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %s", paymentID)
	}
	return nil
}

// DeleteCascade removes a bore with its payments and pipe entries. Meant to
// run inside the bore-deletion transaction alongside the stock refund.
func (r *BoreRepository) DeleteCascade(ctx context.Context, boreID string) error {
	if _, err := r.Q.Exec(ctx, "DELETE FROM payments WHERE bore_id = $1", boreID); err != nil {
		return fmt.Errorf("failed to delete bore payments: %w", err)
	}
	if _, err := r.Q.Exec(ctx, "DELETE FROM pipe_entries WHERE bore_id = $1", boreID); err != nil {
		return fmt.Errorf("failed to delete bore pipe entries: %w", err)
	}
	tag, err := r.Q.Exec(ctx, "DELETE FROM bores WHERE id = $1", boreID)
	if err != nil {
		return fmt.Errorf("failed to delete bore: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bore not found: %s", boreID)
	}
	return nil
}

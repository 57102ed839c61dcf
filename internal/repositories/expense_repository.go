package repositories

import (
	"context"
	"fmt"

	"borewell-backend/internal/models"

	"github.com/google/uuid"
)

// ExpenseRepository covers both expense tables: free-form normal expenses and
// per-worker labour payments.
type ExpenseRepository struct {
	Q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepository {
	return &ExpenseRepository{Q: q}
}

func (r *ExpenseRepository) CreateNormal(ctx context.Context, expense *models.NormalExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}

	query := `
		INSERT INTO normal_expenses (id, description, amount, date, category, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.Q.Exec(ctx, query,
		expense.ID,
		expense.Description,
		expense.Amount,
		expense.Date,
		expense.Category,
		expense.ManagerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListNormalByManager(ctx context.Context, managerID string) ([]*models.NormalExpense, error) {
	query := `
		SELECT id, description, amount, date, COALESCE(category, ''), manager_id
		FROM normal_expenses
		WHERE manager_id = $1
		ORDER BY date DESC
	`

	rows, err := r.Q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.NormalExpense
	for rows.Next() {
		expense := &models.NormalExpense{}
		err := rows.Scan(
			&expense.ID,
			&expense.Description,
			&expense.Amount,
			&expense.Date,
			&expense.Category,
			&expense.ManagerID,
		)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) DeleteNormal(ctx context.Context, id string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM normal_expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found: %s", id)
	}
	return nil
}

func (r *ExpenseRepository) CreateLabourPayment(ctx context.Context, payment *models.LabourPayment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}

	query := `
		INSERT INTO labour_payments (id, worker_id, amount, date, manager_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.Q.Exec(ctx, query,
		payment.ID,
		payment.WorkerID,
		payment.Amount,
		payment.Date,
		payment.ManagerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create labour payment: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListLabourByManager(ctx context.Context, managerID string) ([]*models.LabourPayment, error) {
	query := `
		SELECT id, worker_id, amount, date, manager_id
		FROM labour_payments
		WHERE manager_id = $1
		ORDER BY date DESC
	`

	rows, err := r.Q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labour payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.LabourPayment
	for rows.Next() {
		payment := &models.LabourPayment{}
		err := rows.Scan(
			&payment.ID,
			&payment.WorkerID,
			&payment.Amount,
			&payment.Date,
			&payment.ManagerID,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *ExpenseRepository) DeleteLabourPayment(ctx context.Context, id string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM labour_payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete labour payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("labour payment not found: %s", id)
	}
	return nil
}

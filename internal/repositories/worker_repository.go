package repositories

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WorkerRepository struct {
	Q Querier
}

func NewWorkerRepository(q Querier) *WorkerRepository {
	return &WorkerRepository{Q: q}
}

func (r *WorkerRepository) Create(ctx context.Context, worker *models.Worker) error {
	if worker.ID == "" {
		worker.ID = uuid.New().String()
	}

	query := `
		INSERT INTO workers (id, name, place, monthly_salary, months_worked, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.Q.Exec(ctx, query,
		worker.ID,
		worker.Name,
		worker.Place,
		worker.MonthlySalary,
		worker.MonthsWorked,
		worker.ManagerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

func (r *WorkerRepository) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	query := `
		SELECT w.id, w.name, w.place, w.monthly_salary, w.months_worked, w.manager_id,
		       COALESCE(SUM(lp.amount), 0)
		FROM workers w
		LEFT JOIN labour_payments lp ON lp.worker_id = w.id
		WHERE w.id = $1
		GROUP BY w.id
	`

	worker := &models.Worker{}
	err := r.Q.QueryRow(ctx, query, id).Scan(
		&worker.ID,
		&worker.Name,
		&worker.Place,
		&worker.MonthlySalary,
		&worker.MonthsWorked,
		&worker.ManagerID,
		&worker.AmountPaid,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return worker, nil
}

// ListByManager returns workers with amount_paid aggregated from labour
// payments in one query.
func (r *WorkerRepository) ListByManager(ctx context.Context, managerID string) ([]*models.Worker, error) {
	query := `
		SELECT w.id, w.name, w.place, w.monthly_salary, w.months_worked, w.manager_id,
		       COALESCE(SUM(lp.amount), 0)
		FROM workers w
		LEFT JOIN labour_payments lp ON lp.worker_id = w.id
		WHERE w.manager_id = $1
		GROUP BY w.id
		ORDER BY w.name ASC
	`

	rows, err := r.Q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []*models.Worker
	for rows.Next() {
		worker := &models.Worker{}
		err := rows.Scan(
			&worker.ID,
			&worker.Name,
			&worker.Place,
			&worker.MonthlySalary,
			&worker.MonthsWorked,
			&worker.ManagerID,
			&worker.AmountPaid,
		)
		if err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	return workers, rows.Err()
}

func (r *WorkerRepository) Update(ctx context.Context, worker *models.Worker) error {
	query := `
		UPDATE workers
		SET name = $2, place = $3, monthly_salary = $4, months_worked = $5
		WHERE id = $1
	`

	tag, err := r.Q.Exec(ctx, query, worker.ID, worker.Name, worker.Place, worker.MonthlySalary, worker.MonthsWorked)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("worker not found: %s", worker.ID)
	}
	return nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM workers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("worker not found: %s", id)
	}
	return nil
}

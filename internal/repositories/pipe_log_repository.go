package repositories

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/pipestock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PipeLogRepository persists the movement log in pipe_logs. Entries are only
// ever inserted and, for withdrawal reversal and bore deletion, deleted.
type PipeLogRepository struct {
	Q Querier
}

func NewPipeLogRepository(q Querier) *PipeLogRepository {
	return &PipeLogRepository{Q: q}
}

func (r *PipeLogRepository) Append(ctx context.Context, entry *pipestock.PipeLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO pipe_logs (id, date, kind, quantity, diameter, manager_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.Q.Exec(ctx, query,
		entry.ID,
		entry.Date,
		string(entry.Kind),
		entry.Quantity,
		entry.Diameter,
		entry.ManagerID,
		entry.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to append pipe log: %w", err)
	}
	return nil
}

func (r *PipeLogRepository) FindByID(ctx context.Context, id string) (*pipestock.PipeLog, error) {
	query := `
		SELECT id, date, kind, quantity, diameter, manager_id, note
		FROM pipe_logs
		WHERE id = $1
	`

	entry := &pipestock.PipeLog{}
	var kind string
	err := r.Q.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.Date,
		&kind,
		&entry.Quantity,
		&entry.Diameter,
		&entry.ManagerID,
		&entry.Note,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pipe log: %w", err)
	}
	entry.Kind = pipestock.LogKind(kind)
	return entry, nil
}

func (r *PipeLogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM pipe_logs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete pipe log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pipe log %s", pipestock.ErrNotFound, id)
	}
	return nil
}

func (r *PipeLogRepository) list(ctx context.Context, query string, args ...any) ([]*pipestock.PipeLog, error) {
	rows, err := r.Q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipe logs: %w", err)
	}
	defer rows.Close()

	var entries []*pipestock.PipeLog
	for rows.Next() {
		entry := &pipestock.PipeLog{}
		var kind string
		err := rows.Scan(
			&entry.ID,
			&entry.Date,
			&kind,
			&entry.Quantity,
			&entry.Diameter,
			&entry.ManagerID,
			&entry.Note,
		)
		if err != nil {
			return nil, err
		}
		entry.Kind = pipestock.LogKind(kind)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *PipeLogRepository) ListForManager(ctx context.Context, managerID string) ([]*pipestock.PipeLog, error) {
	query := `
		SELECT id, date, kind, quantity, diameter, manager_id, note
		FROM pipe_logs
		WHERE manager_id = $1
		ORDER BY date DESC
	`
	return r.list(ctx, query, managerID)
}

func (r *PipeLogRepository) ListForBore(ctx context.Context, managerID, boreNumber string) ([]*pipestock.PipeLog, error) {
	query := `
		SELECT id, date, kind, quantity, diameter, manager_id, note
		FROM pipe_logs
		WHERE manager_id = $1 AND note = $2
	`
	return r.list(ctx, query, managerID, boreNumber)
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/pipestock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PipeStockRepository persists stock lines in pipe_stocks. Godown rows carry
// manager_id = '' so the (manager_id, size) unique constraint covers both
// owners; pipestock.Owner never leaks the empty string to callers.
type PipeStockRepository struct {
	Q Querier
}

func NewPipeStockRepository(q Querier) *PipeStockRepository {
	return &PipeStockRepository{Q: q}
}

func ownerKey(owner pipestock.Owner) string {
	id, ok := owner.ManagerID()
	if !ok {
		return ""
	}
	return id
}

func ownerFromKey(key string) pipestock.Owner {
	if key == "" {
		return pipestock.Godown
	}
	return pipestock.ManagerOwner(key)
}

func (r *PipeStockRepository) get(ctx context.Context, owner pipestock.Owner, size decimal.Decimal, lock bool) (*pipestock.StockItem, error) {
	query := `
		SELECT id, size, quantity, manager_id, updated_at
		FROM pipe_stocks
		WHERE manager_id = $1 AND size = $2
	`
	if lock {
		query += " FOR UPDATE"
	}

	item := &pipestock.StockItem{}
	var managerKey string
	err := r.Q.QueryRow(ctx, query, ownerKey(owner), size).Scan(
		&item.ID,
		&item.Size,
		&item.Quantity,
		&managerKey,
		&item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock line: %w", err)
	}
	item.Owner = ownerFromKey(managerKey)
	return item, nil
}

func (r *PipeStockRepository) Get(ctx context.Context, owner pipestock.Owner, size decimal.Decimal) (*pipestock.StockItem, error) {
	return r.get(ctx, owner, size, false)
}

func (r *PipeStockRepository) GetForUpdate(ctx context.Context, owner pipestock.Owner, size decimal.Decimal) (*pipestock.StockItem, error) {
	return r.get(ctx, owner, size, true)
}

func (r *PipeStockRepository) UpsertAdd(ctx context.Context, owner pipestock.Owner, size decimal.Decimal, delta int) (*pipestock.StockItem, error) {
	query := `
		INSERT INTO pipe_stocks (id, size, quantity, manager_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (manager_id, size)
		DO UPDATE SET quantity = pipe_stocks.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, size, quantity, updated_at
	`

	item := &pipestock.StockItem{Owner: owner}
	err := r.Q.QueryRow(ctx, query, uuid.New().String(), size, delta, ownerKey(owner)).Scan(
		&item.ID,
		&item.Size,
		&item.Quantity,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert stock line: %w", err)
	}
	return item, nil
}

func (r *PipeStockRepository) Decrement(ctx context.Context, owner pipestock.Owner, size decimal.Decimal, delta int) error {
	query := `
		UPDATE pipe_stocks
		SET quantity = quantity - $3, updated_at = NOW()
		WHERE manager_id = $1 AND size = $2 AND quantity >= $3
	`

	tag, err := r.Q.Exec(ctx, query, ownerKey(owner), size, delta)
	if err != nil {
		return fmt.Errorf("failed to decrement stock line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s size %s", pipestock.ErrInsufficientStock, owner, size)
	}
	return nil
}

// AddIfExists applies a signed delta with no floor. Zero rows affected is not
// an error; absent lines stay absent.
func (r *PipeStockRepository) AddIfExists(ctx context.Context, owner pipestock.Owner, size decimal.Decimal, delta int) error {
	query := `
		UPDATE pipe_stocks
		SET quantity = quantity + $3, updated_at = NOW()
		WHERE manager_id = $1 AND size = $2
	`

	if _, err := r.Q.Exec(ctx, query, ownerKey(owner), size, delta); err != nil {
		return fmt.Errorf("failed to update stock line: %w", err)
	}
	return nil
}

func (r *PipeStockRepository) SetQuantity(ctx context.Context, owner pipestock.Owner, size decimal.Decimal, quantity int) error {
	query := `
		UPDATE pipe_stocks
		SET quantity = $3, updated_at = NOW()
		WHERE manager_id = $1 AND size = $2
	`

	tag, err := r.Q.Exec(ctx, query, ownerKey(owner), size, quantity)
	if err != nil {
		return fmt.Errorf("failed to set stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s size %s", pipestock.ErrNotFound, owner, size)
	}
	return nil
}

func (r *PipeStockRepository) Delete(ctx context.Context, owner pipestock.Owner, size decimal.Decimal) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM pipe_stocks WHERE manager_id = $1 AND size = $2", ownerKey(owner), size)
	if err != nil {
		return fmt.Errorf("failed to delete stock line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s size %s", pipestock.ErrNotFound, owner, size)
	}
	return nil
}

func (r *PipeStockRepository) ListByOwner(ctx context.Context, owner pipestock.Owner) ([]*pipestock.StockItem, error) {
	query := `
		SELECT id, size, quantity, manager_id, updated_at
		FROM pipe_stocks
		WHERE manager_id = $1
		ORDER BY size ASC
	`

	rows, err := r.Q.Query(ctx, query, ownerKey(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to list stock lines: %w", err)
	}
	defer rows.Close()

	var items []*pipestock.StockItem
	for rows.Next() {
		item := &pipestock.StockItem{}
		var managerKey string
		err := rows.Scan(
			&item.ID,
			&item.Size,
			&item.Quantity,
			&managerKey,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Owner = ownerFromKey(managerKey)
		items = append(items, item)
	}

	return items, rows.Err()
}

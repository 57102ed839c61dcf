package repositories

import (
	"context"

	"borewell-backend/internal/pipestock"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner wraps the pool's Begin/Commit/Rollback cycle. Run satisfies
// pipestock.TxRunner; WithTx exposes the raw transaction Querier for services
// that combine pipe-stock work with their own rows (bore create and delete).
type TxRunner struct {
	DB *pgxpool.Pool
}

func NewTxRunner(db *pgxpool.Pool) *TxRunner {
	return &TxRunner{DB: db}
}

func (t *TxRunner) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := t.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (t *TxRunner) Run(ctx context.Context, fn func(stocks pipestock.StockStore, logs pipestock.LogStore) error) error {
	return t.WithTx(ctx, func(q Querier) error {
		return fn(NewPipeStockRepository(q), NewPipeLogRepository(q))
	})
}

package pipestock

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockStore is the balance table keyed by (size, owner). Implementations are
// either bound to a connection pool (reads) or to one open transaction
// (mutations inside TxRunner.Run).
type StockStore interface {
	// Get returns the stock line, or (nil, nil) when absent.
	Get(ctx context.Context, owner Owner, size decimal.Decimal) (*StockItem, error)
	// GetForUpdate locks the row for the rest of the transaction. Returns
	// (nil, nil) when absent.
	GetForUpdate(ctx context.Context, owner Owner, size decimal.Decimal) (*StockItem, error)
	// UpsertAdd increments an existing line or creates it with quantity=delta.
	UpsertAdd(ctx context.Context, owner Owner, size decimal.Decimal, delta int) (*StockItem, error)
	// Decrement subtracts delta, failing with ErrInsufficientStock when the
	// line is absent or would go below zero.
	Decrement(ctx context.Context, owner Owner, size decimal.Decimal, delta int) error
	// AddIfExists applies a signed delta only when the line exists; absent
	// lines are left alone. No sign guard: this is the raw update used by the
	// bore consumption and withdrawal reversal paths.
	AddIfExists(ctx context.Context, owner Owner, size decimal.Decimal, delta int) error
	// SetQuantity overwrites the quantity, failing with ErrNotFound when the
	// line is absent.
	SetQuantity(ctx context.Context, owner Owner, size decimal.Decimal, quantity int) error
	// Delete removes the line entirely, failing with ErrNotFound when absent.
	Delete(ctx context.Context, owner Owner, size decimal.Decimal) error
	// ListByOwner returns all lines for an owner, ascending by size.
	ListByOwner(ctx context.Context, owner Owner) ([]*StockItem, error)
}

// LogStore is the append-only movement log. Entries are manager-scoped; the
// godown has no log.
type LogStore interface {
	Append(ctx context.Context, entry *PipeLog) error
	// FindByID returns (nil, nil) when the entry does not exist.
	FindByID(ctx context.Context, id string) (*PipeLog, error)
	Delete(ctx context.Context, id string) error
	// ListForManager returns entries newest first (display convention).
	ListForManager(ctx context.Context, managerID string) ([]*PipeLog, error)
	// ListForBore returns the usage entries recorded for one bore.
	ListForBore(ctx context.Context, managerID, boreNumber string) ([]*PipeLog, error)
}

// TxRunner runs fn inside one database transaction with stores bound to that
// transaction. Commit on nil, rollback on any error. Every protocol mutation
// goes through exactly one Run call.
type TxRunner interface {
	Run(ctx context.Context, fn func(stocks StockStore, logs LogStore) error) error
}

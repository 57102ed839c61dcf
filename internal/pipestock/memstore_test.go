package pipestock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory StockStore and LogStore for exercising the
// protocols without a database. Single-goroutine tests, no locking.
type memStore struct {
	stocks map[string]*StockItem
	logs   []*PipeLog
}

func newMemStore() *memStore {
	return &memStore{stocks: make(map[string]*StockItem)}
}

func stockKey(owner Owner, size decimal.Decimal) string {
	return owner.String() + "|" + size.String()
}

func (m *memStore) Get(ctx context.Context, owner Owner, size decimal.Decimal) (*StockItem, error) {
	item, ok := m.stocks[stockKey(owner, size)]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (m *memStore) GetForUpdate(ctx context.Context, owner Owner, size decimal.Decimal) (*StockItem, error) {
	return m.Get(ctx, owner, size)
}

func (m *memStore) UpsertAdd(ctx context.Context, owner Owner, size decimal.Decimal, delta int) (*StockItem, error) {
	key := stockKey(owner, size)
	item, ok := m.stocks[key]
	if !ok {
		item = &StockItem{ID: uuid.New().String(), Size: size, Owner: owner}
		m.stocks[key] = item
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	cp := *item
	return &cp, nil
}

func (m *memStore) Decrement(ctx context.Context, owner Owner, size decimal.Decimal, delta int) error {
	item, ok := m.stocks[stockKey(owner, size)]
	if !ok || item.Quantity < delta {
		return fmt.Errorf("%w: %s size %s", ErrInsufficientStock, owner, size)
	}
	item.Quantity -= delta
	item.UpdatedAt = time.Now()
	return nil
}

func (m *memStore) AddIfExists(ctx context.Context, owner Owner, size decimal.Decimal, delta int) error {
	item, ok := m.stocks[stockKey(owner, size)]
	if !ok {
		return nil
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	return nil
}

func (m *memStore) SetQuantity(ctx context.Context, owner Owner, size decimal.Decimal, quantity int) error {
	item, ok := m.stocks[stockKey(owner, size)]
	if !ok {
		return fmt.Errorf("%w: %s size %s", ErrNotFound, owner, size)
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

func (m *memStore) Delete(ctx context.Context, owner Owner, size decimal.Decimal) error {
	key := stockKey(owner, size)
	if _, ok := m.stocks[key]; !ok {
		return fmt.Errorf("%w: %s size %s", ErrNotFound, owner, size)
	}
	delete(m.stocks, key)
	return nil
}

func (m *memStore) ListByOwner(ctx context.Context, owner Owner) ([]*StockItem, error) {
	var out []*StockItem
	for _, item := range m.stocks {
		if item.Owner == owner {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size.LessThan(out[j].Size) })
	return out, nil
}

func (m *memStore) Append(ctx context.Context, entry *PipeLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	cp := *entry
	m.logs = append(m.logs, &cp)
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id string) (*PipeLog, error) {
	for _, e := range m.logs {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteLog(ctx context.Context, id string) error {
	for i, e := range m.logs {
		if e.ID == id {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: pipe log %s", ErrNotFound, id)
}

func (m *memStore) ListForManager(ctx context.Context, managerID string) ([]*PipeLog, error) {
	var out []*PipeLog
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].ManagerID == managerID {
			cp := *m.logs[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) ListForBore(ctx context.Context, managerID, boreNumber string) ([]*PipeLog, error) {
	var out []*PipeLog
	for _, e := range m.logs {
		if e.ManagerID == managerID && e.Note == boreNumber {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memLogStore adapts memStore's log methods to the LogStore interface, whose
// Delete collides with StockStore's.
type memLogStore struct{ *memStore }

func (m memLogStore) Delete(ctx context.Context, id string) error {
	return m.DeleteLog(ctx, id)
}

// memTx runs fn directly against the shared store. Rollback is not simulated;
// the tests that need failure atomicity assert on error paths that fail
// before any write.
type memTx struct{ store *memStore }

func (t memTx) Run(ctx context.Context, fn func(stocks StockStore, logs LogStore) error) error {
	return fn(t.store, memLogStore{t.store})
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(memTx{store}, store, memLogStore{store})
	return svc, store
}

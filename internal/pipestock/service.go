package pipestock

import (
	"context"
	"fmt"
	"strings"

	"borewell-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// Service implements the stock protocols: withdrawal from godown, bore
// consumption, manual adjustment, stock-line deletion and withdrawal
// reversal. Every mutation runs inside one TxRunner transaction so a failure
// at any step rolls the whole operation back.
type Service struct {
	tx     TxRunner
	stocks StockStore // pool-bound, used for reads outside a transaction
	logs   LogStore
}

func NewService(tx TxRunner, stocks StockStore, logs LogStore) *Service {
	return &Service{tx: tx, stocks: stocks, logs: logs}
}

func validateSizeQty(size decimal.Decimal, quantity int) error {
	if !size.IsPositive() {
		return validationErr("size", "must be a positive decimal")
	}
	if quantity <= 0 {
		return validationErr("quantity", "must be a positive integer")
	}
	return nil
}

// Withdraw moves quantity pipes of one size from the godown to a manager and
// records a Purchase log entry, all atomically. Conservation: the godown
// decrement and manager increment always commit together or not at all.
func (s *Service) Withdraw(ctx context.Context, managerID string, size decimal.Decimal, quantity int) (*PipeLog, error) {
	if managerID == "" {
		return nil, validationErr("manager_id", "required")
	}
	if err := validateSizeQty(size, quantity); err != nil {
		return nil, err
	}

	var entry *PipeLog
	err := s.tx.Run(ctx, func(stocks StockStore, logs LogStore) error {
		godown, err := stocks.GetForUpdate(ctx, Godown, size)
		if err != nil {
			return err
		}
		if godown == nil || godown.Quantity < quantity {
			return fmt.Errorf("%w: godown has %d of size %s", ErrInsufficientStock, stockQty(godown), size)
		}
		if err := stocks.Decrement(ctx, Godown, size, quantity); err != nil {
			return err
		}
		if _, err := stocks.UpsertAdd(ctx, ManagerOwner(managerID), size, quantity); err != nil {
			return err
		}
		entry = &PipeLog{
			Date:      timeutil.Now(),
			Kind:      LogKindPurchase,
			Quantity:  quantity,
			Diameter:  size,
			ManagerID: managerID,
			Note:      NoteWithdrawal,
		}
		return logs.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ConsumeForBoreTx records pipe usage for a freshly created bore using stores
// bound to the caller's transaction (bore creation owns the transaction; this
// is its pipe-stock slice). For each size a Usage entry is appended with the
// bore number as note, and the manager's line is decremented if it exists.
// Zero-quantity lines are skipped; negative quantities are rejected before
// any store access. There is deliberately no sufficiency guard and no line
// creation here: availability is validated upstream against the derived
// balance, and a missing line means the usage is logged with no balance to
// reduce. The balance can go negative on this path; that matches the running
// system.
func (s *Service) ConsumeForBoreTx(ctx context.Context, stocks StockStore, logs LogStore, managerID, boreNumber string, usage []UsageLine) error {
	owner := ManagerOwner(managerID)
	for _, line := range usage {
		if line.Quantity < 0 {
			return validationErr("quantity", "must not be negative")
		}
		if line.Quantity == 0 {
			continue
		}
		entry := &PipeLog{
			Date:      timeutil.Now(),
			Kind:      LogKindUsage,
			Quantity:  line.Quantity,
			Diameter:  line.Diameter,
			ManagerID: managerID,
			Note:      boreNumber,
		}
		if err := logs.Append(ctx, entry); err != nil {
			return err
		}
		if err := stocks.AddIfExists(ctx, owner, line.Diameter, -line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Adjust overwrites a manager's quantity for one size. Adjustments may only
// shrink stock; increases must go through Withdraw so the godown side stays
// balanced. Equal quantity is a no-op with no log entry.
func (s *Service) Adjust(ctx context.Context, managerID string, size decimal.Decimal, newQuantity int) error {
	if managerID == "" {
		return validationErr("manager_id", "required")
	}
	if !size.IsPositive() {
		return validationErr("size", "must be a positive decimal")
	}
	if newQuantity < 0 {
		return validationErr("new_quantity", "must not be negative")
	}

	return s.tx.Run(ctx, func(stocks StockStore, logs LogStore) error {
		current, err := stocks.GetForUpdate(ctx, ManagerOwner(managerID), size)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: size %s for manager %s", ErrNotFound, size, managerID)
		}
		difference := current.Quantity - newQuantity
		if difference < 0 {
			return fmt.Errorf("%w: cannot increase stock via adjustment", ErrInvalidOperation)
		}
		if difference == 0 {
			return nil
		}
		if err := stocks.SetQuantity(ctx, ManagerOwner(managerID), size, newQuantity); err != nil {
			return err
		}
		return logs.Append(ctx, &PipeLog{
			Date:      timeutil.Now(),
			Kind:      LogKindUsage,
			Quantity:  difference,
			Diameter:  size,
			ManagerID: managerID,
			Note:      NoteAdjustment,
		})
	})
}

// DeleteStockLine liquidates one of a manager's stock lines: the remaining
// quantity (if any) is logged as Usage with note "Stock Deletion", then the
// row is removed. A quantity that merely reaches zero keeps its row; only
// this call removes it.
func (s *Service) DeleteStockLine(ctx context.Context, managerID string, size decimal.Decimal) error {
	if managerID == "" {
		return validationErr("manager_id", "required")
	}
	if !size.IsPositive() {
		return validationErr("size", "must be a positive decimal")
	}

	return s.tx.Run(ctx, func(stocks StockStore, logs LogStore) error {
		item, err := stocks.GetForUpdate(ctx, ManagerOwner(managerID), size)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: size %s for manager %s", ErrNotFound, size, managerID)
		}
		if item.Quantity > 0 {
			if err := logs.Append(ctx, &PipeLog{
				Date:      timeutil.Now(),
				Kind:      LogKindUsage,
				Quantity:  item.Quantity,
				Diameter:  size,
				ManagerID: managerID,
				Note:      NoteDeletion,
			}); err != nil {
				return err
			}
		}
		return stocks.Delete(ctx, ManagerOwner(managerID), size)
	})
}

// ReverseWithdrawal deletes a withdrawal log entry and undoes exactly the
// movement it recorded: the godown is refunded (recreating the row if it was
// drained and deleted), the manager's line is decremented if it still exists,
// and the log entry is removed. Only Purchase entries whose note marks a
// godown withdrawal qualify. The manager-side decrement carries no negative
// guard; if the manager's stock shrank since the withdrawal the balance goes
// negative. Known behavior, kept as-is.
func (s *Service) ReverseWithdrawal(ctx context.Context, managerID, logID string) (*PipeLog, error) {
	if logID == "" {
		return nil, validationErr("log_id", "required")
	}

	var reversed *PipeLog
	err := s.tx.Run(ctx, func(stocks StockStore, logs LogStore) error {
		entry, err := logs.FindByID(ctx, logID)
		if err != nil {
			return err
		}
		if entry == nil || entry.ManagerID != managerID {
			return fmt.Errorf("%w: pipe log %s", ErrNotFound, logID)
		}
		if entry.Kind != LogKindPurchase || !isWithdrawalNote(entry.Note) {
			return fmt.Errorf("%w: only withdrawal logs can be reversed", ErrInvalidOperation)
		}
		if _, err := stocks.UpsertAdd(ctx, Godown, entry.Diameter, entry.Quantity); err != nil {
			return err
		}
		if err := stocks.AddIfExists(ctx, ManagerOwner(entry.ManagerID), entry.Diameter, -entry.Quantity); err != nil {
			return err
		}
		if err := logs.Delete(ctx, entry.ID); err != nil {
			return err
		}
		reversed = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reversed, nil
}

// RefundForBoreDeletionTx is the pipe-stock slice of deleting a bore: every
// Usage entry recorded for the bore is refunded to the manager's line (where
// the line still exists) and the entries themselves are removed. Runs on the
// caller's transaction alongside the bore row deletion.
func (s *Service) RefundForBoreDeletionTx(ctx context.Context, stocks StockStore, logs LogStore, managerID, boreNumber string) error {
	owner := ManagerOwner(managerID)
	entries, err := logs.ListForBore(ctx, managerID, boreNumber)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := stocks.AddIfExists(ctx, owner, entry.Diameter, entry.Quantity); err != nil {
			return err
		}
		if err := logs.Delete(ctx, entry.ID); err != nil {
			return err
		}
	}
	return nil
}

// AddGodownStock receives new pipes into the godown (purchase from supplier).
// Creates the size row on first arrival. The godown keeps no movement log.
func (s *Service) AddGodownStock(ctx context.Context, size decimal.Decimal, quantity int) (*StockItem, error) {
	if err := validateSizeQty(size, quantity); err != nil {
		return nil, err
	}
	var item *StockItem
	err := s.tx.Run(ctx, func(stocks StockStore, logs LogStore) error {
		var err error
		item, err = stocks.UpsertAdd(ctx, Godown, size, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetGodownStock overwrites the godown quantity for a size (owner-side edit).
func (s *Service) SetGodownStock(ctx context.Context, size decimal.Decimal, quantity int) error {
	if !size.IsPositive() {
		return validationErr("size", "must be a positive decimal")
	}
	if quantity < 0 {
		return validationErr("quantity", "must not be negative")
	}
	return s.tx.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return stocks.SetQuantity(ctx, Godown, size, quantity)
	})
}

// DeleteGodownStock removes a godown size row entirely.
func (s *Service) DeleteGodownStock(ctx context.Context, size decimal.Decimal) error {
	if !size.IsPositive() {
		return validationErr("size", "must be a positive decimal")
	}
	return s.tx.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return stocks.Delete(ctx, Godown, size)
	})
}

// GodownStock lists godown lines ascending by size.
func (s *Service) GodownStock(ctx context.Context) ([]*StockItem, error) {
	return s.stocks.ListByOwner(ctx, Godown)
}

// ManagerStock lists one manager's lines ascending by size.
func (s *Service) ManagerStock(ctx context.Context, managerID string) ([]*StockItem, error) {
	return s.stocks.ListByOwner(ctx, ManagerOwner(managerID))
}

// Balance returns the current quantity for (owner, size) and whether the row
// exists. Reads outside any transaction are idempotent.
func (s *Service) Balance(ctx context.Context, owner Owner, size decimal.Decimal) (int, bool, error) {
	item, err := s.stocks.Get(ctx, owner, size)
	if err != nil {
		return 0, false, err
	}
	if item == nil {
		return 0, false, nil
	}
	return item.Quantity, true, nil
}

// LogsForManager lists a manager's movement log, newest first.
func (s *Service) LogsForManager(ctx context.Context, managerID string) ([]*PipeLog, error) {
	return s.logs.ListForManager(ctx, managerID)
}

func stockQty(item *StockItem) int {
	if item == nil {
		return 0
	}
	return item.Quantity
}

// isWithdrawalNote reports whether a log note marks a godown withdrawal.
// Matched by substring so older entries with variant wording still qualify.
func isWithdrawalNote(note string) bool {
	return strings.Contains(note, "Withdrawal")
}

package pipestock

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sizeSix  = decimal.RequireFromString("6")
	sizeFive = decimal.RequireFromString("5")
)

const managerRavi = "mgr-ravi"

func seedGodown(t *testing.T, svc *Service, size decimal.Decimal, qty int) {
	t.Helper()
	_, err := svc.AddGodownStock(context.Background(), size, qty)
	require.NoError(t, err)
}

func balance(t *testing.T, svc *Service, owner Owner, size decimal.Decimal) (int, bool) {
	t.Helper()
	qty, ok, err := svc.Balance(context.Background(), owner, size)
	require.NoError(t, err)
	return qty, ok
}

func TestWithdrawMovesStockAndLogs(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)

	entry, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)

	godownQty, _ := balance(t, svc, Godown, sizeSix)
	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 70, godownQty)
	assert.Equal(t, 30, managerQty)

	require.NotNil(t, entry)
	assert.Equal(t, LogKindPurchase, entry.Kind)
	assert.Equal(t, 30, entry.Quantity)
	assert.Equal(t, NoteWithdrawal, entry.Note)
	assert.Equal(t, managerRavi, entry.ManagerID)
	assert.Len(t, store.logs, 1)
}

func TestWithdrawInsufficientGodownStock(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 10)

	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.ErrorIs(t, err, ErrInsufficientStock)

	godownQty, _ := balance(t, svc, Godown, sizeSix)
	_, managerExists := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 10, godownQty, "godown untouched after rejected withdrawal")
	assert.False(t, managerExists, "no manager line created")
	assert.Empty(t, store.logs, "no log entry for rejected withdrawal")
}

func TestWithdrawUnknownSize(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Withdraw(context.Background(), managerRavi, sizeFive, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestWithdrawValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	var vErr *ValidationError
	_, err := svc.Withdraw(ctx, "", sizeSix, 10)
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Withdraw(ctx, managerRavi, sizeSix, 0)
	require.ErrorAs(t, err, &vErr)

	_, err = svc.Withdraw(ctx, managerRavi, decimal.Zero, 10)
	require.ErrorAs(t, err, &vErr)
}

func TestConsumeForBoreDecrementsAndLogs(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)

	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2041", []UsageLine{
			{Diameter: sizeSix, Quantity: 20},
		})
	})
	require.NoError(t, err)

	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 10, managerQty)

	entries, err := store.ListForBore(ctx, managerRavi, "BW-2041")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, LogKindUsage, entries[0].Kind)
	assert.Equal(t, 20, entries[0].Quantity)
}

func TestConsumeForBoreAllowsNegativeBalance(t *testing.T) {
	// Consumption has no sufficiency guard: availability is checked upstream
	// against the derived balance, and the raw decrement applies regardless.
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 10)
	require.NoError(t, err)

	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2042", []UsageLine{
			{Diameter: sizeSix, Quantity: 30},
		})
	})
	require.NoError(t, err)

	managerQty, exists := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.True(t, exists)
	assert.Equal(t, -20, managerQty)
}

func TestConsumeForBoreSkipsMissingLine(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	err := memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2043", []UsageLine{
			{Diameter: sizeFive, Quantity: 5},
		})
	})
	require.NoError(t, err)

	_, exists := balance(t, svc, ManagerOwner(managerRavi), sizeFive)
	assert.False(t, exists, "no line created for unheld size")
	assert.Len(t, store.logs, 1, "usage still logged")
}

func TestConsumeForBoreRejectsNegativeQuantity(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	logsBefore := len(store.logs)

	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2044", []UsageLine{
			{Diameter: sizeSix, Quantity: -5},
		})
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 30, managerQty, "stock untouched after rejected usage")
	assert.Len(t, store.logs, logsBefore, "no usage entry logged")
}

func TestConsumeForBoreSkipsZeroQuantity(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	logsBefore := len(store.logs)

	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2045", []UsageLine{
			{Diameter: sizeSix, Quantity: 0},
		})
	})
	require.NoError(t, err)

	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 30, managerQty)
	assert.Len(t, store.logs, logsBefore, "zero-quantity line is skipped")
}

func TestAdjustShrinksStock(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)

	require.NoError(t, svc.Adjust(ctx, managerRavi, sizeSix, 25))

	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 25, managerQty)

	last := store.logs[len(store.logs)-1]
	assert.Equal(t, LogKindUsage, last.Kind)
	assert.Equal(t, 5, last.Quantity)
	assert.Equal(t, NoteAdjustment, last.Note)
}

func TestAdjustRejectsIncrease(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)

	err = svc.Adjust(ctx, managerRavi, sizeSix, 40)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 30, managerQty)
}

func TestAdjustEqualQuantityIsNoOp(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	logsBefore := len(store.logs)

	require.NoError(t, svc.Adjust(ctx, managerRavi, sizeSix, 30))
	assert.Len(t, store.logs, logsBefore, "no log entry for a no-op adjustment")
}

func TestAdjustMissingLine(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Adjust(context.Background(), managerRavi, sizeSix, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStockLineLogsRemainder(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStockLine(ctx, managerRavi, sizeSix))

	_, exists := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.False(t, exists)

	last := store.logs[len(store.logs)-1]
	assert.Equal(t, LogKindUsage, last.Kind)
	assert.Equal(t, 30, last.Quantity)
	assert.Equal(t, NoteDeletion, last.Note)
}

func TestDeleteStockLineZeroQuantitySkipsLog(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	require.NoError(t, svc.Adjust(ctx, managerRavi, sizeSix, 0))
	logsBefore := len(store.logs)

	require.NoError(t, svc.DeleteStockLine(ctx, managerRavi, sizeSix))

	_, exists := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.False(t, exists)
	assert.Len(t, store.logs, logsBefore, "zero remainder is not logged")
}

func TestReverseWithdrawalRestoresGodown(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	entry, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)

	reversed, err := svc.ReverseWithdrawal(ctx, managerRavi, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, reversed.ID)

	godownQty, _ := balance(t, svc, Godown, sizeSix)
	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 100, godownQty)
	assert.Equal(t, 0, managerQty)
	assert.Empty(t, store.logs, "reversed entry removed from the log")
}

func TestReverseWithdrawalRecreatesDrainedGodownLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 30)
	entry, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGodownStock(ctx, sizeSix))

	_, err = svc.ReverseWithdrawal(ctx, managerRavi, entry.ID)
	require.NoError(t, err)

	godownQty, exists := balance(t, svc, Godown, sizeSix)
	assert.True(t, exists, "godown line recreated by the refund")
	assert.Equal(t, 30, godownQty)
}

func TestReverseWithdrawalCanDriveManagerNegative(t *testing.T) {
	// The manager-side decrement is unguarded: if stock was consumed after
	// the withdrawal, reversing it pushes the line below zero.
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	entry, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2050", []UsageLine{
			{Diameter: sizeSix, Quantity: 25},
		})
	})
	require.NoError(t, err)

	_, err = svc.ReverseWithdrawal(ctx, managerRavi, entry.ID)
	require.NoError(t, err)

	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, -25, managerQty)
}

func TestReverseWithdrawalRejectsUsageEntry(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2051", []UsageLine{
			{Diameter: sizeSix, Quantity: 5},
		})
	})
	require.NoError(t, err)
	usage, err := store.ListForBore(ctx, managerRavi, "BW-2051")
	require.NoError(t, err)
	require.Len(t, usage, 1)

	_, err = svc.ReverseWithdrawal(ctx, managerRavi, usage[0].ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestReverseWithdrawalUnknownLog(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ReverseWithdrawal(context.Background(), managerRavi, "no-such-log")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReverseWithdrawalWrongManager(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	entry, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)

	_, err = svc.ReverseWithdrawal(ctx, "mgr-other", entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefundForBoreDeletion(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 30)
	require.NoError(t, err)
	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2060", []UsageLine{
			{Diameter: sizeSix, Quantity: 12},
		})
	})
	require.NoError(t, err)

	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.RefundForBoreDeletionTx(ctx, stocks, logs, managerRavi, "BW-2060")
	})
	require.NoError(t, err)

	managerQty, _ := balance(t, svc, ManagerOwner(managerRavi), sizeSix)
	assert.Equal(t, 30, managerQty, "consumption refunded in full")

	entries, err := store.ListForBore(ctx, managerRavi, "BW-2060")
	require.NoError(t, err)
	assert.Empty(t, entries, "bore usage entries removed")
}

func TestDerivedBalanceMatchesMaterialized(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)
	seedGodown(t, svc, sizeFive, 50)

	_, err := svc.Withdraw(ctx, managerRavi, sizeSix, 40)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, managerRavi, sizeFive, 10)
	require.NoError(t, err)
	err = memTx{store}.Run(ctx, func(stocks StockStore, logs LogStore) error {
		return svc.ConsumeForBoreTx(ctx, stocks, logs, managerRavi, "BW-2070", []UsageLine{
			{Diameter: sizeSix, Quantity: 15},
		})
	})
	require.NoError(t, err)
	require.NoError(t, svc.Adjust(ctx, managerRavi, sizeSix, 20))

	entries, err := svc.LogsForManager(ctx, managerRavi)
	require.NoError(t, err)
	derived := DerivedBalances(entries)
	require.Len(t, derived, 2)
	assert.True(t, derived[0].Size.Equal(sizeFive))
	assert.Equal(t, 10, derived[0].Quantity)
	assert.True(t, derived[1].Size.Equal(sizeSix))
	assert.Equal(t, 20, derived[1].Quantity)

	for _, bal := range derived {
		qty, _ := balance(t, svc, ManagerOwner(managerRavi), bal.Size)
		assert.Equal(t, bal.Quantity, qty, "derived and materialized balances agree for size %s", bal.Size)
	}
}

func TestDisplayBalancesHideNonPositive(t *testing.T) {
	items := []*StockItem{
		{Size: sizeFive, Quantity: 0},
		{Size: sizeSix, Quantity: 7},
		{Size: decimal.RequireFromString("7"), Quantity: -3},
	}
	out := DisplayBalances(items)
	require.Len(t, out, 1)
	assert.True(t, out[0].Size.Equal(sizeSix))
	assert.Equal(t, 7, out[0].Quantity)
}

func TestPipesNeeded(t *testing.T) {
	cases := []struct {
		lengthFt float64
		want     int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{20, 1},
		{21, 2},
		{100, 5},
		{110, 6},
		{399.5, 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PipesNeeded(tc.lengthFt), "length %v", tc.lengthFt)
	}
}

func TestSetAndDeleteGodownStock(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	seedGodown(t, svc, sizeSix, 100)

	require.NoError(t, svc.SetGodownStock(ctx, sizeSix, 80))
	qty, _ := balance(t, svc, Godown, sizeSix)
	assert.Equal(t, 80, qty)

	assert.ErrorIs(t, svc.SetGodownStock(ctx, sizeFive, 10), ErrNotFound)

	require.NoError(t, svc.DeleteGodownStock(ctx, sizeSix))
	_, exists := balance(t, svc, Godown, sizeSix)
	assert.False(t, exists)
	assert.ErrorIs(t, svc.DeleteGodownStock(ctx, sizeSix), ErrNotFound)
}

package pipestock

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogKind classifies a pipe movement. Purchase increases a manager's stock
// (withdrawal from godown), Usage decreases it (bore consumption, adjustment,
// deletion).
type LogKind string

const (
	LogKindPurchase LogKind = "Purchase"
	LogKindUsage    LogKind = "Usage"
)

// Well-known log notes. Usage entries consumed by drilling carry the bore
// number instead.
const (
	NoteWithdrawal = "Withdrawal from Godown"
	NoteAdjustment = "Stock Adjustment"
	NoteDeletion   = "Stock Deletion"
)

// StockItem is the quantity of one pipe size held by one owner. At most one
// row exists per (size, owner) pair. Quantity never goes negative through the
// guarded paths; the consumption and reversal paths deliberately skip the
// guard (see Service).
type StockItem struct {
	ID        string          `json:"id"`
	Size      decimal.Decimal `json:"size"` // inches
	Quantity  int             `json:"quantity"`
	Owner     Owner           `json:"-"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PipeLog is one immutable movement record. Entries are appended and, in two
// specific flows (withdrawal reversal, bore deletion), deleted wholesale;
// they are never updated in place.
type PipeLog struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Kind      LogKind         `json:"type"`
	Quantity  int             `json:"quantity"` // magnitude; direction comes from Kind
	Diameter  decimal.Decimal `json:"diameter"`
	ManagerID string          `json:"manager_id"`
	Note      string          `json:"related_bore"`
}

// UsageLine is one size's consumption when a bore is drilled.
type UsageLine struct {
	Diameter decimal.Decimal `json:"diameter"`
	Quantity int             `json:"quantity"`
}

// SizeBalance is a display row for balance listings.
type SizeBalance struct {
	Size     decimal.Decimal `json:"size"`
	Quantity int             `json:"quantity"`
}

// PipeStickLengthFt is the fixed length of one physical pipe stick. Bore
// consumption per size is ceil(requested length / 20).
const PipeStickLengthFt = 20

// PipesNeeded returns how many pipe sticks cover lengthFt of drilling.
func PipesNeeded(lengthFt float64) int {
	if lengthFt <= 0 {
		return 0
	}
	n := int(lengthFt) / PipeStickLengthFt
	if float64(n*PipeStickLengthFt) < lengthFt {
		n++
	}
	return n
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/models"
	"borewell-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

const onlineTxColumns = `
	id, razorpay_order_id, COALESCE(razorpay_payment_id, ''),
	bore_id, bore_number, manager_id, COALESCE(agent_name, ''),
	amount, status,
	COALESCE(utr_number, ''), COALESCE(payment_method, ''), COALESCE(bank, ''), COALESCE(vpa, ''),
	COALESCE(failure_reason, ''), payment_id,
	created_at, completed_at`

func scanOnlineTx(row pgx.Row) (*models.OnlineTransaction, error) {
	tx := &models.OnlineTransaction{}
	err := row.Scan(
		&tx.ID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID,
		&tx.BoreID, &tx.BoreNumber, &tx.ManagerID, &tx.AgentName,
		&tx.Amount, &tx.Status,
		&tx.UTRNumber, &tx.Method, &tx.Bank, &tx.VPA,
		&tx.FailureReason, &tx.PaymentID,
		&tx.CreatedAt, &tx.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Create stores a new order record in "created" status
func (r *OnlineTransactionRepository) Create(ctx context.Context, tx *models.OnlineTransaction) error {
	query := `
		INSERT INTO online_transactions (razorpay_order_id, bore_id, bore_number, manager_id, agent_name, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query,
		tx.RazorpayOrderID, tx.BoreID, tx.BoreNumber, tx.ManagerID, tx.AgentName,
		tx.Amount, models.OnlineTxStatusCreated,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create online transaction: %w", err)
	}

	tx.Status = models.OnlineTxStatusCreated
	return nil
}

// GetByOrderID retrieves a transaction by Razorpay order ID, nil if absent
func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	query := fmt.Sprintf("SELECT %s FROM online_transactions WHERE razorpay_order_id = $1", onlineTxColumns)

	tx, err := scanOnlineTx(r.DB.QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get online transaction: %w", err)
	}
	return tx, nil
}

// UpdatePaymentSuccess records capture details and marks the transaction successful
func (r *OnlineTransactionRepository) UpdatePaymentSuccess(ctx context.Context, orderID, paymentID, utr, method, bank, vpa string) error {
	query := `
		UPDATE online_transactions
		SET razorpay_payment_id = $2,
		    utr_number = $3,
		    payment_method = $4,
		    bank = $5,
		    vpa = $6,
		    status = $7,
		    completed_at = $8
		WHERE razorpay_order_id = $1
	`

	_, err := r.DB.Exec(ctx, query, orderID, paymentID, utr, method, bank, vpa,
		models.OnlineTxStatusSuccess, timeutil.Now())
	if err != nil {
		return fmt.Errorf("failed to update online transaction: %w", err)
	}
	return nil
}

// UpdatePaymentFailed marks the transaction as failed
func (r *OnlineTransactionRepository) UpdatePaymentFailed(ctx context.Context, orderID, reason string) error {
	query := `
		UPDATE online_transactions
		SET status = $2, failure_reason = $3, completed_at = $4
		WHERE razorpay_order_id = $1
	`

	_, err := r.DB.Exec(ctx, query, orderID, models.OnlineTxStatusFailed, reason, timeutil.Now())
	if err != nil {
		return fmt.Errorf("failed to mark online transaction failed: %w", err)
	}
	return nil
}

// LinkToPayment records the bore payment created for a captured transaction
func (r *OnlineTransactionRepository) LinkToPayment(ctx context.Context, orderID, paymentID string) error {
	_, err := r.DB.Exec(ctx,
		"UPDATE online_transactions SET payment_id = $2 WHERE razorpay_order_id = $1",
		orderID, paymentID)
	return err
}

// IsPaymentProcessed reports whether a payment has already been captured
func (r *OnlineTransactionRepository) IsPaymentProcessed(ctx context.Context, orderID string) (bool, error) {
	var status string
	err := r.DB.QueryRow(ctx,
		"SELECT status FROM online_transactions WHERE razorpay_order_id = $1", orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status == models.OnlineTxStatusSuccess, nil
}

// ListByBore returns the online transactions recorded against a bore
func (r *OnlineTransactionRepository) ListByBore(ctx context.Context, boreID string) ([]*models.OnlineTransaction, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM online_transactions WHERE bore_id = $1 ORDER BY created_at DESC", onlineTxColumns)

	rows, err := r.DB.Query(ctx, query, boreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list online transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.OnlineTransaction
	for rows.Next() {
		tx, err := scanOnlineTx(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// ListUnreconciled returns successful transactions that never got a bore payment
func (r *OnlineTransactionRepository) ListUnreconciled(ctx context.Context) ([]*models.OnlineTransaction, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM online_transactions WHERE status = $1 AND payment_id IS NULL ORDER BY created_at ASC",
		onlineTxColumns)

	rows, err := r.DB.Query(ctx, query, models.OnlineTxStatusSuccess)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreconciled transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.OnlineTransaction
	for rows.Next() {
		tx, err := scanOnlineTx(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

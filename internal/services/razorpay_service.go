package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/models"
	"borewell-backend/internal/repositories"
	"borewell-backend/internal/timeutil"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService handles online bore payments: order creation, signature
// verification and webhook capture. A captured payment lands in the bore's
// payment history just like a cash payment.
type RazorpayService struct {
	transactionRepo *repositories.OnlineTransactionRepository
	boreRepo        *repositories.BoreRepository
	keyID           string
	keySecret       string
	webhookSecret   string
}

func NewRazorpayService(
	keyID, keySecret, webhookSecret string,
	transactionRepo *repositories.OnlineTransactionRepository,
	boreRepo *repositories.BoreRepository,
) *RazorpayService {
	return &RazorpayService{
		transactionRepo: transactionRepo,
		boreRepo:        boreRepo,
		keyID:           keyID,
		keySecret:       keySecret,
		webhookSecret:   webhookSecret,
	}
}

// IsEnabled reports whether Razorpay credentials are configured
func (s *RazorpayService) IsEnabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// GetPaymentStatus returns payment availability info for the frontend
func (s *RazorpayService) GetPaymentStatus() *models.PaymentStatusResponse {
	return &models.PaymentStatusResponse{
		Enabled: s.IsEnabled(),
		KeyID:   s.keyID,
	}
}

// CreateOrder creates a Razorpay order for a bore and stores the transaction record
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("online payments are currently disabled")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	bore, err := s.boreRepo.GetByID(ctx, req.BoreID)
	if err != nil {
		return nil, err
	}
	if bore == nil {
		return nil, fmt.Errorf("bore not found: %s", req.BoreID)
	}

	client := razorpay.NewClient(s.keyID, s.keySecret)

	// Razorpay amounts are in paise
	amountPaise := int(req.Amount * 100)

	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("bore_%s_%d", bore.BoreNumber, time.Now().Unix()),
		"notes": map[string]interface{}{
			"bore_id":     bore.ID,
			"bore_number": bore.BoreNumber,
			"manager_id":  bore.ManagerID,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	tx := &models.OnlineTransaction{
		RazorpayOrderID: orderID,
		BoreID:          bore.ID,
		BoreNumber:      bore.BoreNumber,
		ManagerID:       bore.ManagerID,
		AgentName:       bore.AgentName,
		Amount:          req.Amount,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	return &models.CreateOrderResponse{
		OrderID:    orderID,
		Amount:     amountPaise,
		Currency:   "INR",
		KeyID:      s.keyID,
		BoreNumber: bore.BoreNumber,
		AgentName:  bore.AgentName,
	}, nil
}

// VerifyPayment checks the checkout signature and records the capture
func (s *RazorpayService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.OnlineTransaction, error) {
	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		_ = s.transactionRepo.UpdatePaymentFailed(ctx, req.RazorpayOrderID, "Invalid signature")
		return nil, fmt.Errorf("invalid payment signature")
	}

	tx, err := s.transactionRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction not found: %s", req.RazorpayOrderID)
	}

	// Webhook may have beaten the browser callback here
	if tx.Status == models.OnlineTxStatusSuccess {
		return tx, nil
	}

	utr, method, bank, vpa := s.fetchPaymentDetails(req.RazorpayPaymentID)

	if err := s.transactionRepo.UpdatePaymentSuccess(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, utr, method, bank, vpa); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := s.recordBorePayment(ctx, tx, utr); err != nil {
		// Payment is captured either way; reconciliation picks this up later
		log.Printf("[Razorpay] Failed to record bore payment for order %s: %v", tx.RazorpayOrderID, err)
	}

	tx, _ = s.transactionRepo.GetByOrderID(ctx, req.RazorpayOrderID)
	return tx, nil
}

// fetchPaymentDetails pulls UTR and instrument info from the Razorpay API
func (s *RazorpayService) fetchPaymentDetails(paymentID string) (utr, method, bank, vpa string) {
	client := razorpay.NewClient(s.keyID, s.keySecret)
	payment, err := client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		log.Printf("[Razorpay] Failed to fetch payment details: %v", err)
		return
	}
	return extractPaymentDetails(payment)
}

func extractPaymentDetails(entity map[string]interface{}) (utr, method, bank, vpa string) {
	if acquirerData, ok := entity["acquirer_data"].(map[string]interface{}); ok {
		if u, ok := acquirerData["upi_transaction_id"].(string); ok {
			utr = u
		}
		if u, ok := acquirerData["bank_transaction_id"].(string); ok && utr == "" {
			utr = u
		}
		if u, ok := acquirerData["rrn"].(string); ok && utr == "" {
			utr = u
		}
	}
	if m, ok := entity["method"].(string); ok {
		method = m
	}
	if b, ok := entity["bank"].(string); ok {
		bank = b
	}
	if v, ok := entity["vpa"].(string); ok {
		vpa = v
	}
	return
}

// verifySignature verifies the Razorpay checkout signature
func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(data))
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// VerifyWebhookSignature verifies the webhook signature
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true // Skip verification if not configured
	}

	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// recordBorePayment writes the captured amount into the bore's payment history
func (s *RazorpayService) recordBorePayment(ctx context.Context, tx *models.OnlineTransaction, utr string) error {
	payment := &models.Payment{
		BoreID: tx.BoreID,
		Date:   timeutil.Now(),
		Amount: tx.Amount,
	}
	if err := s.boreRepo.CreatePayment(ctx, payment); err != nil {
		return fmt.Errorf("failed to create bore payment: %w", err)
	}

	if err := s.transactionRepo.LinkToPayment(ctx, tx.RazorpayOrderID, payment.ID); err != nil {
		log.Printf("[Razorpay] Failed to link transaction %s to payment: %v", tx.RazorpayOrderID, err)
	}

	log.Printf("[Razorpay] Recorded online payment of %.2f for bore %s (UTR: %s)", tx.Amount, tx.BoreNumber, utr)
	cache.InvalidateManagerCaches(ctx)
	return nil
}

// ProcessWebhook processes Razorpay webhook events
func (s *RazorpayService) ProcessWebhook(ctx context.Context, event string, paymentData map[string]interface{}) error {
	switch event {
	case "payment.captured":
		return s.handlePaymentCaptured(ctx, paymentData)
	case "payment.failed":
		return s.handlePaymentFailed(ctx, paymentData)
	default:
		log.Printf("[Razorpay] Unhandled webhook event: %s", event)
		return nil
	}
}

func webhookPaymentEntity(paymentData map[string]interface{}) map[string]interface{} {
	paymentEntity, ok := paymentData["payment"].(map[string]interface{})
	if !ok {
		paymentEntity = paymentData
	}
	entity, ok := paymentEntity["entity"].(map[string]interface{})
	if !ok {
		entity = paymentEntity
	}
	return entity
}

func (s *RazorpayService) handlePaymentCaptured(ctx context.Context, paymentData map[string]interface{}) error {
	entity := webhookPaymentEntity(paymentData)

	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	processed, _ := s.transactionRepo.IsPaymentProcessed(ctx, orderID)
	if processed {
		log.Printf("[Razorpay] Payment already processed: %s", orderID)
		return nil
	}

	tx, err := s.transactionRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if tx == nil {
		return fmt.Errorf("transaction not found: %s", orderID)
	}

	utr, method, bank, vpa := extractPaymentDetails(entity)

	if err := s.transactionRepo.UpdatePaymentSuccess(ctx, orderID, paymentID, utr, method, bank, vpa); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return s.recordBorePayment(ctx, tx, utr)
}

func (s *RazorpayService) handlePaymentFailed(ctx context.Context, paymentData map[string]interface{}) error {
	entity := webhookPaymentEntity(paymentData)

	orderID, _ := entity["order_id"].(string)
	reason := "Payment failed"
	if errorDesc, ok := entity["error_description"].(string); ok && errorDesc != "" {
		reason = errorDesc
	}

	if orderID != "" {
		return s.transactionRepo.UpdatePaymentFailed(ctx, orderID, reason)
	}
	return nil
}

// GetTransactionsForBore returns online payment attempts against a bore
func (s *RazorpayService) GetTransactionsForBore(ctx context.Context, boreID string) ([]*models.OnlineTransaction, error) {
	return s.transactionRepo.ListByBore(ctx, boreID)
}

// ReconcilePayments records bore payments for captured transactions that
// missed the payment write (crash between capture and record).
func (s *RazorpayService) ReconcilePayments(ctx context.Context) (int, error) {
	transactions, err := s.transactionRepo.ListUnreconciled(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get unreconciled transactions: %w", err)
	}

	reconciled := 0
	for _, tx := range transactions {
		utr := tx.UTRNumber
		if utr == "" {
			utr = tx.RazorpayPaymentID
		}

		if err := s.recordBorePayment(ctx, tx, utr); err != nil {
			log.Printf("[Razorpay] Failed to reconcile transaction %s: %v", tx.RazorpayOrderID, err)
			continue
		}
		reconciled++
	}

	return reconciled, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/metrics"
	"borewell-backend/internal/models"
	"borewell-backend/internal/pipestock"
	"borewell-backend/internal/repositories"
)

// BoreService owns the bore lifecycle. Creating a bore writes the bore row,
// its billed pipe entries, an optional initial payment and the pipe-stock
// consumption in one transaction; deleting one removes those rows and refunds
// the consumed stock in one transaction.
type BoreService struct {
	Tx    *repositories.TxRunner
	Bores *repositories.BoreRepository
	Stock *pipestock.Service
}

func NewBoreService(tx *repositories.TxRunner, bores *repositories.BoreRepository, stock *pipestock.Service) *BoreService {
	return &BoreService{Tx: tx, Bores: bores, Stock: stock}
}

func (s *BoreService) CreateBore(ctx context.Context, managerID string, req *models.CreateBoreRequest) (*models.Bore, error) {
	if req.BoreNumber == "" {
		return nil, errors.New("bore number is required")
	}
	if req.TotalFeet <= 0 {
		return nil, errors.New("total feet must be positive")
	}

	bore := &models.Bore{
		Date:         req.Date,
		BoreNumber:   req.BoreNumber,
		TotalFeet:    req.TotalFeet,
		PricePerFeet: req.PricePerFeet,
		AgentName:    req.AgentName,
		TotalBill:    req.TotalBill,
		ManagerID:    managerID,
		PipesUsed:    req.PipesUsed,
	}

	err := s.Tx.WithTx(ctx, func(q repositories.Querier) error {
		bores := repositories.NewBoreRepository(q)
		if err := bores.Create(ctx, bore); err != nil {
			return err
		}

		if req.InitialPayment > 0 {
			payment := &models.Payment{
				BoreID: bore.ID,
				Date:   req.Date,
				Amount: req.InitialPayment,
			}
			if err := bores.CreatePayment(ctx, payment); err != nil {
				return err
			}
			bore.Payments = append(bore.Payments, *payment)
		}

		stocks := repositories.NewPipeStockRepository(q)
		logs := repositories.NewPipeLogRepository(q)
		return s.Stock.ConsumeForBoreTx(ctx, stocks, logs, managerID, bore.BoreNumber, pipeUsageForBore(req))
	})
	if err != nil {
		return nil, err
	}

	metrics.BoresCreatedTotal.Inc()
	cache.InvalidateStockCaches(ctx)
	return bore, nil
}

// pipeUsageForBore returns the per-size stock consumption for a new bore.
// An explicit pipe_logs list wins: the manager may have drilled with pipes
// billed to another job. Otherwise consumption is derived from the billed
// lines, ceil(length/20) sticks per size, aggregated across lines of the
// same size.
func pipeUsageForBore(req *models.CreateBoreRequest) []pipestock.UsageLine {
	if len(req.PipeLogs) > 0 {
		usage := make([]pipestock.UsageLine, 0, len(req.PipeLogs))
		for _, line := range req.PipeLogs {
			usage = append(usage, pipestock.UsageLine{Diameter: line.Diameter, Quantity: line.Quantity})
		}
		return usage
	}

	var usage []pipestock.UsageLine
	index := make(map[string]int)
	for _, entry := range req.PipesUsed {
		needed := pipestock.PipesNeeded(entry.Length)
		if needed == 0 {
			continue
		}
		key := entry.Size.String()
		if i, ok := index[key]; ok {
			usage[i].Quantity += needed
			continue
		}
		index[key] = len(usage)
		usage = append(usage, pipestock.UsageLine{Diameter: entry.Size, Quantity: needed})
	}
	return usage
}

func (s *BoreService) DeleteBore(ctx context.Context, managerID, boreID string) error {
	bore, err := s.Bores.GetByID(ctx, boreID)
	if err != nil {
		return err
	}
	if bore == nil || bore.ManagerID != managerID {
		return fmt.Errorf("bore not found: %s", boreID)
	}

	err = s.Tx.WithTx(ctx, func(q repositories.Querier) error {
		bores := repositories.NewBoreRepository(q)
		if err := bores.DeleteCascade(ctx, boreID); err != nil {
			return err
		}

		stocks := repositories.NewPipeStockRepository(q)
		logs := repositories.NewPipeLogRepository(q)
		return s.Stock.RefundForBoreDeletionTx(ctx, stocks, logs, managerID, bore.BoreNumber)
	})
	if err != nil {
		return err
	}

	cache.InvalidateStockCaches(ctx)
	return nil
}

func (s *BoreService) ListBores(ctx context.Context, managerID string) ([]*models.Bore, error) {
	return s.Bores.ListByManager(ctx, managerID)
}

func (s *BoreService) GetBore(ctx context.Context, boreID string) (*models.Bore, error) {
	return s.Bores.GetByID(ctx, boreID)
}

func (s *BoreService) AddPayment(ctx context.Context, boreID string, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}

	payment := &models.Payment{
		BoreID: boreID,
		Date:   req.Date,
		Amount: req.Amount,
	}
	if err := s.Bores.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	cache.InvalidateManagerCaches(ctx)
	return payment, nil
}

func (s *BoreService) DeletePayment(ctx context.Context, paymentID string) error {
	if err := s.Bores.DeletePayment(ctx, paymentID); err != nil {
		return err
	}
	cache.InvalidateManagerCaches(ctx)
	return nil
}

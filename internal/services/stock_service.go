package services

import (
	"context"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/metrics"
	"borewell-backend/internal/pipestock"

	"github.com/shopspring/decimal"
)

// StockService fronts the pipe-stock ledger for the HTTP layer, adding the
// cache invalidation and counters that don't belong in the ledger itself.
type StockService struct {
	Pipes *pipestock.Service
}

func NewStockService(pipes *pipestock.Service) *StockService {
	return &StockService{Pipes: pipes}
}

func (s *StockService) Withdraw(ctx context.Context, managerID string, size decimal.Decimal, quantity int) (*pipestock.PipeLog, error) {
	entry, err := s.Pipes.Withdraw(ctx, managerID, size, quantity)
	if err != nil {
		return nil, err
	}
	metrics.StockWithdrawalsTotal.Inc()
	cache.InvalidateStockCaches(ctx)
	return entry, nil
}

func (s *StockService) Adjust(ctx context.Context, managerID string, size decimal.Decimal, newQuantity int) error {
	if err := s.Pipes.Adjust(ctx, managerID, size, newQuantity); err != nil {
		return err
	}
	cache.InvalidateStockCaches(ctx)
	return nil
}

func (s *StockService) DeleteStockLine(ctx context.Context, managerID string, size decimal.Decimal) error {
	if err := s.Pipes.DeleteStockLine(ctx, managerID, size); err != nil {
		return err
	}
	cache.InvalidateStockCaches(ctx)
	return nil
}

func (s *StockService) ReverseWithdrawal(ctx context.Context, managerID, logID string) (*pipestock.PipeLog, error) {
	entry, err := s.Pipes.ReverseWithdrawal(ctx, managerID, logID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateStockCaches(ctx)
	return entry, nil
}

func (s *StockService) AddGodownStock(ctx context.Context, size decimal.Decimal, quantity int) (*pipestock.StockItem, error) {
	item, err := s.Pipes.AddGodownStock(ctx, size, quantity)
	if err != nil {
		return nil, err
	}
	cache.InvalidateStockCaches(ctx)
	return item, nil
}

func (s *StockService) SetGodownStock(ctx context.Context, size decimal.Decimal, quantity int) error {
	if err := s.Pipes.SetGodownStock(ctx, size, quantity); err != nil {
		return err
	}
	cache.InvalidateStockCaches(ctx)
	return nil
}

func (s *StockService) DeleteGodownStock(ctx context.Context, size decimal.Decimal) error {
	if err := s.Pipes.DeleteGodownStock(ctx, size); err != nil {
		return err
	}
	cache.InvalidateStockCaches(ctx)
	return nil
}

func (s *StockService) GodownStock(ctx context.Context) ([]*pipestock.StockItem, error) {
	return s.Pipes.GodownStock(ctx)
}

func (s *StockService) ManagerStock(ctx context.Context, managerID string) ([]*pipestock.StockItem, error) {
	return s.Pipes.ManagerStock(ctx, managerID)
}

func (s *StockService) LogsForManager(ctx context.Context, managerID string) ([]*pipestock.PipeLog, error) {
	return s.Pipes.LogsForManager(ctx, managerID)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/models"
	"borewell-backend/internal/repositories"
	"borewell-backend/internal/timeutil"
)

// DieselService records fuel purchases and usage. A purchase writes both the
// diesel_purchases row and a matching normal expense in one transaction so the
// litre ledger and the money ledger cannot drift apart.
type DieselService struct {
	Tx     *repositories.TxRunner
	Diesel *repositories.DieselRepository
}

func NewDieselService(tx *repositories.TxRunner, diesel *repositories.DieselRepository) *DieselService {
	return &DieselService{Tx: tx, Diesel: diesel}
}

func (s *DieselService) RecordPurchase(ctx context.Context, managerID string, req *models.CreateDieselPurchaseRequest) (*models.DieselPurchase, error) {
	if req.Liters <= 0 {
		return nil, errors.New("liters must be positive")
	}
	if req.Cost <= 0 {
		return nil, errors.New("cost must be positive")
	}

	purchase := &models.DieselPurchase{
		Liters:    req.Liters,
		Cost:      req.Cost,
		Date:      req.Date,
		ManagerID: managerID,
	}

	err := s.Tx.WithTx(ctx, func(q repositories.Querier) error {
		expenses := repositories.NewExpenseRepository(q)
		expense := &models.NormalExpense{
			Description: fmt.Sprintf("Diesel Purchase: %gL", req.Liters),
			Amount:      req.Cost,
			Date:        req.Date,
			ManagerID:   managerID,
		}
		if err := expenses.CreateNormal(ctx, expense); err != nil {
			return err
		}
		return repositories.NewDieselRepository(q).CreatePurchase(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateManagerCaches(ctx)
	return purchase, nil
}

func (s *DieselService) RecordUsage(ctx context.Context, managerID string, req *models.CreateDieselUsageRequest) (*models.DieselUsage, error) {
	if req.LitersUsed <= 0 {
		return nil, errors.New("liters used must be positive")
	}
	if req.Purpose == "" {
		return nil, errors.New("purpose is required")
	}

	usage := &models.DieselUsage{
		LitersUsed: req.LitersUsed,
		Purpose:    req.Purpose,
		Date:       timeutil.Now(),
		ManagerID:  managerID,
	}
	if err := s.Diesel.CreateUsage(ctx, usage); err != nil {
		return nil, err
	}

	cache.InvalidateManagerCaches(ctx)
	return usage, nil
}

func (s *DieselService) DeleteUsage(ctx context.Context, id string) error {
	if err := s.Diesel.DeleteUsage(ctx, id); err != nil {
		return err
	}
	cache.InvalidateManagerCaches(ctx)
	return nil
}

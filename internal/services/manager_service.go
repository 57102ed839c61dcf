package services

import (
	"context"
	"errors"

	"borewell-backend/internal/auth"
	"borewell-backend/internal/models"
	"borewell-backend/internal/pipestock"
	"borewell-backend/internal/repositories"
)

// ManagerService handles manager accounts and assembles the combined view the
// dashboard loads per manager: workers, bores, expenses, diesel, agents and
// pipe stock in one payload.
type ManagerService struct {
	Managers *repositories.ManagerRepository
	Workers  *repositories.WorkerRepository
	Bores    *repositories.BoreRepository
	Expenses *repositories.ExpenseRepository
	Diesel   *repositories.DieselRepository
	Agents   *repositories.AgentRepository
	Stock    *pipestock.Service
}

func NewManagerService(
	managers *repositories.ManagerRepository,
	workers *repositories.WorkerRepository,
	bores *repositories.BoreRepository,
	expenses *repositories.ExpenseRepository,
	diesel *repositories.DieselRepository,
	agents *repositories.AgentRepository,
	stock *pipestock.Service,
) *ManagerService {
	return &ManagerService{
		Managers: managers,
		Workers:  workers,
		Bores:    bores,
		Expenses: expenses,
		Diesel:   diesel,
		Agents:   agents,
		Stock:    stock,
	}
}

func (s *ManagerService) CreateManager(ctx context.Context, req *models.CreateManagerRequest) (*models.Manager, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("name, email, and password are required")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	manager := &models.Manager{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.Managers.Create(ctx, manager); err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *ManagerService) UpdateManager(ctx context.Context, id string, req *models.UpdateManagerRequest) (*models.Manager, error) {
	manager, err := s.Managers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, errors.New("manager not found")
	}

	manager.Name = req.Name
	manager.Email = req.Email
	if req.Password != "" {
		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		manager.PasswordHash = hashedPassword
	}

	if err := s.Managers.Update(ctx, manager); err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *ManagerService) DeleteManager(ctx context.Context, id string) error {
	return s.Managers.Delete(ctx, id)
}

func (s *ManagerService) ListManagers(ctx context.Context) ([]*models.Manager, error) {
	return s.Managers.List(ctx)
}

// ManagerDetail is the full per-manager dashboard payload.
type ManagerDetail struct {
	*models.Manager
	Workers         []*models.Worker         `json:"workers"`
	Bores           []*models.Bore           `json:"bores"`
	NormalExpenses  []*models.NormalExpense  `json:"normal_expenses"`
	LabourPayments  []*models.LabourPayment  `json:"labour_payments"`
	PipeLogs        []*pipestock.PipeLog     `json:"pipe_logs"`
	DieselPurchases []*models.DieselPurchase `json:"diesel_purchases"`
	DieselUsage     []*models.DieselUsage    `json:"diesel_usage"`
	Agents          []*models.Agent          `json:"agents"`
	PipeStock       []*pipestock.StockItem   `json:"pipe_stock"`
}

func (s *ManagerService) GetManagerDetail(ctx context.Context, id string) (*ManagerDetail, error) {
	manager, err := s.Managers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, nil
	}

	detail := &ManagerDetail{Manager: manager}
	if detail.Workers, err = s.Workers.ListByManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.Bores, err = s.Bores.ListByManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.NormalExpenses, err = s.Expenses.ListNormalByManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.LabourPayments, err = s.Expenses.ListLabourByManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.PipeLogs, err = s.Stock.LogsForManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.DieselPurchases, err = s.Diesel.ListPurchasesByManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.DieselUsage, err = s.Diesel.ListUsageByManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.Agents, err = s.Agents.ListByManager(ctx, id); err != nil {
		return nil, err
	}
	if detail.PipeStock, err = s.Stock.ManagerStock(ctx, id); err != nil {
		return nil, err
	}
	return detail, nil
}

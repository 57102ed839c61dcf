package models

// Worker is a labourer on a manager's crew. AmountPaid is derived from labour
// payments at read time, never stored.
type Worker struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Place         string  `json:"place"`
	MonthlySalary float64 `json:"monthly_salary"`
	MonthsWorked  float64 `json:"months_worked"`
	AmountPaid    float64 `json:"amount_paid"`
	ManagerID     string  `json:"manager_id"`
}

// CreateWorkerRequest represents the request body for creating a worker
type CreateWorkerRequest struct {
	Name          string  `json:"name"`
	Place         string  `json:"place"`
	MonthlySalary float64 `json:"monthly_salary"`
	MonthsWorked  float64 `json:"months_worked"`
}

// UpdateWorkerRequest represents the request body for updating a worker
type UpdateWorkerRequest struct {
	Name          string  `json:"name"`
	Place         string  `json:"place"`
	MonthlySalary float64 `json:"monthly_salary"`
	MonthsWorked  float64 `json:"months_worked"`
}

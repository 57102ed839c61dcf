package repositories

import (
	"context"
	"fmt"

	"borewell-backend/internal/models"

	"github.com/google/uuid"
)

type AgentRepository struct {
	Q Querier
}

func NewAgentRepository(q Querier) *AgentRepository {
	return &AgentRepository{Q: q}
}

func (r *AgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}

	_, err := r.Q.Exec(ctx, `
		INSERT INTO agents (id, name, manager_id)
		VALUES ($1, $2, $3)
	`, agent.ID, agent.Name, agent.ManagerID)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (r *AgentRepository) ListByManager(ctx context.Context, managerID string) ([]*models.Agent, error) {
	query := `
		SELECT id, name, manager_id
		FROM agents
		WHERE manager_id = $1
		ORDER BY name ASC
	`

	rows, err := r.Q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []*models.Agent
	for rows.Next() {
		agent := &models.Agent{}
		if err := rows.Scan(&agent.ID, &agent.Name, &agent.ManagerID); err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}

	return agents, rows.Err()
}

func (r *AgentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.Q.Exec(ctx, "DELETE FROM agents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("agent not found: %s", id)
	}
	return nil
}

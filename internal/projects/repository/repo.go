package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/domain"
)

// DBTX is the subset of *pgxpool.Pool the repository needs. Each call
// acquires a pooled connection and releases it before returning.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProjectRepository persists Project aggregates in the projects table.
type ProjectRepository struct {
	db DBTX
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Save upserts the project keyed on its id. The evaluation column is never
// written here; see SaveEvaluation.
func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) error {
	diagramJSON, err := json.Marshal(p.Diagram.Normalize())
	if err != nil {
		return fmt.Errorf("%w: diagram: %v", domain.ErrSerialization, err)
	}
	history := p.ChatHistory
	if history == nil {
		history = []domain.ChatLog{}
	}
	chatJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("%w: chat history: %v", domain.ErrSerialization, err)
	}

	const q = `
INSERT INTO projects (id, title, scenario_id, diagram_data, chat_history, last_modified)
VALUES ($1::uuid, $2, $3, $4::jsonb, $5::jsonb, $6)
ON CONFLICT (id) DO UPDATE
SET title = EXCLUDED.title,
    scenario_id = EXCLUDED.scenario_id,
    diagram_data = EXCLUDED.diagram_data,
    chat_history = EXCLUDED.chat_history,
    last_modified = EXCLUDED.last_modified;
`
	_, err = r.db.Exec(ctx, q,
		p.ID().String(),
		p.Title,
		p.ScenarioID,
		string(diagramJSON),
		string(chatJSON),
		p.LastModified,
	)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID(), err)
	}
	return nil
}

// FindByID loads a project. A missing row yields (nil, nil).
func (r *ProjectRepository) FindByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	const q = `
SELECT title, scenario_id, diagram_data, chat_history, evaluation, last_modified
FROM projects
WHERE id = $1::uuid;
`
	var (
		title, scenarioID   string
		diagramRaw, chatRaw []byte
		evaluationRaw       []byte
		lastModified        time.Time
	)
	err := r.db.QueryRow(ctx, q, id.String()).
		Scan(&title, &scenarioID, &diagramRaw, &chatRaw, &evaluationRaw, &lastModified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}

	diagram := domain.EmptyDiagram()
	if diagramRaw != nil {
		if err := json.Unmarshal(diagramRaw, &diagram); err != nil {
			return nil, &domain.CorruptDataError{ProjectID: id, Column: "diagram_data", Err: err}
		}
	}

	history := []domain.ChatLog{}
	if chatRaw != nil {
		if err := json.Unmarshal(chatRaw, &history); err != nil {
			return nil, &domain.CorruptDataError{ProjectID: id, Column: "chat_history", Err: err}
		}
	}

	var evaluation json.RawMessage
	if evaluationRaw != nil {
		evaluation = json.RawMessage(evaluationRaw)
	}

	return domain.Restore(id, title, scenarioID, lastModified, diagram, history, evaluation), nil
}

// SaveEvaluation overwrites the evaluation of an existing project. Nothing
// else on the row changes.
func (r *ProjectRepository) SaveEvaluation(ctx context.Context, id domain.ProjectID, evaluation json.RawMessage) error {
	if !json.Valid(evaluation) {
		return fmt.Errorf("%w: evaluation is not valid JSON", domain.ErrSerialization)
	}

	const q = `
UPDATE projects
SET evaluation = $2::jsonb
WHERE id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, id.String(), string(evaluation))
	if err != nil {
		return fmt.Errorf("save evaluation %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

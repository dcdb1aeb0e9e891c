package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/evaluation"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/logging"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/domain"
)

// Store is the persistence contract for projects.
type Store interface {
	Save(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
	SaveEvaluation(ctx context.Context, id domain.ProjectID, evaluation json.RawMessage) error
}

// Evaluator grades a diagram payload.
type Evaluator interface {
	Evaluate(ctx context.Context, diagram json.RawMessage) evaluation.Result
}

// SaveInput is the full client-side state of a project.
type SaveInput struct {
	ID          domain.ProjectID
	Title       string
	ScenarioID  string
	Diagram     domain.Diagram
	ChatHistory []domain.ChatLog
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store     Store
	evaluator Evaluator
	logger    *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(store Store, evaluator Evaluator, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{store: store, evaluator: evaluator, logger: logger.Named("projects")}
}

// Save builds a fresh aggregate from the input and upserts it. A zero id
// gets a newly generated one.
func (s *ProjectService) Save(ctx context.Context, in SaveInput) (*domain.Project, error) {
	id := in.ID
	if id.IsZero() {
		id = domain.NewProjectID()
	}
	p := domain.NewProject(id, in.Title, in.ScenarioID, in.Diagram, in.ChatHistory)

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	logging.FromContext(ctx, s.logger).Info("project saved",
		zap.String("project_id", id.String()),
		zap.Int("nodes", len(p.Diagram.Nodes)),
		zap.Int("messages", len(p.ChatHistory)))
	return p, nil
}

// Get loads a project or returns domain.ErrNotFound.
func (s *ProjectService) Get(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Rename changes the title of a stored project. An empty title leaves the
// project untouched and is not written back.
func (s *ProjectService) Rename(ctx context.Context, id domain.ProjectID, title string) (*domain.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := p.LastModified
	p.ChangeTitle(title)
	if p.LastModified.Equal(before) {
		return p, nil
	}

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Evaluate grades the stored diagram and records the outcome on the project.
// Failed evaluations are returned but not persisted.
func (s *ProjectService) Evaluate(ctx context.Context, id domain.ProjectID) (evaluation.Result, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return evaluation.Result{}, err
	}

	diagram, err := json.Marshal(p.Diagram)
	if err != nil {
		return evaluation.Result{}, fmt.Errorf("%w: diagram: %v", domain.ErrSerialization, err)
	}

	res := s.evaluator.Evaluate(ctx, diagram)
	if res.Kind == evaluation.KindFailed {
		return res, nil
	}

	payload := res.Payload()
	if err := s.store.SaveEvaluation(ctx, id, payload); err != nil {
		return evaluation.Result{}, err
	}
	p.AttachEvaluation(payload)

	logging.FromContext(ctx, s.logger).Info("evaluation stored",
		zap.String("project_id", id.String()),
		zap.Stringer("kind", res.Kind))
	return res, nil
}

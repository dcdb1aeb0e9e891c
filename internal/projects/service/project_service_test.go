package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/evaluation"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/domain"
)

type memStore struct {
	projects    map[domain.ProjectID]domain.Project
	evaluations map[domain.ProjectID]json.RawMessage
	saves       int
	saveErr     error
	findErr     error
}

func newMemStore() *memStore {
	return &memStore{
		projects:    map[domain.ProjectID]domain.Project{},
		evaluations: map[domain.ProjectID]json.RawMessage{},
	}
}

func (m *memStore) Save(_ context.Context, p *domain.Project) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.projects[p.ID()] = *p
	return nil
}

func (m *memStore) FindByID(_ context.Context, id domain.ProjectID) (*domain.Project, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.projects[id]
	if !ok {
		return nil, nil
	}
	p.Evaluation = m.evaluations[id]
	return &p, nil
}

func (m *memStore) SaveEvaluation(_ context.Context, id domain.ProjectID, raw json.RawMessage) error {
	if _, ok := m.projects[id]; !ok {
		return domain.ErrNotFound
	}
	m.evaluations[id] = raw
	return nil
}

type stubEvaluator struct {
	result evaluation.Result
	got    json.RawMessage
}

func (s *stubEvaluator) Evaluate(_ context.Context, diagram json.RawMessage) evaluation.Result {
	s.got = diagram
	return s.result
}

func saveInput() SaveInput {
	return SaveInput{
		ID:         domain.NewProjectID(),
		Title:      "My Project",
		ScenarioID: "ec_site",
		Diagram: domain.Diagram{
			Nodes: []domain.Node{{ID: "lb", TypeLabel: "Load Balancer"}},
			Edges: []domain.Edge{{Source: "lb", Target: "web"}},
		},
		ChatHistory: []domain.ChatLog{{Role: domain.RoleUser, Content: "hi"}},
	}
}

func TestProjectService_SaveAndGet(t *testing.T) {
	store := newMemStore()
	svc := NewProjectService(store, &stubEvaluator{}, nil)
	ctx := context.Background()
	in := saveInput()

	p, err := svc.Save(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in.ID, p.ID())

	got, err := svc.Get(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Diagram, got.Diagram)
	assert.Equal(t, in.ChatHistory, got.ChatHistory)
}

func TestProjectService_SaveGeneratesID(t *testing.T) {
	svc := NewProjectService(newMemStore(), &stubEvaluator{}, nil)
	in := saveInput()
	in.ID = domain.ProjectID{}

	p, err := svc.Save(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, p.ID().IsZero())
}

func TestProjectService_SaveError(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("db down")
	svc := NewProjectService(store, &stubEvaluator{}, nil)

	_, err := svc.Save(context.Background(), saveInput())
	assert.EqualError(t, err, "db down")
}

func TestProjectService_GetNotFound(t *testing.T) {
	svc := NewProjectService(newMemStore(), &stubEvaluator{}, nil)

	_, err := svc.Get(context.Background(), domain.NewProjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_GetCorrupt(t *testing.T) {
	store := newMemStore()
	store.findErr = &domain.CorruptDataError{Column: "diagram_data", Err: errors.New("bad")}
	svc := NewProjectService(store, &stubEvaluator{}, nil)

	_, err := svc.Get(context.Background(), domain.NewProjectID())
	assert.ErrorIs(t, err, domain.ErrCorruptData)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_Rename(t *testing.T) {
	store := newMemStore()
	svc := NewProjectService(store, &stubEvaluator{}, nil)
	ctx := context.Background()
	in := saveInput()
	saved, err := svc.Save(ctx, in)
	require.NoError(t, err)

	t.Run("empty title is ignored", func(t *testing.T) {
		p, err := svc.Rename(ctx, in.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "My Project", p.Title)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("new title is stored", func(t *testing.T) {
		p, err := svc.Rename(ctx, in.ID, "Renamed")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", p.Title)
		assert.True(t, p.LastModified.After(saved.LastModified))
		assert.Equal(t, 2, store.saves)
		assert.Equal(t, "Renamed", store.projects[in.ID].Title)
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := svc.Rename(ctx, domain.NewProjectID(), "x")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProjectService_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("success is persisted", func(t *testing.T) {
		store := newMemStore()
		eval := &stubEvaluator{result: evaluation.Interpret(`{"score":90,"feedback":"great","improvement":"none"}`)}
		svc := NewProjectService(store, eval, nil)
		in := saveInput()
		_, err := svc.Save(ctx, in)
		require.NoError(t, err)

		res, err := svc.Evaluate(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, evaluation.KindSuccess, res.Kind)
		assert.JSONEq(t, `{"nodes":[{"id":"lb","type":"Load Balancer","position":{"x":0,"y":0}}],"edges":[{"source":"lb","target":"web"}]}`, string(eval.got))
		assert.JSONEq(t, `{"score":90,"feedback":"great","improvement":"none"}`, string(store.evaluations[in.ID]))
	})

	t.Run("degraded is persisted with status", func(t *testing.T) {
		store := newMemStore()
		svc := NewProjectService(store, &stubEvaluator{result: evaluation.Interpret("just prose")}, nil)
		in := saveInput()
		_, err := svc.Save(ctx, in)
		require.NoError(t, err)

		res, err := svc.Evaluate(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, evaluation.KindDegraded, res.Kind)
		assert.Contains(t, string(store.evaluations[in.ID]), "partial_success")
	})

	t.Run("failure is not persisted", func(t *testing.T) {
		store := newMemStore()
		svc := NewProjectService(store, &stubEvaluator{result: evaluation.Result{Kind: evaluation.KindFailed, Err: errors.New("x")}}, nil)
		in := saveInput()
		_, err := svc.Save(ctx, in)
		require.NoError(t, err)

		res, err := svc.Evaluate(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, evaluation.KindFailed, res.Kind)
		assert.NotContains(t, store.evaluations, in.ID)
	})

	t.Run("missing project", func(t *testing.T) {
		svc := NewProjectService(newMemStore(), &stubEvaluator{}, nil)
		_, err := svc.Evaluate(ctx, domain.NewProjectID())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProjectService_SaveKeepsTimestampUTC(t *testing.T) {
	svc := NewProjectService(newMemStore(), &stubEvaluator{}, nil)
	p, err := svc.Save(context.Background(), saveInput())
	require.NoError(t, err)
	assert.Equal(t, time.UTC, p.LastModified.Location())
}

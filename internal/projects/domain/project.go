package domain

import (
	"encoding/json"
	"time"
)

// Now is the clock used for last_modified. Tests may replace it.
// Microsecond precision matches what timestamptz keeps.
var Now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// Project is the aggregate root: one diagram, its chat transcript and an
// optional AI evaluation under a single identity.
//
// The id is immutable. Title can only change through ChangeTitle, which
// refuses empty titles. Construction itself does not validate the title.
type Project struct {
	id           ProjectID
	Title        string
	ScenarioID   string
	LastModified time.Time
	Diagram      Diagram
	ChatHistory  []ChatLog
	Evaluation   json.RawMessage
}

// NewProject builds a fresh aggregate stamped with the current time and no evaluation.
func NewProject(id ProjectID, title, scenarioID string, diagram Diagram, chatHistory []ChatLog) *Project {
	if chatHistory == nil {
		chatHistory = []ChatLog{}
	}
	return &Project{
		id:           id,
		Title:        title,
		ScenarioID:   scenarioID,
		LastModified: Now(),
		Diagram:      diagram.Normalize(),
		ChatHistory:  chatHistory,
	}
}

// Restore rebuilds an aggregate from persisted state without touching the timestamp.
func Restore(id ProjectID, title, scenarioID string, lastModified time.Time, diagram Diagram, chatHistory []ChatLog, evaluation json.RawMessage) *Project {
	if chatHistory == nil {
		chatHistory = []ChatLog{}
	}
	return &Project{
		id:           id,
		Title:        title,
		ScenarioID:   scenarioID,
		LastModified: lastModified.UTC(),
		Diagram:      diagram.Normalize(),
		ChatHistory:  chatHistory,
		Evaluation:   evaluation,
	}
}

func (p *Project) ID() ProjectID { return p.id }

// ChangeTitle replaces the title and bumps LastModified. An empty title is
// ignored and leaves the aggregate untouched.
func (p *Project) ChangeTitle(newTitle string) {
	if newTitle == "" {
		return
	}
	p.Title = newTitle
	p.touch()
}

// AttachEvaluation stores an evaluation result. It does not count as an edit.
func (p *Project) AttachEvaluation(raw json.RawMessage) {
	p.Evaluation = raw
}

// HasEvaluation reports whether an evaluation is present.
func (p *Project) HasEvaluation() bool {
	return len(p.Evaluation) > 0 && string(p.Evaluation) != "null"
}

// touch advances LastModified, never backwards and never to the same instant.
func (p *Project) touch() {
	now := Now()
	if !now.After(p.LastModified) {
		now = p.LastModified.Add(time.Microsecond)
	}
	p.LastModified = now
}

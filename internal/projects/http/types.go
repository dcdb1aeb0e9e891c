package http

import (
	"encoding/json"
	"time"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/domain"
)

type saveReq struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	ScenarioID  string           `json:"scenario_id"`
	DiagramData domain.Diagram   `json:"diagram_data"`
	ChatHistory []domain.ChatLog `json:"chat_history"`
}

type renameReq struct {
	Title string `json:"title"`
}

// projectDTO is the wire form of a stored project.
type projectDTO struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	ScenarioID   string           `json:"scenario_id"`
	LastModified time.Time        `json:"last_modified"`
	DiagramData  domain.Diagram   `json:"diagram_data"`
	ChatHistory  []domain.ChatLog `json:"chat_history"`
	Evaluation   json.RawMessage  `json:"evaluation"`
}

func toDTO(p *domain.Project) projectDTO {
	eval := p.Evaluation
	if len(eval) == 0 {
		eval = json.RawMessage("null")
	}
	return projectDTO{
		ID:           p.ID().String(),
		Title:        p.Title,
		ScenarioID:   p.ScenarioID,
		LastModified: p.LastModified,
		DiagramData:  p.Diagram,
		ChatHistory:  p.ChatHistory,
		Evaluation:   eval,
	}
}

package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/chat"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/domain"
)

// Responder produces the next simulated-customer turn.
type Responder interface {
	Respond(ctx context.Context, req chat.Request) chat.Reply
}

type chatReq struct {
	ScenarioID  string           `json:"scenario_id"`
	Messages    []domain.ChatLog `json:"messages"`
	PartnerRole string           `json:"partner_role,omitempty"`
}

type ChatResponse struct {
	Reply  string `json:"reply"`
	Status string `json:"status"`
}

type ChatHandler struct {
	responder Responder
	catalog   *chat.Catalog
}

func NewChatHandler(r Responder, catalog *chat.Catalog) *ChatHandler {
	return &ChatHandler{responder: r, catalog: catalog}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid body"})
		return
	}

	reply := h.responder.Respond(c.Request.Context(), chat.Request{
		ScenarioID:  req.ScenarioID,
		Messages:    req.Messages,
		PartnerRole: req.PartnerRole,
	})
	c.JSON(http.StatusOK, ChatResponse{Reply: reply.Text, Status: reply.Status})
}

func (h *ChatHandler) Scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "scenarios": h.catalog.List()})
}

func (h *ChatHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/chat", h.Chat)
	r.GET("/scenarios", h.Scenarios)
}

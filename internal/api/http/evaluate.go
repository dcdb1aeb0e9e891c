package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/evaluation"
)

// Evaluator grades an arbitrary diagram payload.
type Evaluator interface {
	Evaluate(ctx context.Context, diagram json.RawMessage) evaluation.Result
}

type EvaluateHandler struct {
	evaluator Evaluator
}

func NewEvaluateHandler(e Evaluator) *EvaluateHandler {
	return &EvaluateHandler{evaluator: e}
}

// Evaluate accepts any JSON document and answers 200 with either the model's
// assessment or one of the fallback shapes.
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid json body"})
		return
	}

	res := h.evaluator.Evaluate(c.Request.Context(), body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", res.Payload())
}

func (h *EvaluateHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/evaluate", h.Evaluate)
}

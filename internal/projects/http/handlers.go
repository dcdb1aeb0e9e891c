package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/logging"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/projects/service"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgSaved      = "Project saved successfully"
	msgSaveFailed = "Failed to save"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc    *service.ProjectService
	logger *zap.Logger
}

func New(svc *service.ProjectService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) log(c *gin.Context) *zap.Logger {
	return logging.FromContext(c.Request.Context(), h.logger)
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": statusError, "message": "invalid body"})
		return
	}

	var id domain.ProjectID
	if strings.TrimSpace(req.ID) != "" {
		parsed, err := domain.ParseProjectID(req.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": statusError, "message": "invalid project id"})
			return
		}
		id = parsed
	}

	p, err := h.svc.Save(c.Request.Context(), service.SaveInput{
		ID:          id,
		Title:       req.Title,
		ScenarioID:  req.ScenarioID,
		Diagram:     req.DiagramData,
		ChatHistory: req.ChatHistory,
	})
	if err != nil {
		h.log(c).Error("save project failed", zap.String("error", logging.SanitizeError(err)))
		c.JSON(http.StatusInternalServerError, gin.H{"status": statusError, "message": msgSaveFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": p.ID().String(), "status": statusSuccess, "message": msgSaved})
}

func (h *Handler) load(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "load project failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "project": toDTO(p)})
}

func (h *Handler) rename(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": statusError, "message": "invalid body"})
		return
	}

	p, err := h.svc.Rename(c.Request.Context(), id, strings.TrimSpace(req.Title))
	if err != nil {
		h.fail(c, "rename project failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "project": toDTO(p)})
}

// evaluate always answers 200 with the evaluation payload once the project
// exists, mirroring POST /api/evaluate.
func (h *Handler) evaluate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	res, err := h.svc.Evaluate(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "evaluate project failed", err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", res.Payload())
}

func (h *Handler) pathID(c *gin.Context) (domain.ProjectID, bool) {
	id, err := domain.ParseProjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": statusError, "message": "invalid project id"})
		return domain.ProjectID{}, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": statusError, "message": "project not found"})
		return
	}
	h.log(c).Error(msg, zap.String("error", logging.SanitizeError(err)))
	c.JSON(http.StatusInternalServerError, gin.H{"status": statusError, "message": "internal error"})
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archcoach-backend/internal/logging"
	"github.com/GoSim-25-26J-441/archcoach-backend/internal/share"
)

// Shortener creates and resolves share links.
type Shortener interface {
	Shorten(ctx context.Context, target string) (*share.Link, error)
	Resolve(ctx context.Context, code string) (string, error)
}

type shortenReq struct {
	TargetURL string `json:"target_url"`
}

type ShareHandler struct {
	links  Shortener
	logger *zap.Logger
}

func NewShareHandler(links Shortener, logger *zap.Logger) *ShareHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShareHandler{links: links, logger: logger}
}

func (h *ShareHandler) Shorten(c *gin.Context) {
	var req shortenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid body"})
		return
	}

	link, err := h.links.Shorten(c.Request.Context(), req.TargetURL)
	if err != nil {
		if errors.Is(err, share.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		logging.FromContext(c.Request.Context(), h.logger).Error("shorten failed",
			zap.String("error", logging.SanitizeError(err)))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to create link"})
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *ShareHandler) Redirect(c *gin.Context) {
	target, err := h.links.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "link not found"})
			return
		}
		logging.FromContext(c.Request.Context(), h.logger).Error("resolve failed",
			zap.String("error", logging.SanitizeError(err)))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to resolve link"})
		return
	}

	c.Redirect(http.StatusFound, target)
}

// RegisterRoutes mounts the create endpoint under api and the redirect under root.
func (h *ShareHandler) RegisterRoutes(root, api gin.IRouter) {
	api.POST("/shorten", h.Shorten)
	root.GET("/s/:code", h.Redirect)
}

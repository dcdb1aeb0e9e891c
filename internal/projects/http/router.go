package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.save)
	rg.GET("/:id", h.load)
	rg.PATCH("/:id/title", h.rename)
	rg.POST("/:id/evaluate", h.evaluate)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const rootGreeting = "Hello, Architecture!"

func RegisterRoot(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, rootGreeting)
	})
}

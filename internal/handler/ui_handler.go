package handler

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var indexHTML []byte

// UIHandler serves the bundled browser UI.
type UIHandler struct{}

// NewUIHandler creates a new UIHandler.
func NewUIHandler() *UIHandler {
	return &UIHandler{}
}

// Index handles GET /
func (h *UIHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

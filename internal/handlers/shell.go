package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShellHandler serves the single-page browser shell.
type ShellHandler struct {
	body []byte
}

func NewShellHandler(body []byte) *ShellHandler {
	return &ShellHandler{body: body}
}

// Index serves the shell with 200.
func (h *ShellHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.body)
}

// NotFound serves the same shell body with a 404 status.
func (h *ShellHandler) NotFound(c *gin.Context) {
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", h.body)
}

package ping

import (
	"github.com/isntboxs/docsofboxs-api/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// @Summary API welcome
// @Description Root endpoint with API name and version
// @Tags root
// @Produce json
// @Success 200 {object} utils.Response
// @Router / [get]
func (h *Handler) HandleRoot(c *gin.Context) {
	utils.SendSuccess(c, 200, "Welcome to DocsOfBoxs API", gin.H{
		"version": "1.0.0",
	})
}

// @Summary Ping test
// @Description Health endpoint answering pong
// @Tags root
// @Produce json
// @Success 200 {object} utils.Response
// @Router /ping [get]
func (h *Handler) HandlePing(c *gin.Context) {
	utils.SendSuccess(c, 200, "Ping successful", gin.H{
		"message": "pong",
	})
}

package routes

import (
	"github.com/isntboxs/docsofboxs-api/handlers/ping"

	"github.com/gin-gonic/gin"
)

func RootRoutes(api *gin.RouterGroup) {
	handler := ping.New()

	api.GET("", handler.HandleRoot)
	api.GET("/ping", handler.HandlePing)
}

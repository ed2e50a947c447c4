package routes

import (
	"github.com/isntboxs/docsofboxs-api/handlers/auth"
	"github.com/isntboxs/docsofboxs-api/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup) {
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", auth.Register)
		authRoutes.POST("/login", auth.Login)
		authRoutes.GET("/me", middleware.JWTAuth(), auth.Me)
	}
}

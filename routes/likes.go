package routes

import (
	"github.com/isntboxs/docsofboxs-api/handlers/likes"
	"github.com/isntboxs/docsofboxs-api/middleware"

	"github.com/gin-gonic/gin"
)

func LikesRoutes(api *gin.RouterGroup) {
	likesRoutes := api.Group("/likes")
	likesRoutes.Use(middleware.JWTAuth())
	{
		likesRoutes.POST("/blog/:blogId", likes.LikeBlog)
		likesRoutes.DELETE("/blog/:blogId", likes.UnlikeBlog)
	}
}

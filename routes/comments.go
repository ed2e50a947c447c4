package routes

import (
	"github.com/isntboxs/docsofboxs-api/handlers/comments"
	"github.com/isntboxs/docsofboxs-api/middleware"

	"github.com/gin-gonic/gin"
)

func CommentsRoutes(api *gin.RouterGroup) {
	commentsRoutes := api.Group("/comments")
	commentsRoutes.Use(middleware.JWTAuth())
	{
		commentsRoutes.GET("/blog/:blogId", comments.GetCommentsByBlog)
		commentsRoutes.GET("/:commentId/replies", comments.GetReplies)
		commentsRoutes.POST("/blog/:blogId", comments.CreateComment)
		commentsRoutes.POST("/:commentId/reply", comments.CreateReply)
		commentsRoutes.DELETE("/:commentId", comments.DeleteComment)
	}
}

package routes

import (
	"github.com/isntboxs/docsofboxs-api/handlers/blogs"
	"github.com/isntboxs/docsofboxs-api/middleware"

	"github.com/gin-gonic/gin"
)

func BlogsRoutes(api *gin.RouterGroup) {
	blogsRoutes := api.Group("/blogs")
	{
		// Public listings: the optional auth only feeds the visibility filter
		blogsRoutes.GET("", middleware.OptionalJWTAuth(), blogs.GetAllBlogs)
		blogsRoutes.GET("/user/:userId", middleware.OptionalJWTAuth(), blogs.GetBlogsByUser)

		blogsRoutes.GET("/:slug", middleware.JWTAuth(), blogs.GetBlogBySlug)

		blogsRoutes.POST("", middleware.AdminAuth(), blogs.CreateBlog)
		blogsRoutes.PUT("/:slug", middleware.AdminAuth(), blogs.UpdateBlog)
		blogsRoutes.DELETE("/:blogId", middleware.AdminAuth(), blogs.DeleteBlog)
	}
}

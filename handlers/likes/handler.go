package likes

import (
	"errors"
	"net/http"

	"github.com/isntboxs/docsofboxs-api/db"
	"github.com/isntboxs/docsofboxs-api/models"
	"github.com/isntboxs/docsofboxs-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Like a blog
// @Description Like a blog once per user; returns the new like count
// @Tags likes
// @Produce json
// @Param blogId path string true "Blog ID"
// @Security BearerAuth
// @Success 201 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Blog not found"
// @Failure 409 {object} utils.Response "error: Already liked"
// @Router /likes/blog/{blogId} [post]
func LikeBlog(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	blogID := c.Param("blogId")

	var blog models.Blog
	if err := db.DB.First(&blog, "id = ?", blogID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Blog not found")
		return
	}

	var existingLike models.Like
	result := db.DB.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&existingLike)
	if result.Error == nil {
		utils.SendError(c, http.StatusConflict, "You have already liked this blog")
		return
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.LogErrorWithUser(userID, result.Error, "Error checking existing like")
		utils.SendError(c, http.StatusInternalServerError, "Error liking blog")
		return
	}

	like := models.Like{
		UserID: userID.(string),
		BlogID: blogID,
	}

	// The unique index on (user_id, blog_id) catches the race between two
	// concurrent likes; the loser's transaction rolls back here
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Blog{}).Where("id = ?", blogID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error liking blog")
		utils.SendError(c, http.StatusInternalServerError, "Error liking blog")
		return
	}

	utils.LogSuccessWithUser(userID, "Blog liked successfully")
	utils.SendSuccess(c, http.StatusCreated, "Blog liked successfully", gin.H{
		"likeCount": blog.LikesCount + 1,
	})
}

// @Summary Unlike a blog
// @Description Remove the requester's like from a blog; returns the new like count
// @Tags likes
// @Produce json
// @Param blogId path string true "Blog ID"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Blog not found"
// @Failure 409 {object} utils.Response "error: Not liked"
// @Router /likes/blog/{blogId} [delete]
func UnlikeBlog(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	blogID := c.Param("blogId")

	var blog models.Blog
	if err := db.DB.First(&blog, "id = ?", blogID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Blog not found")
		return
	}

	var like models.Like
	result := db.DB.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&like)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusConflict, "You have not liked this blog")
		} else {
			utils.LogErrorWithUser(userID, result.Error, "Error checking existing like")
			utils.SendError(c, http.StatusInternalServerError, "Error unliking blog")
		}
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Blog{}).Where("id = ?", blogID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error unliking blog")
		utils.SendError(c, http.StatusInternalServerError, "Error unliking blog")
		return
	}

	utils.LogSuccessWithUser(userID, "Blog unliked successfully")
	utils.SendSuccess(c, http.StatusOK, "Blog unliked successfully", gin.H{
		"likeCount": blog.LikesCount - 1,
	})
}

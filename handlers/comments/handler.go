package comments

import (
	"fmt"
	"net/http"

	"github.com/isntboxs/docsofboxs-api/db"
	"github.com/isntboxs/docsofboxs-api/middleware"
	"github.com/isntboxs/docsofboxs-api/models"
	"github.com/isntboxs/docsofboxs-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List comments of a blog
// @Description List the root comments of a blog with their direct replies, paginated
// @Tags comments
// @Produce json
// @Param blogId path string true "Blog ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Blog not found"
// @Router /comments/blog/{blogId} [get]
func GetCommentsByBlog(c *gin.Context) {
	blogID := c.Param("blogId")

	var blog models.Blog
	if err := db.DB.First(&blog, "id = ?", blogID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Blog not found")
		return
	}

	page, limit := utils.ParsePagination(c)

	var totalCount int64
	if err := db.DB.Model(&models.Comment{}).Where("blog_id = ? AND parent_id IS NULL", blogID).Count(&totalCount).Error; err != nil {
		utils.LogError(err, "Error counting comments")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving comments")
		return
	}

	var comments []models.Comment
	err := db.DB.Preload("Author").Preload("Replies.Author").
		Where("blog_id = ? AND parent_id IS NULL", blogID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		utils.LogError(err, "Error retrieving comments")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving comments")
		return
	}

	utils.SendPaginated(c, http.StatusOK, "Comments retrieved successfully", comments, utils.NewPagination(page, limit, totalCount))
}

// @Summary List replies of a comment
// @Description List the direct replies of a comment, paginated
// @Tags comments
// @Produce json
// @Param commentId path string true "Comment ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Comment not found"
// @Router /comments/{commentId}/replies [get]
func GetReplies(c *gin.Context) {
	commentID := c.Param("commentId")

	var parent models.Comment
	if err := db.DB.First(&parent, "id = ?", commentID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Comment not found")
		return
	}

	page, limit := utils.ParsePagination(c)

	var totalCount int64
	if err := db.DB.Model(&models.Comment{}).Where("parent_id = ?", commentID).Count(&totalCount).Error; err != nil {
		utils.LogError(err, "Error counting replies")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving replies")
		return
	}

	var replies []models.Comment
	err := db.DB.Preload("Author").
		Where("parent_id = ?", commentID).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&replies).Error
	if err != nil {
		utils.LogError(err, "Error retrieving replies")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving replies")
		return
	}

	utils.SendPaginated(c, http.StatusOK, "Replies retrieved successfully", replies, utils.NewPagination(page, limit, totalCount))
}

// @Summary Comment a blog
// @Description Create a root comment on a blog
// @Tags comments
// @Accept multipart/form-data
// @Produce json
// @Param blogId path string true "Blog ID"
// @Param content formData string true "Comment content"
// @Security BearerAuth
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Blog not found"
// @Router /comments/blog/{blogId} [post]
func CreateComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	content := c.PostForm("content")
	if content == "" {
		utils.SendError(c, http.StatusBadRequest, "Content is required")
		return
	}

	blogID := c.Param("blogId")

	var blog models.Blog
	if err := db.DB.First(&blog, "id = ?", blogID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Blog not found")
		return
	}

	comment := models.Comment{
		Content:  content,
		AuthorID: userID.(string),
		BlogID:   blogID,
		Depth:    0,
	}

	// The insert and the counter bump commit together or not at all
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Blog{}).Where("id = ?", blogID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating comment")
		utils.SendError(c, http.StatusInternalServerError, "Error creating comment")
		return
	}

	if err := db.DB.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		utils.LogError(err, "Error retrieving created comment")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving created comment")
		return
	}

	utils.LogSuccessWithUser(userID, "Comment created successfully")
	utils.SendSuccess(c, http.StatusCreated, "Comment created successfully", comment)
}

// @Summary Reply to a comment
// @Description Create a reply under a comment; nesting is capped at 5 levels
// @Tags comments
// @Accept multipart/form-data
// @Produce json
// @Param commentId path string true "Parent comment ID"
// @Param content formData string true "Reply content"
// @Security BearerAuth
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response "error: Depth exceeded or invalid input"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: Parent comment not found"
// @Router /comments/{commentId}/reply [post]
func CreateReply(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	content := c.PostForm("content")
	if content == "" {
		utils.SendError(c, http.StatusBadRequest, "Content is required")
		return
	}

	parentID := c.Param("commentId")

	var parent models.Comment
	if err := db.DB.First(&parent, "id = ?", parentID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Parent comment not found")
		return
	}

	if parent.Depth >= models.MaxCommentDepth {
		utils.SendError(c, http.StatusBadRequest,
			fmt.Sprintf("Comments cannot be nested more than %d levels deep", models.MaxCommentDepth))
		return
	}

	reply := models.Comment{
		Content:  content,
		AuthorID: userID.(string),
		BlogID:   parent.BlogID,
		ParentID: &parent.ID,
		Depth:    parent.Depth + 1,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return tx.Model(&models.Blog{}).Where("id = ?", parent.BlogID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating reply")
		utils.SendError(c, http.StatusInternalServerError, "Error creating reply")
		return
	}

	if err := db.DB.Preload("Author").First(&reply, "id = ?", reply.ID).Error; err != nil {
		utils.LogError(err, "Error retrieving created reply")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving created reply")
		return
	}

	utils.LogSuccessWithUser(userID, "Reply created successfully")
	utils.SendSuccess(c, http.StatusCreated, "Reply created successfully", reply)
}

// @Summary Delete a comment
// @Description Delete a comment and its whole reply subtree; only the author or an admin may delete it
// @Tags comments
// @Produce json
// @Param commentId path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 403 {object} utils.Response "error: Forbidden"
// @Failure 404 {object} utils.Response "error: Comment not found"
// @Router /comments/{commentId} [delete]
func DeleteComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	var comment models.Comment
	if err := db.DB.First(&comment, "id = ?", c.Param("commentId")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Comment not found")
		return
	}

	role := middleware.RoleFromContext(c)
	if comment.AuthorID != userID.(string) && role != models.AdminRole {
		utils.LogErrorWithUser(userID, nil, "A user tried to delete someone else's comment")
		utils.SendError(c, http.StatusForbidden, "You are not authorized to delete this comment")
		return
	}

	// Walk the subtree level by level (depth is capped, so at most
	// MaxCommentDepth+1 queries), delete exactly those rows and decrement the
	// blog counter by the same number, all in one transaction.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		ids := []string{comment.ID}
		frontier := []string{comment.ID}

		for len(frontier) > 0 {
			var children []string
			if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return err
			}
			if len(children) == 0 {
				break
			}
			ids = append(ids, children...)
			frontier = children
		}

		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Blog{}).Where("id = ?", comment.BlogID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - ?", len(ids))).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting comment")
		utils.SendError(c, http.StatusInternalServerError, "Error deleting comment")
		return
	}

	utils.LogSuccessWithUser(userID, "Comment deleted successfully")
	utils.SendSuccess(c, http.StatusOK, "Comment deleted successfully", nil)
}

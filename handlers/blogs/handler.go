package blogs

import (
	"net/http"

	"github.com/isntboxs/docsofboxs-api/db"
	"github.com/isntboxs/docsofboxs-api/middleware"
	"github.com/isntboxs/docsofboxs-api/models"
	"github.com/isntboxs/docsofboxs-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxTitleLength = 180

// @Summary List blogs
// @Description List blogs with pagination; drafts are only visible to principals with the read:draft capability
// @Tags blogs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.Response
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /blogs [get]
func GetAllBlogs(c *gin.Context) {
	role := middleware.RoleFromContext(c)
	statuses := utils.VisibleStatuses(role)
	page, limit := utils.ParsePagination(c)

	var totalCount int64
	if err := db.DB.Model(&models.Blog{}).Where("status IN ?", statuses).Count(&totalCount).Error; err != nil {
		utils.LogError(err, "Error counting blogs")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving blogs")
		return
	}

	var blogs []models.Blog
	err := db.DB.Preload("Author").
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		utils.LogError(err, "Error retrieving blogs")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving blogs")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Blogs fetched successfully", gin.H{
		"blogs":      blogs,
		"pagination": utils.NewPagination(page, limit, totalCount),
	})
}

// @Summary Get a blog by slug
// @Description Fetch a single blog; a draft is only served to its author or an admin
// @Tags blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 403 {object} utils.Response "error: Access denied"
// @Failure 404 {object} utils.Response "error: Blog not found"
// @Router /blogs/{slug} [get]
func GetBlogBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var blog models.Blog
	if err := db.DB.Preload("Author").First(&blog, "slug = ?", slug).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Blog not found")
		return
	}

	role := middleware.RoleFromContext(c)
	userID := middleware.UserIDFromContext(c)

	// The blog exists but is hidden: a plain user only sees someone else's
	// draft as forbidden, not as missing
	if role == models.UserRole && blog.Status == models.BlogDraft && blog.AuthorID != userID {
		utils.LogErrorWithUser(userID, nil, "User tried to access a draft blog")
		utils.SendError(c, http.StatusForbidden, "Access denied, insufficient permissions")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Blog fetched successfully", blog)
}

// @Summary List blogs by author
// @Description List one author's blogs with pagination; drafts require the read:draft capability
// @Tags blogs
// @Produce json
// @Param userId path string true "Author ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.Response
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /blogs/user/{userId} [get]
func GetBlogsByUser(c *gin.Context) {
	authorID := c.Param("userId")
	role := middleware.RoleFromContext(c)
	statuses := utils.VisibleStatuses(role)
	page, limit := utils.ParsePagination(c)

	query := db.DB.Model(&models.Blog{}).Where("author_id = ? AND status IN ?", authorID, statuses)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		utils.LogError(err, "Error counting blogs by user")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving blogs")
		return
	}

	var blogs []models.Blog
	err := db.DB.Preload("Author").
		Where("author_id = ? AND status IN ?", authorID, statuses).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		utils.LogError(err, "Error retrieving blogs by user")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving blogs")
		return
	}

	utils.SendPaginated(c, http.StatusOK, "Blogs by user fetched successfully", blogs, utils.NewPagination(page, limit, totalCount))
}

// @Summary Create a blog
// @Description Create a blog; the slug is derived from the title
// @Tags blogs
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title (max 180 chars)"
// @Param content formData string true "Content"
// @Param status formData string false "draft or published (default draft)"
// @Security BearerAuth
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 403 {object} utils.Response "error: Forbidden"
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /blogs [post]
func CreateBlog(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		utils.SendError(c, http.StatusBadRequest, "Title is required")
		return
	}
	if len(title) > maxTitleLength {
		utils.SendError(c, http.StatusBadRequest, "Title must be less than 180 characters")
		return
	}

	content := c.PostForm("content")
	if content == "" {
		utils.SendError(c, http.StatusBadRequest, "Content is required")
		return
	}

	status := models.BlogStatus(c.DefaultPostForm("status", string(models.BlogDraft)))
	if status != models.BlogDraft && status != models.BlogPublished {
		utils.SendError(c, http.StatusBadRequest, "Status must be draft or published")
		return
	}

	slug, err := utils.CreateUniqueSlug(title, slugExists)
	if err != nil {
		utils.LogError(err, "Error checking slug uniqueness")
		utils.SendError(c, http.StatusInternalServerError, "Error creating blog")
		return
	}

	blog := models.Blog{
		Title:    title,
		Slug:     slug,
		Content:  content,
		Status:   status,
		AuthorID: userID.(string),
	}

	// A concurrent create with the same title can still lose the race on the
	// slug unique index; that surfaces here and is not retried
	if err := db.DB.Create(&blog).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating blog")
		utils.SendError(c, http.StatusInternalServerError, "Error creating blog")
		return
	}

	if err := db.DB.Preload("Author").First(&blog, "id = ?", blog.ID).Error; err != nil {
		utils.LogError(err, "Error retrieving created blog")
		utils.SendError(c, http.StatusInternalServerError, "Error retrieving created blog")
		return
	}

	utils.LogSuccessWithUser(userID, "Blog created successfully")
	utils.SendSuccess(c, http.StatusCreated, "Blog created successfully", blog)
}

// @Summary Update a blog
// @Description Update a blog; only its author may update it, and a title change regenerates the slug
// @Tags blogs
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Blog slug"
// @Param title formData string false "Title (max 180 chars)"
// @Param content formData string false "Content"
// @Param status formData string false "draft or published"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 403 {object} utils.Response "error: Forbidden"
// @Failure 404 {object} utils.Response "error: Blog not found"
// @Router /blogs/{slug} [put]
func UpdateBlog(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	var blog models.Blog
	if err := db.DB.Preload("Author").First(&blog, "slug = ?", c.Param("slug")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Blog not found")
		return
	}

	if blog.AuthorID != userID.(string) {
		utils.LogErrorWithUser(userID, nil, "A user tried to update a blog without permissions")
		utils.SendError(c, http.StatusForbidden, "Access denied, insufficient permissions")
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	statusStr := c.PostForm("status")

	if len(title) > maxTitleLength {
		utils.SendError(c, http.StatusBadRequest, "Title must be less than 180 characters")
		return
	}

	if statusStr != "" {
		status := models.BlogStatus(statusStr)
		if status != models.BlogDraft && status != models.BlogPublished {
			utils.SendError(c, http.StatusBadRequest, "Status must be draft or published")
			return
		}
		blog.Status = status
	}

	if title != "" && title != blog.Title {
		newSlug, err := utils.CreateUniqueSlug(title, slugExists)
		if err != nil {
			utils.LogError(err, "Error checking slug uniqueness")
			utils.SendError(c, http.StatusInternalServerError, "Error updating blog")
			return
		}
		blog.Title = title
		blog.Slug = newSlug
	}

	if content != "" {
		blog.Content = content
	}

	if err := db.DB.Save(&blog).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating blog")
		utils.SendError(c, http.StatusInternalServerError, "Error updating blog")
		return
	}

	utils.LogSuccessWithUser(userID, "Blog updated successfully")
	utils.SendSuccess(c, http.StatusOK, "Blog updated successfully", blog)
}

// @Summary Delete a blog
// @Description Delete a blog and everything attached to it
// @Tags blogs
// @Produce json
// @Param blogId path string true "Blog ID"
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 403 {object} utils.Response "error: Forbidden"
// @Failure 404 {object} utils.Response "error: Blog not found"
// @Router /blogs/{blogId} [delete]
func DeleteBlog(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	var blog models.Blog
	if err := db.DB.First(&blog, "id = ?", c.Param("blogId")).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Blog not found")
		return
	}

	if !utils.HasCapability(middleware.RoleFromContext(c), utils.CapBlogDelete) {
		utils.LogErrorWithUser(userID, nil, "A user tried to delete a blog without permissions")
		utils.SendError(c, http.StatusForbidden, "Access denied, insufficient permissions")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&blog).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting blog")
		utils.SendError(c, http.StatusInternalServerError, "Error deleting blog")
		return
	}

	utils.LogSuccessWithUser(userID, "Blog deleted successfully")
	utils.SendSuccess(c, http.StatusOK, "Blog deleted successfully", nil)
}

func slugExists(slug string) (bool, error) {
	var count int64
	if err := db.DB.Model(&models.Blog{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

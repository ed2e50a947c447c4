package utils

import (
	"testing"

	"github.com/isntboxs/docsofboxs-api/models"

	"github.com/stretchr/testify/assert"
)

func TestHasCapability_Admin(t *testing.T) {
	for _, capability := range []Capability{CapBlogCreate, CapBlogRead, CapBlogReadDraft, CapBlogUpdate, CapBlogDelete} {
		assert.True(t, HasCapability(models.AdminRole, capability), "admin should have %s", capability)
	}
}

func TestHasCapability_User(t *testing.T) {
	assert.True(t, HasCapability(models.UserRole, CapBlogRead))

	for _, capability := range []Capability{CapBlogCreate, CapBlogReadDraft, CapBlogUpdate, CapBlogDelete} {
		assert.False(t, HasCapability(models.UserRole, capability), "user should not have %s", capability)
	}
}

func TestHasCapability_Unauthenticated(t *testing.T) {
	assert.False(t, HasCapability("", CapBlogRead))
	assert.False(t, HasCapability("", CapBlogReadDraft))
}

func TestVisibleStatuses(t *testing.T) {
	assert.Equal(t, []models.BlogStatus{models.BlogPublished, models.BlogDraft}, VisibleStatuses(models.AdminRole))
	assert.Equal(t, []models.BlogStatus{models.BlogPublished}, VisibleStatuses(models.UserRole))
	assert.Equal(t, []models.BlogStatus{models.BlogPublished}, VisibleStatuses(""))
}

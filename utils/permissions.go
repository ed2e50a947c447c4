package utils

import (
	"github.com/isntboxs/docsofboxs-api/models"
)

type Capability string

const (
	CapBlogCreate    Capability = "blogs:create"
	CapBlogRead      Capability = "blogs:read"
	CapBlogReadDraft Capability = "blogs:read:draft"
	CapBlogUpdate    Capability = "blogs:update"
	CapBlogDelete    Capability = "blogs:delete"
)

var roleCapabilities = map[models.Role][]Capability{
	models.AdminRole: {CapBlogCreate, CapBlogRead, CapBlogReadDraft, CapBlogUpdate, CapBlogDelete},
	models.UserRole:  {CapBlogRead},
}

// HasCapability reports whether the role grants the capability. Row-level
// ownership rules (own blog, own comment) are checked by the callers.
func HasCapability(role models.Role, capability Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == capability {
			return true
		}
	}
	return false
}

// VisibleStatuses returns the blog statuses a principal may see in listings.
// An empty role means an unauthenticated request and gets published only.
func VisibleStatuses(role models.Role) []models.BlogStatus {
	if HasCapability(role, CapBlogReadDraft) {
		return []models.BlogStatus{models.BlogPublished, models.BlogDraft}
	}
	return []models.BlogStatus{models.BlogPublished}
}

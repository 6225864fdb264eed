package handlers

import (
	"github.com/gin-gonic/gin"

	"kb-cms/models"
)

// currentUserID returns the authenticated user's ID stored by the auth
// middleware, or zero for anonymous requests.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// currentRole returns the caller's role. Anonymous requests get the empty
// role, which is denied every gated operation.
func currentRole(c *gin.Context) models.UserRole {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			return models.UserRole(role)
		}
	}
	return ""
}

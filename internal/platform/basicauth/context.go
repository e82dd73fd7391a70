package basicauth

import (
	"github.com/gin-gonic/gin"

	"course_api/internal/feature/users/domain/entity"
)

const contextUserKey = "basicauth.currentUser"

// SetCurrentUser binds the authenticated user to the request.
func SetCurrentUser(c *gin.Context, user *entity.User) {
	c.Set(contextUserKey, user)
}

// CurrentUser returns the user bound by AuthRequired, if any.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

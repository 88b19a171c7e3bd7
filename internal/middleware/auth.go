package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const IdentityKey = "identity"

// AuthRequired redirects anonymous visitors to the login page and exposes
// the identity to the handler.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := SessionFrom(c).CurrentUser()
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(IdentityKey, id)
		c.Next()
	}
}

// GuestOnly sends signed-in users home.
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionFrom(c).IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// MustIdentity returns the identity set by AuthRequired.
func MustIdentity(c *gin.Context) Identity {
	return c.MustGet(IdentityKey).(Identity)
}

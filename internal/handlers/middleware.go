package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mockcommerce/checkout-sandbox/internal/apierror"
)

// RequireAuth checks bearer-token presence. The sandbox does not verify the
// token value; presence is the whole contract.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")) == "" {
			ae := apierror.MissingAuthorization()
			c.AbortWithStatusJSON(ae.HTTPStatus(), ae)
			return
		}
		c.Next()
	}
}

// RequireAPIVersion enforces an exact match on the API-Version header.
func RequireAPIVersion(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("API-Version")
		if got != version {
			ae := apierror.InvalidAPIVersion(got, version)
			c.AbortWithStatusJSON(ae.HTTPStatus(), ae)
			return
		}
		c.Next()
	}
}

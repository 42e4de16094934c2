package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware marks a response cacheable for `duration` seconds.
// Used on the VAPID public key route, which changes only on redeploy.
func CacheControlMiddleware(duration string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age="+duration)
		c.Next()
	}
}

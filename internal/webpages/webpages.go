// Package webpages renders the terminal error pages.
package webpages

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFound renders the 404 page and stops the request.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"Title": "Not Found",
	})
	c.Abort()
}

// InternalError renders the 500 page and stops the request. Storage and
// other unexpected failures are terminal for the request; nothing retries.
func InternalError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{
		"Title": "Server Error",
	})
	c.Abort()
}

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip request bodies before binding. Clients may
// compress large payloads such as bulk basket updates.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		unwrapped, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer unwrapped.Close()
		defer compressed.Close()

		c.Request.Body = io.NopCloser(unwrapped)
		c.Request.Header.Del("Content-Encoding")
		// The advertised length belongs to the compressed stream.
		c.Request.ContentLength = -1
		c.Next()
	}
}

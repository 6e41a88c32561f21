package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yildizm/EmbedScope/internal/logger"
)

// requestLogger logs each request through the component logger
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []logger.Field{
			logger.F("method", c.Request.Method),
			logger.F("path", path),
			logger.F("status", c.Writer.Status()),
			logger.Duration(time.Since(start)),
			logger.F("client", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			log.WarnWithFields("request failed: %s", fields, c.Errors.String())
			return
		}
		log.DebugWithFields("request", fields)
	}
}

// cors allows browser front ends on other origins
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the listed origins, or any origin when the list is empty or
// contains "*". Preflight requests are answered with 204.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:              []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:             []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: 204,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

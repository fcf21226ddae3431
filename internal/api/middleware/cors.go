package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS builds the CORS middleware from a comma-separated list of
// allowed origins. An empty list allows all origins, which suits local
// development.
func ConfigCORS(allowedDomains string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if allowedDomains == "" {
		conf.AllowAllOrigins = true
	} else {
		origins := strings.Split(allowedDomains, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		conf.AllowOrigins = origins
	}

	return cors.New(conf)
}

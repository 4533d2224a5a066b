package handlers

import (
	"net/http"

	"tripplanner/internal/http/middleware"
	"tripplanner/internal/repositories"
	"tripplanner/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds what the route handlers share.
type API struct {
	Store repositories.Store
}

func (a API) planner(c *gin.Context) services.PlannerService {
	return services.PlannerService{Store: a.Store}.WithRequestID(middleware.GetRequestID(c))
}

// RespondError sends standard error payload with request_id included.
// "error" always carries the message.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func respondDeleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

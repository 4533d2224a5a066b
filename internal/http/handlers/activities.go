package handlers

import (
	"net/http"

	"tripplanner/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (a API) CreateActivity(c *gin.Context) {
	var in models.NewActivity
	if !BindJSONOrError(c, &in) {
		return
	}
	act, err := a.planner(c).CreateActivity(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, act)
}

// UpdateActivity replaces every editable field with the body's values.
func (a API) UpdateActivity(c *gin.Context) {
	var in models.ActivityFields
	if !BindJSONOrError(c, &in) {
		return
	}
	act, err := a.planner(c).UpdateActivity(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, act)
}

func (a API) DeleteActivity(c *gin.Context) {
	if err := a.planner(c).DeleteActivity(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondDeleted(c)
}

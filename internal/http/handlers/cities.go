package handlers

import (
	"net/http"

	"tripplanner/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (a API) CreateCity(c *gin.Context) {
	var in models.NewCity
	if !BindJSONOrError(c, &in) {
		return
	}
	city, err := a.planner(c).CreateCity(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

// UpdateCity only moves the city; other fields in the body are ignored.
func (a API) UpdateCity(c *gin.Context) {
	var in models.CityPositionPatch
	if !BindJSONOrError(c, &in) {
		return
	}
	city, err := a.planner(c).UpdateCityPosition(c.Request.Context(), c.Param("id"), in.Position)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

func (a API) DeleteCity(c *gin.Context) {
	if err := a.planner(c).DeleteCity(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondDeleted(c)
}

package handlers

import (
	"net/http"

	"tripplanner/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (a API) ListTrips(c *gin.Context) {
	trips, err := a.planner(c).ListTrips(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	c.JSON(http.StatusOK, trips)
}

func (a API) GetTrip(c *gin.Context) {
	trip, err := a.planner(c).GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (a API) CreateTrip(c *gin.Context) {
	var in models.NewTrip
	if !BindJSONOrError(c, &in) {
		return
	}
	trip, err := a.planner(c).CreateTrip(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (a API) DeleteTrip(c *gin.Context) {
	if err := a.planner(c).DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondDeleted(c)
}

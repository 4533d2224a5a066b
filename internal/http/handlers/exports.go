package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"tripplanner/internal/layout"
	"tripplanner/internal/render"
	"tripplanner/internal/services"

	"github.com/gin-gonic/gin"
)

// TripCanvas renders the trip's city canvas as SVG.
func (a API) TripCanvas(c *gin.Context) {
	trip, err := a.planner(c).GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := render.WriteCanvasSVG(&buf, layout.Canvas(trip.Cities)); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render canvas", err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// TripItinerary serves the day-by-day PDF.
func (a API) TripItinerary(c *gin.Context) {
	svc := services.ItineraryService{Planner: a.planner(c)}
	pdfBytes, filename, err := svc.BuildPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/timeline"
	"tripplanner/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ItineraryService renders a trip as a printable day-by-day PDF.
type ItineraryService struct {
	Planner PlannerService
}

const (
	barX      = 40.0
	barWidth  = 150.0
	barHeight = 7.0
)

// BuildPDF returns the PDF bytes and a download filename for the trip.
func (s ItineraryService) BuildPDF(ctx context.Context, tripID string) ([]byte, string, error) {
	trip, err := s.Planner.GetTrip(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	out, err := buildItineraryPDF(trip)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render itinerary", Err: err}
	}
	utils.LogEvent(s.Planner.RequestID, "itinerary", "pdf", fmt.Sprintf("trip_id=%s bytes=%d", trip.ID, len(out)))
	return out, fmt.Sprintf("ITINERARY_%s.pdf", utils.SafeFilenamePart(trip.Name)), nil
}

func buildItineraryPDF(trip models.Trip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Itinerary - "+trip.Name, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, utils.Safe(trip.Name, "Trip"))
	pdf.Ln(12)

	if len(trip.Cities) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No cities yet.")
		pdf.Ln(7)
	}

	for i, city := range trip.Cities {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s", i+1, city.Name))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("%s  |  by %s", utils.DateRangeLabel(city.StartDate, city.EndDate), models.NormalizeTransport(city.Transport)))
		pdf.Ln(8)

		days, err := timeline.Build(city)
		if err != nil {
			pdf.SetFont("Helvetica", "I", 10)
			msg := "Dates could not be read."
			if errors.Is(err, timeline.ErrTooManyDays) {
				msg = fmt.Sprintf("Stay is longer than %d days.", timeline.MaxDays)
			}
			pdf.Cell(0, 6, msg)
			pdf.Ln(8)
			continue
		}
		for _, day := range days {
			writeDay(pdf, day)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDay(pdf *gofpdf.Fpdf, day timeline.Day) {
	y := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(10, y)
	pdf.Cell(barX-10, barHeight, day.Label)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(barX, y, barWidth, barHeight, "D")
	for _, b := range day.Blocks {
		r, g, bl := hexColor(b.Color)
		pdf.SetFillColor(r, g, bl)
		w := barWidth * b.WidthPct / 100
		if w < 0 {
			w = 0
		}
		pdf.Rect(barX+barWidth*b.LeftPct/100, y, w, barHeight, "F")
	}
	pdf.Ln(barHeight + 1)

	pdf.SetFont("Helvetica", "", 9)
	for _, b := range day.Blocks {
		pdf.SetX(barX)
		pdf.Cell(0, 5, b.Text)
		pdf.Ln(5)
	}
	pdf.Ln(2)
}

// hexColor parses "#RRGGBB"; anything else falls back to the default activity color.
func hexColor(s string) (int, int, int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return hexColor(models.DefaultActivityColor)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

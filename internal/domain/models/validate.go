package models

import (
	"fmt"
	"strings"

	"tripplanner/internal/domain"
)

// Required-field checks shared by the API and the client forms. Nothing
// beyond presence is validated.

func CheckTrip(t NewTrip) error {
	if blank(t.Name) {
		return domain.Required("name")
	}
	for i, c := range t.Cities {
		if err := checkCityFields(c, fmt.Sprintf("cities[%d].", i)); err != nil {
			return err
		}
	}
	return nil
}

// CheckCity validates a standalone city, which must name its trip.
func CheckCity(c NewCity) error {
	if blank(c.TripID) {
		return domain.Required("tripId")
	}
	return checkCityFields(c, "")
}

func CheckActivity(a NewActivity) error {
	switch {
	case blank(a.CityID):
		return domain.Required("cityId")
	case blank(a.Name):
		return domain.Required("name")
	case blank(a.StartTime):
		return domain.Required("startTime")
	case blank(a.EndTime):
		return domain.Required("endTime")
	case blank(a.Date):
		return domain.Required("date")
	}
	return nil
}

func checkCityFields(c NewCity, prefix string) error {
	switch {
	case blank(c.Name):
		return domain.Required(prefix + "name")
	case blank(c.StartDate):
		return domain.Required(prefix + "startDate")
	case blank(c.EndDate):
		return domain.Required(prefix + "endDate")
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

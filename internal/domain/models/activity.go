package models

const (
	DefaultActivityType  = "other"
	DefaultActivityColor = "#F4D03F"
)

// Activity is anchored to one date of its city and an HH:MM time range.
type Activity struct {
	ID        string `json:"id" bson:"_id"`
	CityID    string `json:"cityId" bson:"city_id"`
	Name      string `json:"name" bson:"name"`
	Type      string `json:"type" bson:"type"`
	Color     string `json:"color" bson:"color"`
	StartTime string `json:"startTime" bson:"start_time"`
	EndTime   string `json:"endTime" bson:"end_time"`
	Notes     string `json:"notes" bson:"notes"`
	Date      string `json:"date" bson:"date"`
}

// NewActivity is the POST /activities body.
type NewActivity struct {
	CityID    string `json:"cityId"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Color     string `json:"color,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Notes     string `json:"notes,omitempty"`
	Date      string `json:"date"`
}

// ActivityFields is the PATCH /activities/{id} body. It replaces every editable
// field: anything the caller leaves out is stored empty.
type ActivityFields struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Color     string `json:"color"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Notes     string `json:"notes"`
}

// WithDefaults fills type, color and notes the way the create form does.
func (a NewActivity) WithDefaults() NewActivity {
	if a.Type == "" {
		a.Type = DefaultActivityType
	}
	if a.Color == "" {
		a.Color = DefaultActivityColor
	}
	return a
}

// Fields returns the editable part of an activity.
func (a Activity) Fields() ActivityFields {
	return ActivityFields{
		Name:      a.Name,
		Type:      a.Type,
		Color:     a.Color,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Notes:     a.Notes,
	}
}

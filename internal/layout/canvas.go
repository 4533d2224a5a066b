package layout

import (
	"strings"

	"tripplanner/internal/domain/models"
	"tripplanner/internal/utils"
)

const (
	// unplaced tab n sits at (100+250n, 300+50n)
	DefaultStepX = 250
	DefaultStepY = 50

	// a city added to an existing trip lands this far from the last one
	NewCityStepX = 300
	NewCityStepY = 50

	// connection point of a tab relative to its top-left corner
	AnchorOffsetX = 110
	AnchorOffsetY = 50

	ArcLift = 60

	TabTilt = 5.0

	AddButtonGap    = 300
	AddLabelOffsetX = 380
	AddLabelOffsetY = 30
)

var (
	EmptyAddButton = Point{X: 200, Y: 250}
	EmptyAddLabel  = Point{X: 280, Y: 280}
)

// Tab is one positioned city card.
type Tab struct {
	CityID    string           `json:"cityId"`
	Name      string           `json:"name"`
	Dates     string           `json:"dates"`
	Transport models.Transport `json:"transport"`
	Pos       Point            `json:"pos"`
	Rotation  float64          `json:"rotation"`
}

// Connector is the curve drawn from one tab to the next, with the icon of
// the destination city's transport at its midpoint.
type Connector struct {
	FromCityID string `json:"fromCityId"`
	ToCityID   string `json:"toCityId"`
	P0         Point  `json:"p0"`
	Control    Point  `json:"control"`
	P1         Point  `json:"p1"`
	Mid        Point  `json:"mid"`
	Icon       string `json:"icon"`
}

// Scene is everything the city canvas draws.
type Scene struct {
	Tabs       []Tab       `json:"tabs"`
	Connectors []Connector `json:"connectors"`
	AddButton  Point       `json:"addButton"`
	AddLabel   Point       `json:"addLabel"`
}

// Canvas lays out cities in the given order. It holds no state, so calling it
// twice on the same cities yields the same scene.
func Canvas(cities []models.City) Scene {
	scene := Scene{
		Tabs:       make([]Tab, 0, len(cities)),
		Connectors: make([]Connector, 0, max(len(cities)-1, 0)),
	}
	for i, c := range cities {
		tilt := TabTilt
		if i%2 == 1 {
			tilt = -TabTilt
		}
		scene.Tabs = append(scene.Tabs, Tab{
			CityID:    c.ID,
			Name:      c.Name,
			Dates:     utils.DateRangeLabel(c.StartDate, c.EndDate),
			Transport: c.Transport,
			Pos:       TabPosition(c, i),
			Rotation:  tilt,
		})
	}

	for i := 1; i < len(scene.Tabs); i++ {
		scene.Connectors = append(scene.Connectors, connect(scene.Tabs[i-1], scene.Tabs[i]))
	}

	if n := len(scene.Tabs); n > 0 {
		last := scene.Tabs[n-1].Pos
		scene.AddButton = last.Add(AddButtonGap, 0)
		scene.AddLabel = last.Add(AddLabelOffsetX, AddLabelOffsetY)
	} else {
		scene.AddButton = EmptyAddButton
		scene.AddLabel = EmptyAddLabel
	}
	return scene
}

// TabPosition is the stored position of c, or the staggered default for
// index i on each missing axis.
func TabPosition(c models.City, i int) Point {
	x := models.DefaultPosX + DefaultStepX*i
	y := models.DefaultPosY + DefaultStepY*i
	if c.PosX != nil {
		x = *c.PosX
	}
	if c.PosY != nil {
		y = *c.PosY
	}
	return Pt(x, y)
}

// Anchor is where a connector attaches to a tab.
func Anchor(tabPos Point) Point {
	return tabPos.Add(AnchorOffsetX, AnchorOffsetY)
}

func connect(from, to Tab) Connector {
	p0 := Anchor(from.Pos)
	p1 := Anchor(to.Pos)
	pc := ArcControl(p0, p1)
	return Connector{
		FromCityID: from.CityID,
		ToCityID:   to.CityID,
		P0:         p0,
		Control:    pc,
		P1:         p1,
		Mid:        QuadBezier(p0, pc, p1, 0.5),
		Icon:       IconFor(to.Transport),
	}
}

var icons = map[models.Transport]string{
	models.TransportFlight: "plane",
	models.TransportTrain:  "train",
	models.TransportBus:    "bus",
	models.TransportRide:   "car",
	models.TransportFerry:  "ferry",
}

// IconFor maps a transport mode to its icon name. Unknown modes get the plane.
func IconFor(t models.Transport) string {
	if icon, ok := icons[models.Transport(strings.ToLower(string(t)))]; ok {
		return icon
	}
	return icons[models.TransportFlight]
}

package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"tripplanner/internal/layout"
)

const (
	tabWidth  = 2 * layout.AnchorOffsetX
	tabHeight = 2 * layout.AnchorOffsetY
	iconR     = 18
	addR      = 28
)

// WriteCanvasSVG draws a city canvas scene. Connectors go first so tabs sit on top.
func WriteCanvasSVG(w io.Writer, scene layout.Scene) error {
	width, height := bounds(scene)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n", width, height, width, height)
	for _, c := range scene.Connectors {
		fmt.Fprintf(bw, `<path class="connector" d="M %g %g Q %g %g %g %g" fill="none" stroke="#555" stroke-width="2" stroke-dasharray="6 4"/>`+"\n",
			c.P0.X, c.P0.Y, c.Control.X, c.Control.Y, c.P1.X, c.P1.Y)
		fmt.Fprintf(bw, `<g class="transport-icon" data-icon="%s"><circle cx="%g" cy="%g" r="%d" fill="#fff" stroke="#555"/><text x="%g" y="%g" text-anchor="middle" dominant-baseline="middle" font-size="9">%s</text></g>`+"\n",
			c.Icon, c.Mid.X, c.Mid.Y, iconR, c.Mid.X, c.Mid.Y, c.Icon)
	}
	for _, t := range scene.Tabs {
		cx, cy := t.Pos.X+layout.AnchorOffsetX, t.Pos.Y+layout.AnchorOffsetY
		fmt.Fprintf(bw, `<g class="city-tab" data-city-id="%s" transform="rotate(%g %g %g)">`, html.EscapeString(t.CityID), t.Rotation, cx, cy)
		fmt.Fprintf(bw, `<rect x="%g" y="%g" width="%d" height="%d" rx="8" fill="#FFF8DC" stroke="#333"/>`, t.Pos.X, t.Pos.Y, tabWidth, tabHeight)
		fmt.Fprintf(bw, `<text x="%g" y="%g" text-anchor="middle" font-size="16" font-weight="bold">%s</text>`, cx, cy-6, html.EscapeString(t.Name))
		fmt.Fprintf(bw, `<text x="%g" y="%g" text-anchor="middle" font-size="12">%s</text>`, cx, cy+16, html.EscapeString(t.Dates))
		fmt.Fprint(bw, "</g>\n")
	}
	fmt.Fprintf(bw, `<circle class="add-city" cx="%g" cy="%g" r="%d" fill="#fff" stroke="#333"/>`+"\n",
		scene.AddButton.X+addR, scene.AddButton.Y+addR, addR)
	fmt.Fprintf(bw, `<text class="add-city-label" x="%g" y="%g" font-size="14">Add city</text>`+"\n", scene.AddLabel.X, scene.AddLabel.Y)
	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

func bounds(scene layout.Scene) (float64, float64) {
	w := scene.AddLabel.X + 120
	h := scene.AddButton.Y + 2*addR + 40
	for _, t := range scene.Tabs {
		w = max(w, t.Pos.X+tabWidth+40)
		h = max(h, t.Pos.Y+tabHeight+40)
	}
	return max(w, 600), max(h, 400)
}

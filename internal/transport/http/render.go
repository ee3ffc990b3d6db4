package http

import (
	"fmt"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
	geom "github.com/peterstace/simplefeatures/geom"
)

// wireCommand is a render command as the map client consumes it: marker and
// line geometry is GeoJSON in EPSG:3857, the projection the map renders in.
type wireCommand struct {
	Type     domain.CommandType `json:"type"`
	Tag      domain.MarkerTag   `json:"tag,omitempty"`
	Geometry *geom.Geometry     `json:"geometry,omitempty"`
	Text     *string            `json:"text,omitempty"`
	Form     domain.Form        `json:"form,omitempty"`
	Visible  *bool              `json:"visible,omitempty"`
}

func renderCommands(cmds []domain.Command) ([]wireCommand, error) {
	out := make([]wireCommand, 0, len(cmds))
	for _, c := range cmds {
		w := wireCommand{Type: c.Type, Tag: c.Tag, Form: c.Form}
		switch c.Type {
		case domain.CmdPlaceMarker:
			if len(c.Points) != 1 {
				return nil, fmt.Errorf("%s: expected one point, got %d", c.Type, len(c.Points))
			}
			g, err := geo.PointGeometry(c.Points[0])
			if err != nil {
				return nil, err
			}
			w.Geometry = &g
		case domain.CmdDrawLine:
			g, err := geo.LineGeometry(c.Points...)
			if err != nil {
				return nil, err
			}
			w.Geometry = &g
		case domain.CmdSetInstructions, domain.CmdSetStatus, domain.CmdAppendStatus:
			text := c.Text
			w.Text = &text
		case domain.CmdShowDifficulty:
			visible := c.Visible
			w.Visible = &visible
		}
		out = append(out, w)
	}
	return out, nil
}

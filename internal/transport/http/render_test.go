package http

import (
	"encoding/json"
	"strings"
	"testing"

	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
)

func TestRenderCommandsProjectsGeometry(t *testing.T) {
	guess := geo.Point{Lon: 2.35, Lat: 48.85}
	wire, err := renderCommands([]domain.Command{
		domain.ClearMarkers(),
		domain.PlaceMarker(domain.MarkerGuess, guess),
		domain.DrawLine(paris.Point, guess),
		domain.SetStatus(""),
		domain.ShowDifficulty(false),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(wire) != 5 {
		t.Fatalf("expected 5 wire commands, got %d", len(wire))
	}
	if wire[0].Geometry != nil || wire[1].Geometry == nil || wire[2].Geometry == nil {
		t.Fatalf("geometry only expected on marker and line: %+v", wire)
	}
	if wire[3].Text == nil || *wire[3].Text != "" {
		t.Fatalf("expected empty status text to be sent, got %+v", wire[3])
	}
	if wire[4].Visible == nil || *wire[4].Visible {
		t.Fatalf("expected explicit hidden flag, got %+v", wire[4])
	}

	raw, err := json.Marshal(wire[2])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"LineString"`) {
		t.Fatalf("expected GeoJSON line, got %s", raw)
	}
}

func TestRenderCommandsPerfectGuessLine(t *testing.T) {
	wire, err := renderCommands([]domain.Command{domain.DrawLine(paris.Point, paris.Point)})
	if err != nil {
		t.Fatalf("render zero-length line: %v", err)
	}
	if wire[0].Geometry == nil || !wire[0].Geometry.IsEmpty() {
		t.Fatalf("expected empty line geometry, got %+v", wire[0].Geometry)
	}
}

func TestRenderCommandsRejectsMalformedMarker(t *testing.T) {
	if _, err := renderCommands([]domain.Command{{Type: domain.CmdPlaceMarker}}); err == nil {
		t.Fatalf("expected error for marker without a point")
	}
}

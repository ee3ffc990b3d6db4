package http

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"testing"
)

func TestHealthz(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestLandmarksEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var body landmarksResponse
	getJSON(t, server.URL+"/api/landmarks?difficulty=easy", http.StatusOK, &body)
	if !body.Curated || len(body.Landmarks) == 0 {
		t.Fatalf("expected easy landmarks, got %+v", body)
	}

	getJSON(t, server.URL+"/api/landmarks?difficulty=hard", http.StatusOK, &body)
	if body.Curated || len(body.Landmarks) != 0 {
		t.Fatalf("expected uniform hard tier, got %+v", body)
	}

	getJSON(t, server.URL+"/api/landmarks?difficulty=nope", http.StatusBadRequest, nil)
}

func TestDMSEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var body dmsResponse
	getJSON(t, server.URL+"/api/dms?value=-0.5", http.StatusOK, &body)
	if body.Text != "-0° 30′ 0″" || !body.DMS.Negative {
		t.Fatalf("unexpected dms %+v", body)
	}
	for _, value := range []string{"north", "NaN", "Inf", "-Inf", "1e300", "180.5"} {
		var failure map[string]string
		getJSON(t, server.URL+"/api/dms?value="+url.QueryEscape(value), http.StatusBadRequest, &failure)
		if failure["error"] == "" {
			t.Fatalf("value %s: expected error body", value)
		}
	}
}

func TestDistanceEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var body distanceResponse
	getJSON(t, server.URL+"/api/distance?from=0,0&to=180,0", http.StatusOK, &body)
	if math.Abs(body.Meters-20015086.796) > 1 || body.Score != 0 {
		t.Fatalf("unexpected antipodal distance %+v", body)
	}
	getJSON(t, server.URL+"/api/distance?from=0,0&to=999,0", http.StatusBadRequest, nil)
}

func TestSessionEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	getJSON(t, server.URL+"/api/sessions/unknown", http.StatusNotFound, nil)

	conn := dial(t, server, "known")
	defer conn.Close()
	readNext(conn, t, "session")
	readNext(conn, t, "render")

	var body map[string]any
	getJSON(t, server.URL+"/api/sessions/known", http.StatusOK, &body)
	if body["sessionId"] != "known" || body["mode"] != "explore" {
		t.Fatalf("unexpected session %+v", body)
	}
}

func getJSON(t *testing.T, target string, status int, out any) {
	t.Helper()
	resp, err := http.Get(target)
	if err != nil {
		t.Fatalf("get %s: %v", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != status {
		t.Fatalf("%s: expected %d, got %d", target, status, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
}

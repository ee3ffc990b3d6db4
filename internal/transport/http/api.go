package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// API serves the read-only REST endpoints next to the websocket.
type API struct {
	service   *app.QuizService
	landmarks app.LandmarkRepository
}

func NewAPI(service *app.QuizService, landmarks app.LandmarkRepository) *API {
	return &API{service: service, landmarks: landmarks}
}

// NewRouter wires health, websocket and REST routes.
func NewRouter(ws *WSHandler, api *API, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/landmarks", api.handleLandmarks)
		r.Get("/dms", api.handleDMS)
		r.Get("/distance", api.handleDistance)
		r.Get("/sessions/{id}", api.handleSession)
	})
	return r
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

type landmarksResponse struct {
	Difficulty domain.Difficulty `json:"difficulty"`
	Curated    bool              `json:"curated"`
	Landmarks  []domain.Landmark `json:"landmarks"`
}

func (a *API) handleLandmarks(w http.ResponseWriter, r *http.Request) {
	d, err := domain.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := landmarksResponse{Difficulty: d, Curated: d.Curated(), Landmarks: []domain.Landmark{}}
	if d.Curated() {
		list, err := a.landmarks.Landmarks(r.Context(), d)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		resp.Landmarks = list
	}
	writeJSON(w, http.StatusOK, resp)
}

type dmsResponse struct {
	Value float64 `json:"value"`
	DMS   geo.DMS `json:"dms"`
	Text  string  `json:"text"`
}

func (a *API) handleDMS(w http.ResponseWriter, r *http.Request) {
	v, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "value must be decimal degrees")
		return
	}
	if err := geo.ValidateDegrees(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dms := geo.FromDecimal(v)
	writeJSON(w, http.StatusOK, dmsResponse{Value: v, DMS: dms, Text: dms.String()})
}

type distanceResponse struct {
	Meters float64 `json:"meters"`
	Text   string  `json:"text"`
	Score  int     `json:"score"`
}

func (a *API) handleDistance(w http.ResponseWriter, r *http.Request) {
	from, err := geo.ParsePoint(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := geo.ParsePoint(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "to: "+err.Error())
		return
	}
	m := geo.DistanceMeters(from, to)
	writeJSON(w, http.StatusOK, distanceResponse{
		Meters: m,
		Text:   geo.FormatDistance(m),
		Score:  geo.Score(m, geo.WorldMaxErrorDistance),
	})
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	state, err := a.service.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrEmptyTier):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownMode), errors.Is(err, domain.ErrUnknownDifficulty):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

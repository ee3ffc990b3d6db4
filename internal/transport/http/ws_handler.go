package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/geo"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type WSHandler struct {
	service  *app.QuizService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type modePayload struct {
	Mode string `json:"mode"`
}

type difficultyPayload struct {
	Difficulty string `json:"difficulty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type sessionPayload struct {
	SessionID string       `json:"sessionId"`
	State     domain.State `json:"state"`
}

type renderPayload struct {
	Commands []wireCommand `json:"commands"`
	State    domain.State  `json:"state"`
}

type errorPayload struct {
	Message string `json:"message"`
}

var errUnsupported = errors.New("unsupported message type")

// ServeWS upgrades HTTP requests to websockets and feeds map and form events
// into the quiz. Messages of one connection are handled in order, each
// answered by a render message or an error.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	state, cmds, err := h.service.Open(ctx, sessionID)
	if err != nil {
		h.log.Error().Err(err).Str("session", sessionID).Msg("open session failed")
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	sessionID = state.SessionID
	log := h.log.With().Str("session", sessionID).Logger()
	log.Debug().Msg("client attached")

	if err := conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{SessionID: sessionID, State: state}}); err != nil {
		return
	}
	first, err := renderMessage(cmds, state)
	if err != nil {
		log.Error().Err(err).Msg("render failed")
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	if err := conn.WriteJSON(first); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("ws read ended")
			}
			return
		}

		var msg any
		next, cmds, err := h.dispatch(ctx, sessionID, inbound)
		if err != nil {
			log.Debug().Err(err).Str("type", inbound.Type).Msg("event rejected")
			msg = errorMessage(err)
		} else if msg, err = renderMessage(cmds, next); err != nil {
			log.Error().Err(err).Str("type", inbound.Type).Msg("render failed")
			msg = errorMessage(err)
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Msg("ws write error")
			return
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, sessionID string, in inboundMessage) (domain.State, []domain.Command, error) {
	switch in.Type {
	case "mode":
		var p modePayload
		if err := decodePayload(in.Payload, &p); err != nil {
			return domain.State{}, nil, err
		}
		mode, err := domain.ParseMode(p.Mode)
		if err != nil {
			return domain.State{}, nil, err
		}
		return h.service.SwitchMode(ctx, sessionID, mode)
	case "difficulty":
		var p difficultyPayload
		if err := decodePayload(in.Payload, &p); err != nil {
			return domain.State{}, nil, err
		}
		d, err := domain.ParseDifficulty(p.Difficulty)
		if err != nil {
			return domain.State{}, nil, err
		}
		return h.service.ChangeDifficulty(ctx, sessionID, d)
	case "next":
		return h.service.NextRound(ctx, sessionID)
	case "click":
		var xy geo.XY
		if err := decodePayload(in.Payload, &xy); err != nil {
			return domain.State{}, nil, err
		}
		return h.service.Click(ctx, sessionID, geo.FromMercator(xy))
	case "guess":
		var form domain.GuessForm
		if err := decodePayload(in.Payload, &form); err != nil {
			return domain.State{}, nil, err
		}
		return h.service.SubmitGuess(ctx, sessionID, form)
	case "submit":
		return h.service.SubmitCoordinates(ctx, sessionID)
	}
	return domain.State{}, nil, errUnsupported
}

func renderMessage(cmds []domain.Command, state domain.State) (outboundMessage[renderPayload], error) {
	wire, err := renderCommands(cmds)
	if err != nil {
		return outboundMessage[renderPayload]{}, err
	}
	return outboundMessage[renderPayload]{Type: "render", Payload: renderPayload{Commands: wire, State: state}}, nil
}

func errorMessage(err error) outboundMessage[errorPayload] {
	return outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.New("invalid payload")
	}
	return nil
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clinicavoz/voice-scheduler/internal/observability/metrics"
	"github.com/clinicavoz/voice-scheduler/internal/session"
	"github.com/clinicavoz/voice-scheduler/pkg/logging"
	"github.com/google/uuid"
)

// TurnHandler drives one conversational turn end to end: load session,
// run the engine, persist the result. The same ProcessTurn core backs
// both the HTTP route and the Lambda entrypoint.
type TurnHandler struct {
	engine   *session.Engine
	sessions session.Store
	metrics  *metrics.TurnMetrics
	logger   *logging.Logger
}

// NewTurnHandler creates a new turn handler.
func NewTurnHandler(engine *session.Engine, sessions session.Store, m *metrics.TurnMetrics, logger *logging.Logger) *TurnHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &TurnHandler{
		engine:   engine,
		sessions: sessions,
		metrics:  m,
		logger:   logger,
	}
}

// TurnRequest is one turn of a voice conversation.
type TurnRequest struct {
	ConversationID string            `json:"conversation_id,omitempty"`
	Intent         string            `json:"intent"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// TurnResponse carries the spoken reply back to the voice frontend.
type TurnResponse struct {
	ConversationID string `json:"conversation_id"`
	Speech         string `json:"speech"`
	ExpectsReply   bool   `json:"expects_reply"`
	State          string `json:"state"`
}

// ProcessTurn applies one turn against the session store. A missing
// conversation_id starts a fresh conversation with a minted ID. An
// unrecognized intent kind is treated as fallback rather than rejected;
// the voice frontend should never get a hard error for something a
// caller said.
func (h *TurnHandler) ProcessTurn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	start := time.Now()

	conversationID := strings.TrimSpace(req.ConversationID)
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	state, err := h.sessions.Load(ctx, conversationID)
	if err != nil {
		return TurnResponse{}, fmt.Errorf("handlers: load session %s: %w", conversationID, err)
	}
	if state == nil {
		state = session.NewState(conversationID)
	}

	intent, known := session.ParseIntent(req.Intent)
	if !known {
		intent = session.IntentFallback
	}

	reply := h.engine.HandleTurn(ctx, state, intent, req.Fields)

	if reply.ExpectsReply {
		if err := h.sessions.Save(ctx, state); err != nil {
			return TurnResponse{}, fmt.Errorf("handlers: save session %s: %w", conversationID, err)
		}
	} else {
		if err := h.sessions.Delete(ctx, conversationID); err != nil {
			h.logger.Warn("failed to delete ended session", "conversation_id", conversationID, "error", err)
		}
	}

	h.metrics.ObserveTurn(string(intent), string(state.Pending), time.Since(start).Seconds())

	return TurnResponse{
		ConversationID: conversationID,
		Speech:         reply.Speech,
		ExpectsReply:   reply.ExpectsReply,
		State:          string(state.Pending),
	}, nil
}

// HandleTurn processes a single voice turn.
// POST /v1/turns
func (h *TurnHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Intent) == "" {
		jsonError(w, "intent is required", http.StatusBadRequest)
		return
	}

	resp, err := h.ProcessTurn(r.Context(), req)
	if err != nil {
		h.logger.Error("turn processing failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck reports process liveness.
// GET /health
func (h *TurnHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package in

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lockedin/internal/modules/assistant/dto"
	assistantin "lockedin/internal/modules/assistant/port/in"
	apperrors "lockedin/internal/platform/errors"
)

const maxBodyBytes = 64 << 10

type ChatHandler struct {
	coach  assistantin.Coach
	logger *slog.Logger
}

func NewChatHandler(coach assistantin.Coach, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{coach: coach, logger: logger}
}

// chatBody keeps fields raw so each one gets its own error message.
type chatBody struct {
	Message  json.RawMessage `json:"message"`
	Goals    json.RawMessage `json:"goals"`
	Sessions json.RawMessage `json:"sessions"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var req dto.ChatRequest
	if err := json.Unmarshal(body.Message, &req.Message); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if !isArray(body.Goals) || json.Unmarshal(body.Goals, &req.Goals) != nil {
		writeError(w, http.StatusBadRequest, "invalid goals format")
		return
	}
	if !isArray(body.Sessions) || json.Unmarshal(body.Sessions, &req.Sessions) != nil {
		writeError(w, http.StatusBadRequest, "invalid sessions format")
		return
	}

	resp, err := h.coach.Answer(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, apperrors.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperrors.ErrAssistantTimeout):
		h.logger.Warn("upstream timeout", "request_id", requestID(r), "error", err)
		writeError(w, http.StatusGatewayTimeout, "assistant timeout")
	default:
		h.logger.Error("upstream failure", "request_id", requestID(r), "error", err)
		writeError(w, http.StatusServiceUnavailable, "assistant unavailable")
	}
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

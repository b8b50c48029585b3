// Package bot serves the chat-bot webhook: each interaction names a command and its options,
// runs the matching playback operation and replies with the rendered response.
package bot

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fishify/internal/playback"
	"github.com/desertthunder/fishify/internal/server"
)

// Interaction is the webhook request body.
type Interaction struct {
	Command string         `json:"command"`
	Options map[string]any `json:"options"`
}

// Reply is the webhook response body.
type Reply struct {
	Content string `json:"content"`
	Error   bool   `json:"error,omitempty"`
}

// Handler translates interactions into [playback.Engine] calls.
type Handler struct {
	engine   *playback.Engine
	token    string
	logger   *log.Logger
	commands map[string]command
}

// NewHandler creates a Handler. A non-empty token is required in the Authorization header
// as "Bot {token}".
func NewHandler(engine *playback.Engine, token string, logger *log.Logger) *Handler {
	h := &Handler{engine: engine, token: token, logger: logger}
	h.commands = h.commandTable()
	return h
}

// Register mounts the webhook and health routes on r.
func (h *Handler) Register(r server.Router) {
	r.Handle(http.MethodGet, "/health", http.HandlerFunc(h.handleHealth))
	r.Handle(http.MethodPost, "/interactions", http.HandlerFunc(h.handleInteraction))
}

// NewRouter returns a router with request logging and the bot routes.
func NewRouter(h *Handler) *server.ChiRouter {
	r := server.NewRouter()
	r.Use(server.RequestID(), server.RequestLogger(h.logger), server.Recover())
	h.Register(r)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleInteraction(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in Interaction
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd, ok := h.commands[in.Command]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown command %q", in.Command))
		return
	}

	logger := h.logger.With("command", in.Command)
	logger.Debug("executing command", "options", in.Options)

	resp, err := cmd.run(r.Context(), options(in.Options))
	if err != nil {
		var oe *optionError
		if errors.As(err, &oe) {
			writeError(w, http.StatusBadRequest, oe.Error())
			return
		}

		logger.Error("command failed", "err", err)
		writeJSON(w, http.StatusOK, Reply{
			Content: fmt.Sprintf("Error in command `%s`: %v", in.Command, err),
			Error:   true,
		})
		return
	}

	content := resp.Render()
	if resp.Empty() {
		content = cmd.empty
	}
	writeJSON(w, http.StatusOK, Reply{Content: content})
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	got := []byte(r.Header.Get("Authorization"))
	want := []byte("Bot " + h.token)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package natsadapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	nats "github.com/nats-io/nats.go"

	"github.com/jasveersingh-de/opportunity/internal/auth"
	"github.com/jasveersingh-de/opportunity/internal/usecase"
)

// SessionHandler reacts to "session completed" events from the auth service
// and provisions a profile for the user. It is the second entry point into
// EnsureProfile beside the HTTP session endpoint; both are idempotent.
type SessionHandler struct {
	provisioning usecase.ProvisioningService
	respondFn    func(msg *nats.Msg, resp sessionResponse)
}

type sessionRequest struct {
	UserID   string         `json:"user_id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"metadata"`
}

type sessionResponse struct {
	OK        bool   `json:"ok"`
	ProfileID string `json:"profile_id,omitempty"`
	Created   bool   `json:"created,omitempty"`
	Error     string `json:"error,omitempty"`
}

func NewSessionHandler(provisioning usecase.ProvisioningService) *SessionHandler {
	return &SessionHandler{provisioning: provisioning, respondFn: respond}
}

func (h *SessionHandler) Subscribe(conn *nats.Conn, subject, queue string) error {
	if conn == nil {
		return errors.New("nats connection is nil")
	}
	_, err := conn.QueueSubscribe(subject, queue, h.handle)
	return err
}

func (h *SessionHandler) handle(msg *nats.Msg) {
	var req sessionRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondFn(msg, sessionResponse{OK: false, Error: "invalid_payload"})
		return
	}
	if req.UserID == "" {
		h.respondFn(msg, sessionResponse{OK: false, Error: "user_id_missing"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	identity := auth.Identity{ID: req.UserID, Email: req.Email, Metadata: req.Metadata}
	profile, created, err := h.provisioning.EnsureProfile(ctx, traceIDFromMsg(msg), identity)
	if err != nil {
		h.respondFn(msg, sessionResponse{OK: false, Error: "provisioning_failed"})
		return
	}
	h.respondFn(msg, sessionResponse{OK: true, ProfileID: profile.ID.String(), Created: created})
}

func traceIDFromMsg(msg *nats.Msg) string {
	if msg.Header != nil {
		return msg.Header.Get("Trace-Id")
	}
	return ""
}

func respond(msg *nats.Msg, resp sessionResponse) {
	data, _ := json.Marshal(resp)
	_ = msg.Respond(data)
}

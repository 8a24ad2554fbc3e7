package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fastbreakhq/fastbreak/internal/api/respond"
	"github.com/fastbreakhq/fastbreak/internal/chat"
	"github.com/fastbreakhq/fastbreak/internal/llm"
)

// chatRequest is the POST /chat body. History carries the prior turns of the
// conversation; the server holds no session state between requests.
type chatRequest struct {
	Message string        `json:"message"`
	History []chatMessage `json:"history,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Chat runs one conversation turn and streams the answer over SSE.
//
// Events:
//
//	delta  {"text": "..."}               incremental assistant text
//	done   {"state": "...", "tool_rounds": n, "session_id": "..."}
//	error  {"code": "...", "message": "..."}
//
// @Summary Chat about stats and news
// @Description Streams a model-generated answer over Server-Sent Events. The model may query the database while answering.
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param body body chatRequest true "User message plus prior turns"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} respond.ErrorResponse
// @Router /chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "Body must be JSON with a message field")
		return
	}
	if req.Message == "" {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "message must not be empty")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Streaming unsupported")
		return
	}

	// The whole turn, tool rounds included, runs under one deadline.
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.ChatRequestTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sess := chat.NewSessionFromHistory(historyMessages(req.History))

	result, err := h.runner.Run(ctx, sess, req.Message, func(text string) {
		writeEvent(w, "delta", map[string]string{"text": text})
		flusher.Flush()
	})
	if err != nil {
		code := respond.CodeUpstreamModel
		if errors.Is(err, context.DeadlineExceeded) {
			code = respond.CodeTimeout
		}
		h.logger.Error("chat turn failed", "session", sess.ID, "error", err)
		writeEvent(w, "error", map[string]string{
			"code":    code,
			"message": "The assistant could not finish this request.",
		})
		flusher.Flush()
		return
	}

	writeEvent(w, "done", map[string]any{
		"state":       string(result.State),
		"tool_rounds": result.ToolRounds,
		"session_id":  sess.ID,
	})
	flusher.Flush()
}

// historyMessages converts wire history into model messages, dropping
// anything that is not a plain user or assistant turn.
func historyMessages(history []chatMessage) []llm.Message {
	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		switch role := llm.Role(m.Role); role {
		case llm.RoleUser, llm.RoleAssistant:
			msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
		}
	}
	return msgs
}

func writeEvent(w http.ResponseWriter, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbreakhq/fastbreak/internal/chat"
)

func postChat(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func TestChatStreamsDeltasAndDone(t *testing.T) {
	runner := &fakeRunner{
		deltas: []string{"Jokic leads ", "with 2071 points."},
		result: &chat.Result{State: chat.StateFinalAnswer, Text: "Jokic leads with 2071 points.", ToolRounds: 1},
	}
	h := newTestHandler(&fakeStatStore{}, &fakeNewsStore{}, runner)

	rec := postChat(h, `{"message": "who leads the league in points?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: delta")
	assert.Contains(t, body, `{"text":"Jokic leads "}`)
	assert.Contains(t, body, `{"text":"with 2071 points."}`)
	assert.Contains(t, body, "event: done")
	assert.Contains(t, body, `"state":"final-answer"`)
	assert.Contains(t, body, `"tool_rounds":1`)

	// deltas arrive before the terminal event
	assert.Less(t, strings.Index(body, "event: delta"), strings.Index(body, "event: done"))
}

func TestChatBudgetExhaustedState(t *testing.T) {
	runner := &fakeRunner{
		result: &chat.Result{State: chat.StateStepBudgetExhausted, ToolRounds: 8},
	}
	h := newTestHandler(&fakeStatStore{}, &fakeNewsStore{}, runner)

	rec := postChat(h, `{"message": "loop forever"}`)

	body := rec.Body.String()
	assert.Contains(t, body, `"state":"step-budget-exhausted"`)
	assert.Contains(t, body, `"tool_rounds":8`)
}

func TestChatUpstreamErrorEvent(t *testing.T) {
	runner := &fakeRunner{err: &chat.UpstreamError{Err: errors.New("provider unavailable")}}
	h := newTestHandler(&fakeStatStore{}, &fakeNewsStore{}, runner)

	rec := postChat(h, `{"message": "hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code, "stream already started; error travels in-band")
	body := rec.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "UPSTREAM_MODEL_ERROR")
	assert.NotContains(t, body, "provider unavailable", "provider details stay server-side")
}

func TestChatRejectsBadRequests(t *testing.T) {
	h := newTestHandler(&fakeStatStore{}, &fakeNewsStore{}, &fakeRunner{})

	rec := postChat(h, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postChat(h, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryMessagesFiltersRoles(t *testing.T) {
	msgs := historyMessages([]chatMessage{
		{Role: "user", Content: "who is the best center?"},
		{Role: "assistant", Content: "Jokic."},
		{Role: "system", Content: "ignored"},
		{Role: "tool", Content: "ignored"},
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, "who is the best center?", msgs[0].Content)
	assert.Equal(t, "Jokic.", msgs[1].Content)
}

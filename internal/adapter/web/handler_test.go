package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParikhVedant/pare/internal/infra/memory"
	"github.com/ParikhVedant/pare/internal/usecase"
)

type scriptPlanner struct {
	plans []usecase.Plan
	err   error
	turn  int
}

func (p *scriptPlanner) Plan(_ context.Context, _ string, _ []usecase.Message, _ []usecase.ToolSpec) (usecase.Plan, error) {
	if p.err != nil {
		return usecase.Plan{}, p.err
	}
	if p.turn >= len(p.plans) {
		return usecase.Plan{}, nil
	}
	plan := p.plans[p.turn]
	p.turn++
	return plan, nil
}

func newTestHandler(t *testing.T, p usecase.Planner) *Handler {
	t.Helper()
	funnel := usecase.NewFunnel(memory.NewFunnelRepo(), nil)
	a, err := usecase.NewAssistant(p, usecase.WithFunnel(funnel))
	require.NoError(t, err)
	return NewHandler(a, funnel, nil)
}

func postChat(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatCreatesSession(t *testing.T) {
	p := &scriptPlanner{plans: []usecase.Plan{
		{Calls: []usecase.ToolCall{{Name: usecase.CapCompanyInfo}}},
	}}
	h := newTestHandler(t, p)

	w := postChat(t, h.Routes(), `{"message":"tell me about PARE"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, resp.Response, "decorative surfaces")
}

func TestChatReusesSession(t *testing.T) {
	p := &scriptPlanner{plans: []usecase.Plan{
		{Text: "first"},
		{Text: "second"},
	}}
	h := newTestHandler(t, p)
	r := h.Routes()

	w := postChat(t, r, `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var first chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = postChat(t, r, `{"session_id":"`+first.SessionID+`","message":"again"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var second chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, "second", second.Response)
}

func TestChatConcurrentSameSession(t *testing.T) {
	plans := make([]usecase.Plan, 9)
	for i := range plans {
		plans[i] = usecase.Plan{Text: "ok"}
	}
	h := newTestHandler(t, &scriptPlanner{plans: plans})
	r := h.Routes()

	w := postChat(t, r, `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var first chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	// a client retry lands while the original request is still running
	body := `{"session_id":"` + first.SessionID + `","message":"again"}`
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	h.mu.Lock()
	s := h.sessions[first.SessionID]
	h.mu.Unlock()
	require.NotNil(t, s)
	assert.Len(t, s.History(), 10)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	h := newTestHandler(t, &scriptPlanner{})

	w := postChat(t, h.Routes(), `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postChat(t, h.Routes(), `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatPlannerFailure(t *testing.T) {
	h := newTestHandler(t, &scriptPlanner{err: assert.AnError})

	w := postChat(t, h.Routes(), `{"message":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "could not process")
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, &scriptPlanner{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestFunnelEndpoints(t *testing.T) {
	p := &scriptPlanner{plans: []usecase.Plan{{Text: "hello"}}}
	h := newTestHandler(t, p)
	r := h.Routes()

	w := postChat(t, r, `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/funnel", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "First contact"))

	req = httptest.NewRequest(http.MethodGet, "/funnel.png", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestFunnelNotConfigured(t *testing.T) {
	a, err := usecase.NewAssistant(&scriptPlanner{})
	require.NoError(t, err)
	h := NewHandler(a, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/funnel", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

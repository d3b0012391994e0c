package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/terminaltour/internal/content"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/session"
	"github.com/aretw0/terminaltour/pkg/shell"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	pg, loader, err := content.Load()
	require.NoError(t, err)

	opts = append([]Option{WithVersion("1.2.3\n")}, opts...)
	srv, err := NewServer(pg, loader, opts...)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
}

func TestRoutesAreDocumented(t *testing.T) {
	srv := newTestServer(t)
	doc, err := LoadSpec()
	require.NoError(t, err)

	routes, ok := srv.Handler().(chi.Routes)
	require.True(t, ok)

	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		item := doc.Paths.Find(route)
		if assert.NotNil(t, item, "undocumented route %s", route) {
			assert.NotNil(t, item.GetOperation(method), "undocumented %s %s", method, route)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/info", "")
	var info map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])

	rec = do(t, h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}

func TestGetPageAndScripts(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/api/page", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pg domain.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pg))
	assert.Len(t, pg.Sections, 11)

	rec = do(t, h, http.MethodGet, "/api/scripts/hero", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var script domain.Script
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &script))
	assert.Equal(t, "hero", script.ID)
	assert.NotEmpty(t, script.Turns)

	rec = do(t, h, http.MethodGet, "/api/scripts/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDocument(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := do(t, h, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Terminal Agents for Everyone</title>")
	assert.Contains(t, body, `id="section-10"`)
	assert.Contains(t, body, `data-section="section-03"`)
	assert.Contains(t, body, `data-copy=`)
}

func TestRunShell(t *testing.T) {
	h := newTestServer(t).Handler()

	var resp shellResponse
	rec := do(t, h, http.MethodPost, "/api/shell", `{"input":"mkdir test"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mkdir", resp.Result.Command)

	state, err := json.Marshal(resp.State)
	require.NoError(t, err)
	rec = do(t, h, http.MethodPost, "/api/shell", `{"input":"ls","state":`+string(state)+`}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Result.Lines)
	assert.Contains(t, resp.Result.Lines[0].Text, "test/")

	rec = do(t, h, http.MethodPost, "/api/shell", `{"input":"foobar"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []shell.Line{{Role: domain.RoleOutput, Text: "command not found: foobar"}}, resp.Result.Lines)

	rec = do(t, h, http.MethodPost, "/api/shell", `{"input":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunShell_EchoesSanitizedInput(t *testing.T) {
	h := newTestServer(t).Handler()

	body, err := json.Marshal(shellRequest{Input: "\x1b]0;x\x07foo"})
	require.NoError(t, err)
	rec := do(t, h, http.MethodPost, "/api/shell", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp shellResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "]0;xfoo", resp.Result.Input)
	assert.Equal(t, "command not found: ]0;xfoo", resp.Result.Lines[0].Text)
}

func TestRunShell_BodyTooLarge(t *testing.T) {
	h := newTestServer(t).Handler()

	body := `{"input":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(t, h, http.MethodPost, "/api/shell", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyAction_Errors(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodPost, "/api/sessions/nope/play", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/sessions/nope/rewind", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscribeWidget_NotPlayable(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/api/widgets/section-02/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/widgets/nowhere/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/widgets/section-01/events?script=hero", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "script outside the widget's variants")
}

func TestSubscribeWidget_AfterShutdown(t *testing.T) {
	srv := newTestServer(t)
	srv.Sessions.Shutdown()

	rec := do(t, srv.Handler(), http.MethodGet, "/api/widgets/section-01/events", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, r *bufio.Reader) <-chan sseEvent {
	t.Helper()
	out := make(chan sseEvent, 64)
	go func() {
		defer close(out)
		var ev sseEvent
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data = strings.TrimPrefix(line, "data: ")
			case line == "":
				out <- ev
				ev = sseEvent{}
			}
		}
	}()
	return out
}

func next(t *testing.T, events <-chan sseEvent) sseEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "stream closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
	}
	return sseEvent{}
}

func TestSubscribeWidget_Session(t *testing.T) {
	srv := newTestServer(t, WithSessionOptions(session.WithFrameInterval(5*time.Millisecond)))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/widgets/section-01/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := readEvents(t, bufio.NewReader(resp.Body))

	ev := next(t, events)
	require.Equal(t, "session", ev.name)
	var sess sessionEvent
	require.NoError(t, json.Unmarshal([]byte(ev.data), &sess))
	assert.Equal(t, "compare-chat", sess.Script)
	assert.Equal(t, []string{"compare-chat", "compare-agent"}, sess.Variants)

	ev = next(t, events)
	require.Equal(t, "frame", ev.name)
	var f domain.Frame
	require.NoError(t, json.Unmarshal([]byte(ev.data), &f))
	assert.Equal(t, domain.PhaseIdle, f.State.Phase)

	post := func(path, body string) int {
		r, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		r.Body.Close()
		return r.StatusCode
	}
	assert.Equal(t, http.StatusNoContent, post("/api/sessions/"+sess.ID+"/play", ""))

	ev = next(t, events)
	require.NoError(t, json.Unmarshal([]byte(ev.data), &f))
	assert.Equal(t, domain.PhaseStreaming, f.State.Phase)

	assert.Equal(t, http.StatusNoContent, post("/api/sessions/"+sess.ID+"/select", `{"script":"compare-agent"}`))
	for f.State.ScriptID != "compare-agent" {
		ev = next(t, events)
		require.NoError(t, json.Unmarshal([]byte(ev.data), &f))
	}
	assert.Equal(t, domain.PhaseIdle, f.State.Phase)
	assert.Empty(t, f.Turns)

	assert.Equal(t, http.StatusConflict, post("/api/sessions/"+sess.ID+"/select", `{"script":"hero"}`))
	assert.Equal(t, http.StatusBadRequest, post("/api/sessions/"+sess.ID+"/select", `{}`))

	huge := `{"script":"compare-agent","pad":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(t, srv.Handler(), http.MethodPost, "/api/sessions/"+sess.ID+"/select", huge)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cancel()
	assert.Eventually(t, func() bool { return srv.Sessions.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestMetricsRecordRoutes(t *testing.T) {
	h := newTestServer(t).Handler()
	do(t, h, http.MethodGet, "/api/scripts/hero", "")
	do(t, h, http.MethodPost, "/api/shell", `{"input":"pwd"}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	body := rec.Body.String()
	assert.Contains(t, body, `route="/api/scripts/{id}"`)
	assert.Contains(t, body, `tour_shell_commands_total{command="pwd"} 1`)
}

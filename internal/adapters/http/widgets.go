package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/page"
	"github.com/aretw0/terminaltour/pkg/session"
	"github.com/go-chi/chi/v5"
)

// errNoPlayback marks sections whose widget cannot be mounted as a session.
var errNoPlayback = fmt.Errorf("%w: no playback widget", domain.ErrSectionNotFound)

type sessionEvent struct {
	ID       string   `json:"id"`
	Section  string   `json:"section"`
	Variants []string `json:"variants"`
	Script   string   `json:"script"`
}

type selectRequest struct {
	Script string `json:"script"`
}

// SubscribeWidget handles GET /api/widgets/{section}/events (SSE).
// The session lives exactly as long as the stream.
func (s *Server) SubscribeWidget(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeWidget: streaming not supported")
		return
	}

	sec, err := page.Section(s.Page, chi.URLParam(r, "section"))
	if err != nil {
		s.fail(w, err)
		return
	}
	wd := sec.Widget
	if (wd.Kind != domain.WidgetPlayback && wd.Kind != domain.WidgetSteps) || len(wd.Scripts) == 0 {
		s.fail(w, errNoPlayback)
		return
	}

	scriptID := wd.Scripts[0]
	if q := r.URL.Query().Get("script"); q != "" {
		scriptID = q
	}
	script, err := s.variant(wd, scriptID)
	if err != nil {
		s.fail(w, err)
		return
	}

	sess, err := s.Sessions.Open(r.Context(), session.OpenRequest{
		Section:  sec.ID,
		Script:   script,
		Variants: wd.Scripts,
		Autoplay: wd.Autoplay,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	defer sess.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	writeEvent(w, "session", sessionEvent{
		ID:       sess.ID,
		Section:  sec.ID,
		Variants: wd.Scripts,
		Script:   script.ID,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: widget client disconnected", "session", sess.ID)
			return
		case f, ok := <-sess.Frames():
			if !ok {
				return
			}
			writeEvent(w, "frame", f)
			flusher.Flush()
		}
	}
}

// ApplyAction handles POST /api/sessions/{id}/{action}.
func (s *Server) ApplyAction(w http.ResponseWriter, r *http.Request) {
	action, err := session.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.fail(w, err)
		return
	}
	sess, err := s.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	var script domain.Script
	if action == session.ActionSelect {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var body selectRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Script == "" {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.logger.Warn("ApplyAction: invalid select body", "error", err)
			return
		}
		if script, err = s.Scripts.GetScript(body.Script); err != nil {
			s.fail(w, err)
			return
		}
	}

	if err := sess.Do(r.Context(), action, script); err != nil {
		s.fail(w, err)
		return
	}
	s.Metrics.Actions.WithLabelValues(string(action)).Inc()
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeReloads handles GET /api/events (SSE): one data line per changed script.
func (s *Server) SubscribeReloads(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	if s.watcher == nil {
		http.Error(w, "Reload events are not enabled", http.StatusNotFound)
		return
	}
	events, err := s.watcher.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}

// variant resolves id, which must be one of the widget's scripts.
func (s *Server) variant(wd domain.Widget, id string) (domain.Script, error) {
	for _, v := range wd.Scripts {
		if v == id {
			return s.Scripts.GetScript(id)
		}
	}
	return domain.Script{}, fmt.Errorf("%w: %s", domain.ErrScriptNotFound, id)
}

func writeEvent(w io.Writer, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(map[string]string{"error": err.Error()})
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/aretw0/terminaltour/pkg/shell"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

type shellRequest struct {
	Input string       `json:"input"`
	State *shell.State `json:"state,omitempty"`
}

type shellResponse struct {
	Result shell.Result `json:"result"`
	State  shell.State  `json:"state"`
}

// RunShell handles POST /api/shell. The server keeps no shell state: the
// client sends the state it got back from the previous command.
func (s *Server) RunShell(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var body shellRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("RunShell: invalid request body", "error", err)
		return
	}

	opts := []shell.Option{shell.WithMaxInput(s.maxInput), shell.WithLogger(s.logger)}
	if body.State != nil {
		opts = append(opts, shell.WithState(*body.State))
	}
	interp := shell.New(opts...)

	res := interp.Exec(body.Input)
	if res.Command != "" {
		s.Metrics.ShellCommands.WithLabelValues(res.Command).Inc()
	}
	writeJSON(w, http.StatusOK, shellResponse{Result: res, State: interp.State()})
}

package http

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"paragraphs": paragraphs,
}).ParseFS(templateFS, "templates/page.html"))

// GetDocument handles GET /: the whole tour as one scrollable page.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, s.Page); err != nil {
		s.logger.Error("GetDocument: render failed", "error", err)
	}
}

// paragraphs splits prose on blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package handler

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
)

type htmlResponse struct {
	status    int
	component templ.Component
}

// Render buffers the component first so a render failure can still
// produce a clean error response.
func (h htmlResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := h.component.Render(r.Context(), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(h.status)
	_, err := buf.WriteTo(w)
	return err
}

// HTML renders a templ component with status 200.
func HTML(component templ.Component) Response {
	return htmlResponse{status: http.StatusOK, component: component}
}

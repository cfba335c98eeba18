package templates

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so component bodies can be written
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// href writes a sanitized, attribute-escaped URL.
func (h *htmlWriter) href(u string) {
	h.raw(templ.EscapeString(string(templ.URL(u))))
}

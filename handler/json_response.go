package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON writes body as-is with the given status code. No envelope is added,
// so handlers fully control the wire shape.
func JSON(status int, body any) Response {
	if status == 0 {
		status = http.StatusOK
	}
	return jsonResponse{status: status, body: body}
}

// OK is JSON with status 200.
func OK(body any) Response {
	return JSON(http.StatusOK, body)
}

// Error converts err into a Response. An HTTPError keeps its code, anything
// else becomes a 500 with a generic message.
func Error(err error) Response {
	info := classifyError(err)
	return JSON(info.StatusCode, errorBody(info))
}

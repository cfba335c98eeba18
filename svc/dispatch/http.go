package dispatch

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/launchmvp/mailer/handler"
	"github.com/launchmvp/mailer/pkg/binder"
	"github.com/launchmvp/mailer/pkg/logger"
)

// APIKeyHeader carries the shared secret of the send endpoint.
const APIKeyHeader = "X-API-Key"

// SendBody is the JSON body of POST /api/email/send.
type SendBody struct {
	Type   string          `json:"type"`
	To     string          `json:"to,omitempty"`
	UserID string          `json:"userId,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Request validates the type and decodes Data into its payload. Unknown
// keys in Data are ignored.
func (b SendBody) Request() (Request, error) {
	req := Request{To: b.To, UserID: b.UserID}
	if b.Type == "" {
		return req, ErrMissingFields
	}
	t, err := ParseEmailType(b.Type)
	if err != nil {
		return req, err
	}
	req.Type = t
	if req.Data, err = DecodeData(t, b.Data); err != nil {
		return req, err
	}
	return req, nil
}

// SendResponse is the JSON body returned for handled sends.
type SendResponse struct {
	Success   bool   `json:"success"`
	EmailID   string `json:"emailId,omitempty"`
	Message   string `json:"message,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HTTPHandler exposes a Service over HTTP.
type HTTPHandler struct {
	svc     *Service
	apiKey  string
	preview bool
	log     *slog.Logger
}

// NewHTTPHandler creates the HTTP surface. apiKey is the expected
// X-API-Key value; an empty key rejects every request.
func NewHTTPHandler(svc *Service, apiKey string, preview bool, log *slog.Logger) *HTTPHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &HTTPHandler{
		svc:     svc,
		apiKey:  apiKey,
		preview: preview,
		log:     log.With(logger.Component("dispatch_http")),
	}
}

// Mount registers the routes on r.
func (h *HTTPHandler) Mount(r chi.Router) {
	r.With(RequireAPIKey(h.apiKey)).Post("/api/email/send", handler.Wrap(h.send,
		handler.WithBinder[SendBody](binder.JSON()),
		handler.WithErrorHandler[SendBody](h.bindError),
	))
	if h.preview {
		r.Get("/preview-email/{template}", handler.Wrap(h.previewEmail))
	}
}

// RequireAPIKey rejects requests whose X-API-Key does not match key.
// The check runs before the body is read.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(APIKeyHeader)
			if key == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				_ = handler.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"}).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *HTTPHandler) bindError(ctx handler.Context, err error) {
	h.log.WarnContext(ctx, "invalid send request body", logger.Error(err))
	_ = handler.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()}).
		Render(ctx.ResponseWriter(), ctx.Request())
}

func (h *HTTPHandler) send(ctx handler.Context, body SendBody) handler.Response {
	req, err := body.Request()
	if err == nil {
		var res Result
		res, err = h.svc.Send(ctx, req)
		if err == nil {
			return sendResponse(req.Type, res)
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return handler.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrUserNotFound):
		return handler.JSON(http.StatusNotFound, map[string]string{"error": "User not found or no email address"})
	default:
		h.log.ErrorContext(ctx, "email dispatch failed", logger.Error(err))
		return handler.Error(handler.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Failed to send email",
			Details: err.Error(),
		})
	}
}

func sendResponse(t EmailType, res Result) handler.Response {
	switch res.Outcome {
	case OutcomeDuplicate:
		return handler.OK(SendResponse{Success: false, Message: DuplicateMessage(t), Duplicate: true})
	case OutcomeFailed:
		return handler.JSON(http.StatusInternalServerError, SendResponse{Success: false, Error: res.Error})
	default:
		return handler.OK(SendResponse{Success: true, EmailID: res.EmailID})
	}
}

func (h *HTTPHandler) previewEmail(ctx handler.Context, _ struct{}) handler.Response {
	name := chi.URLParam(ctx.Request(), "template")
	c, ok := Preview(name, h.svc.Links())
	if !ok {
		return handler.JSON(http.StatusNotFound, map[string]any{
			"error":     "Unknown template",
			"templates": PreviewTemplates,
		})
	}
	return handler.HTML(c)
}

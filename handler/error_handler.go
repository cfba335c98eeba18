package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/launchmvp/mailer/pkg/binder"
	"github.com/launchmvp/mailer/pkg/logger"
)

// ErrorInfo contains classified error information.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Details    string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    ErrInternal.Message,
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
		info.Details = httpErr.Details
	case binder.IsBindError(err):
		info.StatusCode = http.StatusBadRequest
		info.Message = err.Error()
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func errorBody(info ErrorInfo) map[string]any {
	body := map[string]any{"error": info.Message}
	if info.Details != "" {
		body["details"] = info.Details
	}
	return body
}

// NewErrorHandler creates the default error handler: the error is logged
// and written as {"error": message} with the classified status code.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err)
		r := ctx.Request()

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			logger.StatusCode(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSON(info.StatusCode, errorBody(info)).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}

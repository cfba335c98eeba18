package hooks

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/launchmvp/mailer/handler"
	"github.com/launchmvp/mailer/pkg/binder"
	"github.com/launchmvp/mailer/pkg/logger"
	"github.com/launchmvp/mailer/pkg/metrics"
)

// maxEventSize bounds inbound webhook bodies.
const maxEventSize = 256 << 10

type hook struct {
	name  string
	label string
	adapt Adapter
}

// Handler receives database webhooks and relays them to the dispatcher.
type Handler struct {
	client Dispatcher
	cfg    Config
	log    *slog.Logger
	hooks  []hook
}

// Option configures a Handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	log *slog.Logger
	now func() time.Time
}

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *handlerOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock overrides time.Now for retention calculations.
func WithClock(now func() time.Time) Option {
	return func(o *handlerOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewHandler creates a Handler.
func NewHandler(client Dispatcher, cfg Config, opts ...Option) *Handler {
	o := &handlerOptions{log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return &Handler{
		client: client,
		cfg:    cfg,
		log:    o.log.With(logger.Component("hooks")),
		hooks: []hook{
			{name: "welcome", label: "Welcome", adapt: WelcomeFromEvent},
			{name: "billing", label: "Billing confirmation", adapt: BillingFromEvent},
			{name: "cancellation", label: "Cancellation", adapt: CancellationFromEvent(o.now)},
		},
	}
}

// Mount registers POST /hooks/{welcome,billing,cancellation} on r.
func (h *Handler) Mount(r chi.Router) {
	r.Route("/hooks", func(r chi.Router) {
		r.Use(RequireBearer(h.cfg.Secret))
		for _, hk := range h.hooks {
			r.Post("/"+hk.name, handler.Wrap(h.relay(hk),
				handler.WithBinder[Event](binder.JSON(
					binder.AllowUnknownFields(),
					binder.WithMaxSize(maxEventSize),
				)),
				handler.WithErrorHandler[Event](h.adapterFailure(hk)),
			))
		}
	})
}

// RequireBearer checks "Authorization: Bearer <secret>". An empty secret
// disables the check.
func RequireBearer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				_ = handler.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"}).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// dispatchReply is the subset of the dispatch response read by the relay.
type dispatchReply struct {
	Success   bool   `json:"success"`
	EmailID   string `json:"emailId"`
	Duplicate bool   `json:"duplicate"`
}

func (h *Handler) relay(hk hook) handler.HandlerFunc[Event] {
	return func(ctx handler.Context, ev Event) handler.Response {
		log := h.log.With(slog.String("hook", hk.name), slog.String("op", ev.Type), slog.String("table", ev.Table))

		tr, err := hk.adapt(ev, h.cfg)
		if err != nil {
			return h.fail(ctx, hk, err)
		}
		if tr.Ignore != "" {
			metrics.IncHookEvent(hk.name, "ignored")
			log.DebugContext(ctx, "event ignored", slog.String("reason", tr.Ignore))
			return handler.OK(map[string]string{"message": tr.Ignore})
		}

		reply, err := h.client.Dispatch(ctx, tr.Body)
		if err != nil {
			return h.fail(ctx, hk, err)
		}

		if !reply.OK() {
			metrics.IncHookEvent(hk.name, "failed")
			var details any
			if decodeErr := reply.Decode(&details); decodeErr != nil {
				details = string(reply.Body)
			}
			log.ErrorContext(ctx, "dispatch rejected event",
				logger.StatusCode(reply.StatusCode),
				logger.UserID(tr.Body.UserID),
			)
			return handler.JSON(http.StatusInternalServerError, map[string]any{
				"error":   "Failed to send email",
				"details": details,
			})
		}

		var out dispatchReply
		if err := reply.Decode(&out); err != nil {
			return h.fail(ctx, hk, err)
		}

		if out.Duplicate {
			metrics.IncHookEvent(hk.name, "duplicate")
			log.InfoContext(ctx, "duplicate email blocked", logger.UserID(tr.Body.UserID))
			return handler.OK(map[string]any{
				"success":   true,
				"message":   hk.label + " email already sent",
				"duplicate": true,
			})
		}

		metrics.IncHookEvent(hk.name, "sent")
		log.InfoContext(ctx, "email dispatched", logger.UserID(tr.Body.UserID), logger.MessageID(out.EmailID))
		return handler.OK(map[string]any{
			"success": true,
			"message": hk.label + " email sent successfully",
			"emailId": out.EmailID,
		})
	}
}

func (h *Handler) fail(ctx handler.Context, hk hook, err error) handler.Response {
	metrics.IncHookEvent(hk.name, "error")
	h.log.ErrorContext(ctx, "hook failed", slog.String("hook", hk.name), logger.Error(err))
	return handler.JSON(http.StatusInternalServerError, map[string]string{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}

// adapterFailure handles unreadable webhook bodies like any other adapter failure.
func (h *Handler) adapterFailure(hk hook) handler.ErrorHandler {
	return func(ctx handler.Context, err error) {
		if !binder.IsBindError(err) && !errors.Is(err, handler.ErrNilResponse) {
			h.log.ErrorContext(ctx, "failed to render hook response", logger.Error(err))
			return
		}
		_ = h.fail(ctx, hk, err).Render(ctx.ResponseWriter(), ctx.Request())
	}
}

var _ Dispatcher = (*Client)(nil)

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/launchmvp/mailer/pkg/email"
	"github.com/launchmvp/mailer/pkg/logger"
	"github.com/launchmvp/mailer/pkg/metrics"
	"github.com/launchmvp/mailer/svc/dispatchlog"
	"github.com/launchmvp/mailer/svc/identity"
)

// Resolver turns a user id into a recipient.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (identity.Identity, error)
}

// Locker guards one (user, email type) pair while it is being dispatched.
// It is satisfied by *redis.Locker.
type Locker interface {
	TryLock(ctx context.Context, key string) (release func(context.Context) error, acquired bool, err error)
}

// Service dispatches transactional emails.
type Service struct {
	resolver Resolver
	log      dispatchlog.Log
	sender   email.Sender
	locker   Locker
	links    Links
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocker enables per-pair locking around check, send and log.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

// NewService creates a Service.
func NewService(resolver Resolver, log dispatchlog.Log, sender email.Sender, cfg Config, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		log:      log,
		sender:   sender,
		links:    cfg.Links(),
		logger:   logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("dispatch"))
	return s
}

// Links returns the default application links used for rendering.
func (s *Service) Links() Links {
	return s.links
}

// Send validates, resolves, deduplicates, renders, delivers and logs one
// email, in that order. The returned error is one of ErrInvalidRequest,
// ErrUserNotFound or an internal failure; delivery failures are reported
// as OutcomeFailed.
func (s *Service) Send(ctx context.Context, req Request) (res Result, err error) {
	defer func() {
		metrics.IncDispatch(metricType(req.Type), metricOutcome(res, err))
	}()

	req, err = s.validate(req)
	if err != nil {
		return Result{}, err
	}

	log := s.logger.With(logger.EmailType(string(req.Type)), logger.UserID(req.UserID))

	if req.To == "" {
		if req, err = s.resolve(ctx, req); err != nil {
			return Result{}, err
		}
	}

	if req.UserID != "" {
		release, dup, err := s.claim(ctx, log, req)
		if err != nil {
			return Result{}, err
		}
		if dup {
			log.InfoContext(ctx, "duplicate email suppressed")
			return Result{Outcome: OutcomeDuplicate, Recipient: req.To, Data: req.Data}, nil
		}
		defer release()
	}

	subject, html, err := Render(ctx, req.Data, s.links)
	if err != nil {
		return Result{}, err
	}

	res = Result{Recipient: req.To, Data: req.Data}

	start := s.now()
	emailID, sendErr := s.sender.Send(ctx, email.Message{
		To:      req.To,
		Subject: subject,
		HTML:    html,
		Tag:     string(req.Type),
	})
	metrics.ObserveDelivery(s.sender.Provider(), sendErr == nil, s.now().Sub(start))

	if sendErr != nil {
		res.Outcome = OutcomeFailed
		res.Error = sendErr.Error()
		log.ErrorContext(ctx, "email delivery failed",
			logger.Recipient(req.To),
			logger.Provider(s.sender.Provider()),
			logger.Error(sendErr),
		)
	} else {
		res.Outcome = OutcomeSent
		res.EmailID = emailID
		log.InfoContext(ctx, "email sent",
			logger.Recipient(req.To),
			logger.Provider(s.sender.Provider()),
			logger.MessageID(emailID),
		)
	}

	if req.UserID != "" {
		s.record(ctx, log, req, res)
	}
	return res, nil
}

func (s *Service) validate(req Request) (Request, error) {
	req.To = strings.TrimSpace(req.To)
	req.UserID = strings.TrimSpace(req.UserID)

	if req.Type == "" || (req.To == "" && req.UserID == "") {
		return req, ErrMissingFields
	}
	if !req.Type.Valid() {
		return req, fmt.Errorf("%w: %q", ErrUnknownEmailType, req.Type)
	}
	if req.To != "" && !email.ValidAddress(req.To) {
		return req, ErrInvalidRecipient
	}

	if req.Data == nil {
		p, err := NewPayload(req.Type)
		if err != nil {
			return req, err
		}
		req.Data = p
	} else if req.Data.EmailType() != req.Type {
		return req, fmt.Errorf("%w: %s payload for %s email", ErrInvalidData, req.Data.EmailType(), req.Type)
	}
	return req, nil
}

func (s *Service) resolve(ctx context.Context, req Request) (Request, error) {
	id, err := s.resolver.Resolve(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return req, ErrUserNotFound
		}
		return req, fmt.Errorf("resolve user: %w", err)
	}
	if !email.ValidAddress(id.Email) {
		s.logger.WarnContext(ctx, "resolved address is not a valid email",
			logger.UserID(req.UserID),
			logger.Recipient(id.Email),
		)
		return req, ErrUserNotFound
	}

	req.To = id.Email
	if req.Data.Name() == "" {
		req.Data.SetName(identity.FirstName(id))
	}
	return req, nil
}

// claim takes the optional pair lock and checks the log. dup is true when
// the pair was already dispatched or is being dispatched right now.
func (s *Service) claim(ctx context.Context, log *slog.Logger, req Request) (release func(), dup bool, err error) {
	release = func() {}

	if s.locker != nil {
		unlock, acquired, lockErr := s.locker.TryLock(ctx, req.UserID+":"+string(req.Type))
		switch {
		case lockErr != nil:
			log.WarnContext(ctx, "dispatch lock unavailable, continuing without it", logger.Error(lockErr))
		case !acquired:
			return release, true, nil
		default:
			release = func() {
				// the request context may already be done
				if err := unlock(context.WithoutCancel(ctx)); err != nil {
					log.WarnContext(ctx, "failed to release dispatch lock", logger.Error(err))
				}
			}
		}
	}

	exists, err := s.log.Exists(ctx, req.UserID, string(req.Type))
	if err != nil {
		release()
		return func() {}, false, fmt.Errorf("check dispatch log: %w", err)
	}
	if exists {
		release()
		return func() {}, true, nil
	}
	return release, false, nil
}

func (s *Service) record(ctx context.Context, log *slog.Logger, req Request, res Result) {
	entry := dispatchlog.Entry{
		UserID:       req.UserID,
		EmailType:    string(req.Type),
		Recipient:    req.To,
		Status:       dispatchlog.StatusSent,
		ErrorMessage: res.Error,
		SentAt:       s.now(),
	}
	if res.Outcome == OutcomeFailed {
		entry.Status = dispatchlog.StatusFailed
	}

	// the email is already out; a caller that gave up must not lose the record
	err := s.log.Append(context.WithoutCancel(ctx), entry)
	switch {
	case errors.Is(err, dispatchlog.ErrAlreadyRecorded):
		log.WarnContext(ctx, "dispatch already recorded by a concurrent request")
	case err != nil:
		log.ErrorContext(ctx, "failed to record dispatch", logger.Error(err))
	}
}

// metricType keeps caller-supplied types out of metric labels.
func metricType(t EmailType) string {
	if !t.Valid() {
		return "unknown"
	}
	return string(t)
}

func metricOutcome(res Result, err error) string {
	switch {
	case err == nil:
		return string(res.Outcome)
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}

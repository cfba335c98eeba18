package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/launchmvp/mailer/pkg/logger"
	"github.com/launchmvp/mailer/pkg/metrics"
)

// UserRecord is a read-only view of a user in one store.
type UserRecord struct {
	Email       string
	DisplayName string
	Metadata    map[string]any
}

// Store looks up a user by id. Implementations return ErrNotFound when the
// user does not exist.
type Store interface {
	Lookup(ctx context.Context, userID string) (*UserRecord, error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(ctx context.Context, userID string) (*UserRecord, error)

func (f StoreFunc) Lookup(ctx context.Context, userID string) (*UserRecord, error) {
	return f(ctx, userID)
}

// Identity is a resolved recipient.
// PrimaryMetadata always comes from the primary store, even when the email
// was found in the auth store.
type Identity struct {
	Email           string
	DisplayName     string
	PrimaryMetadata map[string]any
	Source          string
}

// Store names used in Identity.Source, logs and metrics.
const (
	SourcePrimary = "primary"
	SourceAuth    = "auth"
)

// Resolver maps a user id to an Identity, trying the primary store first
// and the auth store second.
type Resolver struct {
	primary Store
	auth    Store
	log     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// NewResolver creates a Resolver. Either store may be nil, in which case it
// is skipped.
func NewResolver(primary, auth Store, opts ...Option) *Resolver {
	r := &Resolver{
		primary: primary,
		auth:    auth,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("identity"))
	return r
}

// Resolve returns the first store record carrying a non-empty email.
// Store failures other than ErrNotFound are logged and treated as a miss.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Identity, error) {
	if strings.TrimSpace(userID) == "" {
		return Identity{}, ErrUserNotFound
	}

	var id Identity

	primary := r.lookup(ctx, SourcePrimary, r.primary, userID)
	if primary != nil {
		id.PrimaryMetadata = primary.Metadata
		if email := strings.TrimSpace(primary.Email); email != "" {
			id.Email = email
			id.DisplayName = primary.DisplayName
			id.Source = SourcePrimary
			return id, nil
		}
	}

	r.log.DebugContext(ctx, "no email in primary store, checking auth store", logger.UserID(userID))

	auth := r.lookup(ctx, SourceAuth, r.auth, userID)
	if auth != nil {
		if email := strings.TrimSpace(auth.Email); email != "" {
			id.Email = email
			id.DisplayName = auth.DisplayName
			id.Source = SourceAuth
			return id, nil
		}
	}

	r.log.WarnContext(ctx, "could not resolve user email", logger.UserID(userID))
	return Identity{}, ErrUserNotFound
}

func (r *Resolver) lookup(ctx context.Context, name string, store Store, userID string) *UserRecord {
	if store == nil {
		return nil
	}

	rec, err := store.Lookup(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		metrics.IncIdentityLookup(name, "no_email")
		return nil
	case err != nil:
		metrics.IncIdentityLookup(name, "error")
		r.log.WarnContext(ctx, "user lookup failed",
			slog.String("store", name),
			logger.UserID(userID),
			logger.Error(err),
		)
		return nil
	case rec == nil || strings.TrimSpace(rec.Email) == "":
		metrics.IncIdentityLookup(name, "no_email")
	default:
		metrics.IncIdentityLookup(name, "found")
	}
	return rec
}

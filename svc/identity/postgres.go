package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/launchmvp/mailer/pkg/pg"
)

// Querier is the subset of pgxpool.Pool used by PostgresStore.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const selectUserSQL = `SELECT email, full_name, raw_user_meta_data FROM public.users WHERE id = $1`

// PostgresStore reads users from the application's public.users table.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Lookup(ctx context.Context, userID string) (*UserRecord, error) {
	var (
		email    *string
		fullName *string
		meta     map[string]any
	)

	err := s.db.QueryRow(ctx, selectUserSQL, userID).Scan(&email, &fullName, &meta)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrLookupFailed, fmt.Errorf("public.users: %w", err))
	}

	rec := &UserRecord{Metadata: meta}
	if email != nil {
		rec.Email = *email
	}
	if fullName != nil {
		rec.DisplayName = *fullName
	}
	return rec, nil
}

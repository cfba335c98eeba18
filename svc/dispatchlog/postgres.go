package dispatchlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/launchmvp/mailer/pkg/pg"
)

// DB is the subset of pgxpool.Pool used by PostgresLog.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	existsSQL = `SELECT EXISTS (SELECT 1 FROM user_email_log WHERE user_id = $1 AND email_type = $2)`
	insertSQL = `INSERT INTO user_email_log (id, user_id, email_type, email_address, status, error_message, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

// PostgresLog stores entries in the user_email_log table.
type PostgresLog struct {
	db  DB
	now func() time.Time
}

// NewPostgresLog creates a PostgresLog.
func NewPostgresLog(db DB) *PostgresLog {
	return &PostgresLog{db: db, now: time.Now}
}

func (l *PostgresLog) Exists(ctx context.Context, userID, emailType string) (bool, error) {
	var exists bool
	if err := l.db.QueryRow(ctx, existsSQL, userID, emailType).Scan(&exists); err != nil {
		return false, errors.Join(ErrStorage, fmt.Errorf("check user_email_log: %w", err))
	}
	return exists, nil
}

func (l *PostgresLog) Append(ctx context.Context, e Entry) error {
	e, err := prepare(e, l.now())
	if err != nil {
		return err
	}

	var errMsg *string
	if e.ErrorMessage != "" {
		errMsg = &e.ErrorMessage
	}

	if _, err := l.db.Exec(ctx, insertSQL,
		e.ID, e.UserID, e.EmailType, e.Recipient, string(e.Status), errMsg, e.SentAt,
	); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrAlreadyRecorded
		}
		return errors.Join(ErrStorage, fmt.Errorf("insert user_email_log: %w", err))
	}
	return nil
}

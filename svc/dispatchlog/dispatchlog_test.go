package dispatchlog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchmvp/mailer/svc/dispatchlog"
)

func entry(userID, emailType string) dispatchlog.Entry {
	return dispatchlog.Entry{
		UserID:    userID,
		EmailType: emailType,
		Recipient: "sean@x.com",
		Status:    dispatchlog.StatusSent,
	}
}

func TestMemoryLog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("append then exists", func(t *testing.T) {
		t.Parallel()
		log := dispatchlog.NewMemoryLog()

		ok, err := log.Exists(ctx, "u1", "welcome")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, log.Append(ctx, entry("u1", "welcome")))

		ok, err = log.Exists(ctx, "u1", "welcome")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = log.Exists(ctx, "u1", "cancellation")
		require.NoError(t, err)
		assert.False(t, ok)

		entries := log.Entries()
		require.Len(t, entries, 1)
		assert.NotEqual(t, uuid.Nil, entries[0].ID)
		assert.False(t, entries[0].SentAt.IsZero())
	})

	t.Run("never overwrites", func(t *testing.T) {
		t.Parallel()
		log := dispatchlog.NewMemoryLog()
		first := entry("u1", "welcome")
		second := entry("u1", "welcome")
		second.Status = dispatchlog.StatusFailed

		require.NoError(t, log.Append(ctx, first))
		assert.ErrorIs(t, log.Append(ctx, second), dispatchlog.ErrAlreadyRecorded)

		entries := log.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, dispatchlog.StatusSent, entries[0].Status)
	})

	t.Run("invalid entries", func(t *testing.T) {
		t.Parallel()
		log := dispatchlog.NewMemoryLog()
		bad := entry("", "welcome")
		assert.ErrorIs(t, log.Append(ctx, bad), dispatchlog.ErrInvalidEntry)

		bad = entry("u1", "welcome")
		bad.Status = "queued"
		assert.ErrorIs(t, log.Append(ctx, bad), dispatchlog.ErrInvalidEntry)
		assert.Empty(t, log.Entries())
	})

	t.Run("concurrent appends keep one entry per pair", func(t *testing.T) {
		t.Parallel()
		log := dispatchlog.NewMemoryLog()

		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- log.Append(ctx, entry("u1", "welcome"))
			}()
		}
		wg.Wait()
		close(errs)

		var ok int
		for err := range errs {
			if err == nil {
				ok++
			} else {
				assert.ErrorIs(t, err, dispatchlog.ErrAlreadyRecorded)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Len(t, log.Entries(), 1)
	})
}

type boolRow struct {
	v   bool
	err error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.v
	return nil
}

type fakeDB struct {
	exists  boolRow
	execErr error
	sql     string
	args    []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sql = sql
	f.args = args
	return f.exists
}

func TestPostgresLog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{exists: boolRow{v: true}}
		ok, err := dispatchlog.NewPostgresLog(db).Exists(ctx, "u1", "welcome")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []any{"u1", "welcome"}, db.args)
	})

	t.Run("exists failure", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{exists: boolRow{err: errors.New("timeout")}}
		_, err := dispatchlog.NewPostgresLog(db).Exists(ctx, "u1", "welcome")
		assert.ErrorIs(t, err, dispatchlog.ErrStorage)
	})

	t.Run("append sent", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		sentAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		e := entry("u1", "welcome")
		e.SentAt = sentAt

		require.NoError(t, dispatchlog.NewPostgresLog(db).Append(ctx, e))
		assert.Contains(t, db.sql, "INSERT INTO user_email_log")
		require.Len(t, db.args, 7)
		assert.Equal(t, "u1", db.args[1])
		assert.Equal(t, "welcome", db.args[2])
		assert.Equal(t, "sean@x.com", db.args[3])
		assert.Equal(t, "sent", db.args[4])
		assert.Nil(t, db.args[5])
		assert.Equal(t, sentAt, db.args[6])
	})

	t.Run("append failed keeps message", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		e := entry("u1", "welcome")
		e.Status = dispatchlog.StatusFailed
		e.ErrorMessage = "mailbox unavailable"

		require.NoError(t, dispatchlog.NewPostgresLog(db).Append(ctx, e))
		msg, ok := db.args[5].(*string)
		require.True(t, ok)
		assert.Equal(t, "mailbox unavailable", *msg)
	})

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{execErr: &pgconn.PgError{Code: "23505"}}
		err := dispatchlog.NewPostgresLog(db).Append(ctx, entry("u1", "welcome"))
		assert.ErrorIs(t, err, dispatchlog.ErrAlreadyRecorded)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{execErr: errors.New("conn closed")}
		err := dispatchlog.NewPostgresLog(db).Append(ctx, entry("u1", "welcome"))
		assert.ErrorIs(t, err, dispatchlog.ErrStorage)
	})
}

// Package dispatchlog records email send attempts per (user, email type)
// so the dispatcher can suppress duplicates. Entries are append-only.
package dispatchlog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyRecorded is returned by Append when an entry for the same
	// user and email type exists. The existing entry is left untouched.
	ErrAlreadyRecorded = errors.New("dispatch already recorded for user and email type")
	ErrInvalidEntry    = errors.New("invalid dispatch log entry")
	ErrStorage         = errors.New("dispatch log storage failure")
)

// Status of a delivery attempt.
type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Entry is one delivery attempt.
type Entry struct {
	ID           uuid.UUID
	UserID       string
	EmailType    string
	Recipient    string
	Status       Status
	ErrorMessage string
	SentAt       time.Time
}

// Log is the dispatch log.
type Log interface {
	Exists(ctx context.Context, userID, emailType string) (bool, error)
	Append(ctx context.Context, e Entry) error
}

// prepare validates e and fills the id and timestamp when unset.
func prepare(e Entry, now time.Time) (Entry, error) {
	if e.UserID == "" || e.EmailType == "" || e.Recipient == "" {
		return e, ErrInvalidEntry
	}
	if e.Status != StatusSent && e.Status != StatusFailed {
		return e, ErrInvalidEntry
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.SentAt.IsZero() {
		e.SentAt = now
	}
	e.SentAt = e.SentAt.UTC()
	return e, nil
}

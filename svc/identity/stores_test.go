package identity_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchmvp/mailer/svc/identity"
)

type fakeRow struct {
	email    *string
	fullName *string
	meta     map[string]any
	err      error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(**string) = r.email
	*dest[1].(**string) = r.fullName
	*dest[2].(*map[string]any) = r.meta
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	sql  string
	args []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	q.args = args
	return q.row
}

func ptr(s string) *string { return &s }

func TestPostgresStore(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		q := &fakeQuerier{row: fakeRow{
			email:    ptr("sean@x.com"),
			fullName: ptr("Sean Chen"),
			meta:     map[string]any{"firstName": "Sean"},
		}}
		rec, err := identity.NewPostgresStore(q).Lookup(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "sean@x.com", rec.Email)
		assert.Equal(t, "Sean Chen", rec.DisplayName)
		assert.Equal(t, "Sean", rec.Metadata["firstName"])
		assert.Contains(t, q.sql, "FROM public.users WHERE id = $1")
		assert.Equal(t, []any{"u1"}, q.args)
	})

	t.Run("null columns", func(t *testing.T) {
		t.Parallel()
		rec, err := identity.NewPostgresStore(&fakeQuerier{}).Lookup(context.Background(), "u1")
		require.NoError(t, err)
		assert.Empty(t, rec.Email)
		assert.Empty(t, rec.DisplayName)
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		_, err := identity.NewPostgresStore(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}).Lookup(context.Background(), "u1")
		assert.ErrorIs(t, err, identity.ErrNotFound)
	})

	t.Run("query failure", func(t *testing.T) {
		t.Parallel()
		_, err := identity.NewPostgresStore(&fakeQuerier{row: fakeRow{err: errors.New("conn reset")}}).Lookup(context.Background(), "u1")
		assert.ErrorIs(t, err, identity.ErrLookupFailed)
		assert.NotErrorIs(t, err, identity.ErrNotFound)
	})
}

func newGoTrue(t *testing.T) (*identity.GoTrueStore, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	store, err := identity.NewGoTrueStore(identity.GoTrueConfig{
		URL:            "https://proj.supabase.co/",
		ServiceRoleKey: "service-key",
	}, &http.Client{Transport: transport})
	require.NoError(t, err)
	return store, transport
}

func TestGoTrueStore(t *testing.T) {
	t.Parallel()
	const endpoint = "https://proj.supabase.co/auth/v1/admin/users/u1"

	t.Run("found with full_name", func(t *testing.T) {
		t.Parallel()
		store, transport := newGoTrue(t)
		transport.RegisterResponder(http.MethodGet, endpoint, func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer service-key", req.Header.Get("Authorization"))
			assert.Equal(t, "service-key", req.Header.Get("apikey"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"id":            "u1",
				"email":         "ana@x.com",
				"user_metadata": map[string]any{"full_name": "Ana Bell", "name": "ignored"},
			})
		})

		rec, err := store.Lookup(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "ana@x.com", rec.Email)
		assert.Equal(t, "Ana Bell", rec.DisplayName)
	})

	t.Run("name fallback", func(t *testing.T) {
		t.Parallel()
		store, transport := newGoTrue(t)
		transport.RegisterResponder(http.MethodGet, endpoint,
			httpmock.NewStringResponder(http.StatusOK, `{"email":"a@x.com","user_metadata":{"name":"Al"}}`))

		rec, err := store.Lookup(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Al", rec.DisplayName)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		store, transport := newGoTrue(t)
		transport.RegisterResponder(http.MethodGet, endpoint,
			httpmock.NewStringResponder(http.StatusNotFound, `{"msg":"User not found"}`))

		_, err := store.Lookup(context.Background(), "u1")
		assert.ErrorIs(t, err, identity.ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		store, transport := newGoTrue(t)
		transport.RegisterResponder(http.MethodGet, endpoint,
			httpmock.NewStringResponder(http.StatusInternalServerError, `oops`))

		_, err := store.Lookup(context.Background(), "u1")
		assert.ErrorIs(t, err, identity.ErrLookupFailed)
	})

	t.Run("config validation", func(t *testing.T) {
		t.Parallel()
		_, err := identity.NewGoTrueStore(identity.GoTrueConfig{}, nil)
		require.Error(t, err)
		assert.False(t, identity.GoTrueConfig{URL: "https://x"}.Enabled())
	})
}

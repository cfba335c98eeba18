package dispatch_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/launchmvp/mailer/pkg/email"
	"github.com/launchmvp/mailer/svc/dispatch"
	"github.com/launchmvp/mailer/svc/dispatchlog"
	"github.com/launchmvp/mailer/svc/identity"
)

const testKey = "secret-key"

func newRouter(svc *dispatch.Service) http.Handler {
	r := chi.NewRouter()
	dispatch.NewHTTPHandler(svc, testKey, true, nil).Mount(r)
	return r
}

func post(t *testing.T, h http.Handler, key, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/email/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(dispatch.APIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestHTTPSend(t *testing.T) {
	t.Parallel()

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()
		h := newRouter(newFixture(t).svc)

		code, body := post(t, h, "", `{"type":"welcome","userId":"u1"}`)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, map[string]any{"error": "Unauthorized"}, body)

		// the key is checked before the body is parsed
		code, _ = post(t, h, "wrong", `{not json`)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("empty configured key rejects everything", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		dispatch.NewHTTPHandler(newFixture(t).svc, "", false, nil).Mount(r)

		req := httptest.NewRequest(http.MethodPost, "/api/email/send", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad requests", func(t *testing.T) {
		t.Parallel()
		h := newRouter(newFixture(t).svc)

		for _, raw := range []string{
			`{not json`,
			`{"type":"welcome"}`,
			`{"userId":"u1"}`,
			`{"type":"welcome","userId":"u1","data":{"firstName":7}}`,
			`{"type":"welcome","userId":"u1","extra":1}`,
			`{"type":"newsletter","userId":"u1"}`,
		} {
			code, body := post(t, h, testKey, raw)
			assert.Equal(t, http.StatusBadRequest, code, raw)
			assert.NotEmpty(t, body["error"], raw)
		}

		_, body := post(t, h, testKey, `{"type":"welcome"}`)
		assert.Equal(t, "Missing required fields: type, and either to or userId", body["error"])
	})

	t.Run("unknown data keys are ignored", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool {
			return strings.Contains(m.HTML, "Hey Sam!")
		})).Return("re_extra", nil)

		code, body := post(t, newRouter(f.svc), testKey,
			`{"type":"welcome","userId":"u1","data":{"firstName":"Sam","referrer":"newsletter","plan":{"id":3}}}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{"success": true, "emailId": "re_extra"}, body)
	})

	t.Run("user not found", func(t *testing.T) {
		t.Parallel()
		code, body := post(t, newRouter(newFixture(t).svc), testKey, `{"type":"welcome","userId":"ghost","data":{}}`)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, map[string]any{"error": "User not found or no email address"}, body)
	})

	t.Run("sent then duplicate", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.sender.On("Send", mock.Anything, mock.Anything).Return("re_abc", nil)
		h := newRouter(f.svc)

		code, body := post(t, h, testKey, `{"type":"welcome","userId":"u1","data":{}}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{"success": true, "emailId": "re_abc"}, body)

		code, body = post(t, h, testKey, `{"type":"welcome","userId":"u1","data":{}}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{
			"success":   false,
			"message":   "welcome email already sent to this user",
			"duplicate": true,
		}, body)
	})

	t.Run("delivery failure", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

		code, body := post(t, newRouter(f.svc), testKey, `{"type":"welcome","to":"a@x.com"}`)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, map[string]any{"success": false, "error": "rate limited"}, body)
	})

	t.Run("internal error", func(t *testing.T) {
		t.Parallel()
		resolver := identity.NewResolver(identity.StoreFunc(func(_ context.Context, _ string) (*identity.UserRecord, error) {
			return &identity.UserRecord{Email: "a@x.com"}, nil
		}), nil)
		svc := dispatch.NewService(resolver, failingLog{}, new(mockSender), dispatch.Config{})

		code, body := post(t, newRouter(svc), testKey, `{"type":"welcome","userId":"u1"}`)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Failed to send email", body["error"])
		assert.Contains(t, body["details"], dispatchlog.ErrStorage.Error())
	})
}

func TestHTTPPreview(t *testing.T) {
	t.Parallel()
	h := newRouter(newFixture(t).svc)

	req := httptest.NewRequest(http.MethodGet, "/preview-email/billing", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Welcome to LaunchMVP Pro")

	req = httptest.NewRequest(http.MethodGet, "/preview-email/invoice", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

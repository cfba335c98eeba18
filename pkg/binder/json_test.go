package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchmvp/mailer/pkg/binder"
)

type sendBody struct {
	Type   string         `json:"type"`
	UserID string         `json:"userId"`
	Data   map[string]any `json:"data"`
}

func newRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/email/send", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON()(newRequest(`{"type":"welcome","userId":"u1","data":{"firstName":"Sean"}}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "welcome", got.Type)
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, "Sean", got.Data["firstName"])
	})

	t.Run("charset parameter and missing content type", func(t *testing.T) {
		t.Parallel()
		var a, b sendBody
		require.NoError(t, binder.JSON()(newRequest(`{"type":"welcome"}`, "application/json; charset=utf-8"), &a))
		require.NoError(t, binder.JSON()(newRequest(`{"type":"welcome"}`, ""), &b))
		assert.Equal(t, a, b)
	})

	t.Run("wrong media type", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON()(newRequest(`type=welcome`, "application/x-www-form-urlencoded"), &got)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
		assert.True(t, binder.IsBindError(err))
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON()(newRequest(`{"type":`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON()(newRequest("  ", "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrEmptyBody)
	})

	t.Run("unknown field rejected by default", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON()(newRequest(`{"type":"welcome","extra":1}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("unknown field allowed", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON(binder.AllowUnknownFields())(newRequest(`{"type":"welcome","extra":1}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "welcome", got.Type)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON()(newRequest(`{"type":"welcome"}{"type":"billing"}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()
		var got sendBody
		err := binder.JSON(binder.WithMaxSize(10))(newRequest(`{"type":"welcome"}`, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var got sendBody
		err := binder.JSON()(newRequest(`{"type":"welcome"}`, "application/json").WithContext(ctx), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}

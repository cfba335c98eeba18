package dispatch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/launchmvp/mailer/pkg/email"
	"github.com/launchmvp/mailer/pkg/metrics"
	"github.com/launchmvp/mailer/pkg/redis"
	"github.com/launchmvp/mailer/svc/dispatch"
	"github.com/launchmvp/mailer/svc/dispatchlog"
	"github.com/launchmvp/mailer/svc/identity"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *mockSender) Provider() string { return "mock" }

// users is a primary store backed by a map; lookups are counted.
type users struct {
	records map[string]*identity.UserRecord
	calls   atomic.Int32
}

func (u *users) Lookup(_ context.Context, userID string) (*identity.UserRecord, error) {
	u.calls.Add(1)
	rec, ok := u.records[userID]
	if !ok {
		return nil, identity.ErrNotFound
	}
	return rec, nil
}

type fixture struct {
	svc    *dispatch.Service
	sender *mockSender
	log    *dispatchlog.MemoryLog
	users  *users
}

func newFixture(t *testing.T, opts ...dispatch.Option) *fixture {
	t.Helper()
	f := &fixture{
		sender: new(mockSender),
		log:    dispatchlog.NewMemoryLog(),
		users: &users{records: map[string]*identity.UserRecord{
			"u1": {Email: "sean@x.com", DisplayName: "Sean Chen"},
			"u2": {Email: "john.doe@example.com"},
		}},
	}
	resolver := identity.NewResolver(f.users, nil)
	f.svc = dispatch.NewService(resolver, f.log, f.sender, dispatch.Config{AppURL: "https://app.test"}, opts...)
	return f
}

func TestSendWelcomeEndToEnd(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool {
		return m.To == "sean@x.com" &&
			m.Subject == "Welcome to LaunchMVP! 👋 Your journey starts here" &&
			m.Tag == "welcome"
	})).Return("msg-1", nil).Once()

	res, err := f.svc.Send(ctx, dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeSent, res.Outcome)
	assert.Equal(t, "msg-1", res.EmailID)
	assert.Equal(t, "sean@x.com", res.Recipient)
	assert.Equal(t, "Sean", res.Data.Name())

	msg := f.sender.Calls[0].Arguments.Get(1).(email.Message)
	assert.Contains(t, msg.HTML, "Hey Sean!")
	assert.Contains(t, msg.HTML, `href="https://app.test/dashboard"`)

	entries := f.log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, "welcome", entries[0].EmailType)
	assert.Equal(t, "sean@x.com", entries[0].Recipient)
	assert.Equal(t, dispatchlog.StatusSent, entries[0].Status)

	// repeat
	res, err = f.svc.Send(ctx, dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeDuplicate, res.Outcome)
	assert.Equal(t, "welcome email already sent to this user", dispatch.DuplicateMessage(dispatch.EmailWelcome))
	assert.Len(t, f.log.Entries(), 1)
	f.sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestSendDerivesFirstNameFromEmail(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("msg-2", nil)

	res, err := f.svc.Send(context.Background(), dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, "John", res.Data.Name())
}

func TestSendKeepsExplicitFirstName(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("msg-3", nil)

	res, err := f.svc.Send(context.Background(), dispatch.Request{
		Type:   dispatch.EmailBillingConfirmation,
		UserID: "u1",
		Data:   &dispatch.BillingPayload{FirstName: "Boss", TierName: "Pro"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Boss", res.Data.Name())

	msg := f.sender.Calls[0].Arguments.Get(1).(email.Message)
	assert.Equal(t, "✓ Billing setup complete - LaunchMVP", msg.Subject)
	assert.Contains(t, msg.HTML, "Hey Boss,")
}

func TestSendValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  dispatch.Request
		want error
	}{
		{"missing to and user", dispatch.Request{Type: dispatch.EmailWelcome}, dispatch.ErrMissingFields},
		{"blank to", dispatch.Request{Type: dispatch.EmailWelcome, To: "  "}, dispatch.ErrMissingFields},
		{"missing type", dispatch.Request{UserID: "u1"}, dispatch.ErrMissingFields},
		{"unknown type", dispatch.Request{Type: "newsletter", UserID: "u1"}, dispatch.ErrUnknownEmailType},
		{"bad recipient", dispatch.Request{Type: dispatch.EmailWelcome, To: "not-an-email"}, dispatch.ErrInvalidRecipient},
		{
			"payload type mismatch",
			dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1", Data: &dispatch.BillingPayload{}},
			dispatch.ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			_, err := f.svc.Send(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, dispatch.ErrInvalidRequest)
			assert.Zero(t, f.users.calls.Load())
			f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestSendUserNotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.Send(context.Background(), dispatch.Request{Type: dispatch.EmailWelcome, UserID: "ghost"})
	assert.ErrorIs(t, err, dispatch.ErrUserNotFound)
	assert.NotErrorIs(t, err, dispatch.ErrInvalidRequest)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Empty(t, f.log.Entries())
}

func TestSendDeliveryFailureIsLogged(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).
		Return("", &email.ProviderError{Provider: email.ProviderResend, Err: errors.New("domain not verified")})

	res, err := f.svc.Send(context.Background(), dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeFailed, res.Outcome)
	assert.Equal(t, "domain not verified", res.Error)

	entries := f.log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, dispatchlog.StatusFailed, entries[0].Status)
	assert.Equal(t, "domain not verified", entries[0].ErrorMessage)

	// a failed attempt still counts as dispatched
	res, err = f.svc.Send(context.Background(), dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeDuplicate, res.Outcome)
	f.sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestSendByAddressIsNeverDeduplicated(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("msg", nil)

	for range 2 {
		res, err := f.svc.Send(context.Background(), dispatch.Request{Type: dispatch.EmailWelcome, To: "guest@x.com"})
		require.NoError(t, err)
		assert.Equal(t, dispatch.OutcomeSent, res.Outcome)
	}
	f.sender.AssertNumberOfCalls(t, "Send", 2)
	assert.Empty(t, f.log.Entries())
	assert.Zero(t, f.users.calls.Load())
}

func TestSendCancellationSubjects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sender.On("Send", mock.Anything, mock.Anything).Return("msg", nil)

	_, err := f.svc.Send(context.Background(), dispatch.Request{
		Type: dispatch.EmailCancellation,
		To:   "a@x.com",
		Data: &dispatch.CancellationPayload{IsAccountDeletion: true},
	})
	require.NoError(t, err)
	_, err = f.svc.Send(context.Background(), dispatch.Request{Type: dispatch.EmailCancellation, To: "a@x.com"})
	require.NoError(t, err)

	first := f.sender.Calls[0].Arguments.Get(1).(email.Message)
	second := f.sender.Calls[1].Arguments.Get(1).(email.Message)
	assert.Equal(t, "Your account has been deleted", first.Subject)
	assert.Equal(t, "Your subscription has been cancelled", second.Subject)
	assert.Contains(t, second.HTML, "30 days remaining")
}

type failingLog struct{ dispatchlog.Log }

func (failingLog) Exists(context.Context, string, string) (bool, error) {
	return false, dispatchlog.ErrStorage
}

func TestSendLogFailureIsInternal(t *testing.T) {
	t.Parallel()
	sender := new(mockSender)
	resolver := identity.NewResolver(identity.StoreFunc(func(context.Context, string) (*identity.UserRecord, error) {
		return &identity.UserRecord{Email: "a@x.com"}, nil
	}), nil)
	svc := dispatch.NewService(resolver, failingLog{}, sender, dispatch.Config{})

	_, err := svc.Send(context.Background(), dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dispatchlog.ErrStorage)
	assert.NotErrorIs(t, err, dispatch.ErrInvalidRequest)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendWithLocker(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locker := redis.NewLocker(client, "mailer:lock:", 0)

	f := newFixture(t, dispatch.WithLocker(locker))
	f.sender.On("Send", mock.Anything, mock.Anything).Return("msg", nil)
	ctx := context.Background()

	// another request is in flight for the pair
	release, ok, err := locker.TryLock(ctx, "u1:welcome")
	require.NoError(t, err)
	require.True(t, ok)

	res, err := f.svc.Send(ctx, dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeDuplicate, res.Outcome)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	require.NoError(t, release(ctx))

	res, err = f.svc.Send(ctx, dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeSent, res.Outcome)
	assert.False(t, mr.Exists("mailer:lock:u1:welcome"), "lock released after dispatch")
}

func TestSendUnknownTypeMetricLabel(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.Send(context.Background(), dispatch.Request{Type: "newsletter-7f3a", To: "a@x.com"})
	require.ErrorIs(t, err, dispatch.ErrInvalidRequest)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()
	assert.NotContains(t, out, "newsletter-7f3a")
	assert.Contains(t, out, `mailer_dispatch_requests_total{email_type="unknown",outcome="invalid"}`)
}

// ctxLog fails appends on a done context, like a database driver would.
type ctxLog struct{ *dispatchlog.MemoryLog }

func (l ctxLog) Append(ctx context.Context, e dispatchlog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.MemoryLog.Append(ctx, e)
}

func TestSendRecordsAfterCallerGivesUp(t *testing.T) {
	t.Parallel()
	log := ctxLog{dispatchlog.NewMemoryLog()}
	sender := new(mockSender)
	resolver := identity.NewResolver(identity.StoreFunc(func(context.Context, string) (*identity.UserRecord, error) {
		return &identity.UserRecord{Email: "a@x.com"}, nil
	}), nil)
	svc := dispatch.NewService(resolver, log, sender, dispatch.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sender.On("Send", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return("re_1", nil)

	res, err := svc.Send(ctx, dispatch.Request{Type: dispatch.EmailWelcome, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeSent, res.Outcome)
	require.Len(t, log.Entries(), 1)
	assert.Equal(t, dispatchlog.StatusSent, log.Entries()[0].Status)
}

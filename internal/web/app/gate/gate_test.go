package gate_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	"notehub/internal/web/app/gate"
)

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Session(ctx context.Context) (*remote.Response[entities.SessionStatus], error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*remote.Response[entities.SessionStatus])
	return resp, args.Error(1)
}

var (
	now          = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	privatePaths = []string{"/profile", "/profile/edit", "/notes", "/notes/filter/all", "/notes/abc123"}
	publicPaths  = []string{"/sign-in", "/sign-up"}
)

func newGate(checker gate.SessionChecker) *gate.Gate {
	return gate.New(checker, gate.WithClock(func() time.Time { return now }))
}

func jwtWithExpiry(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestDecide_PrivateWithoutCredentialsRedirects(t *testing.T) {
	checker := &mockChecker{}
	g := newGate(checker)

	for _, path := range privatePaths {
		d := g.Decide(context.Background(), path, entities.Credentials{})
		assert.Equal(t, gate.Denied, d.Outcome, path)
		assert.Equal(t, "/sign-in", d.Redirect, path)
		assert.Equal(t, gate.ReasonNoCredentials, d.Reason, path)
	}

	checker.AssertNotCalled(t, "Session", mock.Anything)
}

func TestDecide_PrivateWithValidAccessSkipsRefresh(t *testing.T) {
	checker := &mockChecker{}
	g := newGate(checker)

	tokens := []string{"opaque", jwtWithExpiry(t, now.Add(time.Hour))}
	for _, path := range privatePaths {
		for _, token := range tokens {
			d := g.Decide(context.Background(), path, entities.Credentials{AccessToken: token, RefreshToken: "r"})
			assert.Equal(t, gate.Allowed, d.Outcome, path)
			assert.Empty(t, d.Cookies)
		}
	}

	checker.AssertNotCalled(t, "Session", mock.Anything)
}

func TestDecide_RefreshIssuesNewCredentials(t *testing.T) {
	checker := &mockChecker{}
	expires := now.Add(15 * time.Minute)
	checker.On("Session", mock.Anything).Return(&remote.Response[entities.SessionStatus]{
		Data: entities.SessionStatus{Success: true},
		Cookies: []*http.Cookie{
			{Name: entities.CookieAccessToken, Value: "a2", Path: "/", Expires: expires, MaxAge: 900},
			{Name: entities.CookieRefreshToken, Value: "r2", Path: "/", MaxAge: 86400},
			{Name: "sessionId", Value: "s"},
		},
	}, nil).Once()

	g := newGate(checker)
	prev := entities.Credentials{RefreshToken: "r1"}
	d := g.Decide(context.Background(), "/notes/filter/all", prev)

	require.Equal(t, gate.AllowedRefreshed, d.Outcome)
	assert.Empty(t, d.Redirect)
	require.Len(t, d.Cookies, 2)
	assert.Equal(t, expires, d.Cookies[0].Expires)
	assert.Equal(t, 900, d.Cookies[0].MaxAge)
	assert.Equal(t, entities.Credentials{AccessToken: "a2", RefreshToken: "r2"}, d.Credentials(prev))
	checker.AssertExpectations(t)
}

func TestDecide_ExpiredAccessIsRefreshed(t *testing.T) {
	checker := &mockChecker{}
	checker.On("Session", mock.Anything).Return(&remote.Response[entities.SessionStatus]{
		Cookies: []*http.Cookie{{Name: entities.CookieAccessToken, Value: "fresh"}},
	}, nil).Once()

	g := newGate(checker)
	d := g.Decide(context.Background(), "/profile", entities.Credentials{
		AccessToken:  jwtWithExpiry(t, now.Add(-time.Minute)),
		RefreshToken: "r1",
	})

	assert.Equal(t, gate.AllowedRefreshed, d.Outcome)
	checker.AssertExpectations(t)
}

func TestDecide_RefreshWithoutNewCredentialsRedirects(t *testing.T) {
	checker := &mockChecker{}
	checker.On("Session", mock.Anything).Return(&remote.Response[entities.SessionStatus]{
		Data: entities.SessionStatus{Success: false},
	}, nil).Once()

	d := newGate(checker).Decide(context.Background(), "/notes", entities.Credentials{RefreshToken: "r1"})

	assert.Equal(t, gate.Denied, d.Outcome)
	assert.Equal(t, "/sign-in", d.Redirect)
	assert.Equal(t, gate.ReasonNoNewCredentials, d.Reason)
	assert.Empty(t, d.Cookies)
}

func TestDecide_SessionCheckErrorFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"network error", errors.New("dial tcp: connection refused"), gate.ReasonSessionCheckFailed},
		{"server error", &remote.StatusError{StatusCode: http.StatusBadGateway}, gate.ReasonSessionCheckFailed},
		{"rejected refresh", &remote.StatusError{StatusCode: http.StatusUnauthorized}, gate.ReasonSessionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &mockChecker{}
			checker.On("Session", mock.Anything).Return(nil, tt.err).Once()

			d := newGate(checker).Decide(context.Background(), "/profile", entities.Credentials{RefreshToken: "r1"})

			assert.Equal(t, gate.Denied, d.Outcome)
			assert.Equal(t, "/sign-in", d.Redirect)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestDecide_PublicOnlyWithAccessRedirectsToProfile(t *testing.T) {
	g := newGate(&mockChecker{})

	for _, path := range publicPaths {
		d := g.Decide(context.Background(), path, entities.Credentials{AccessToken: "a1"})
		assert.Equal(t, gate.Denied, d.Outcome, path)
		assert.Equal(t, "/profile", d.Redirect, path)
	}
}

func TestDecide_PublicOnlyAnonymousAllowed(t *testing.T) {
	g := newGate(&mockChecker{})

	for _, path := range publicPaths {
		d := g.Decide(context.Background(), path, entities.Credentials{RefreshToken: "r1"})
		assert.Equal(t, gate.Allowed, d.Outcome, path)
	}
}

func TestDecide_UnrestrictedAlwaysAllowed(t *testing.T) {
	g := newGate(&mockChecker{})

	for _, creds := range []entities.Credentials{{}, {AccessToken: "a"}, {RefreshToken: "r"}} {
		d := g.Decide(context.Background(), "/", creds)
		assert.Equal(t, gate.Allowed, d.Outcome)
	}
}

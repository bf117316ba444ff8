package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func (m *MockAuthenticator) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestLoginSetsCookiesAndCurrentRestores(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour)
	token := signToken(t, "s3cret", jwt.MapClaims{"sub": "u1", "role": "owner", "exp": exp.Unix()})
	user := models.User{ID: "u1", Name: "Ana Lima", Email: "ana@example.com", Role: models.RoleOwner}

	auth := new(MockAuthenticator)
	auth.On("Login", mock.Anything, "ana@example.com", "pw").
		Return(&AuthResult{Token: token, User: user}, nil)

	m := NewManager(auth, "s3cret", true)
	w := httptest.NewRecorder()

	s, err := m.Login(context.Background(), w, "ana@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, exp.Unix(), s.ExpiresAt.Unix())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 3)
	for _, c := range cookies {
		assert.True(t, c.Secure)
		assert.Equal(t, c.Name != UserCookie, c.HttpOnly, c.Name)
	}

	current, err := m.Current(requestWithCookies(cookies))
	require.NoError(t, err)
	assert.Equal(t, s.ID, current.ID)
	assert.Equal(t, user, current.User)
	auth.AssertExpectations(t)
}

func TestLoginPropagatesAPIError(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Login", mock.Anything, "x@example.com", "bad").Return(nil, errors.New("Invalid credentials"))

	m := NewManager(auth, "", false)
	w := httptest.NewRecorder()

	_, err := m.Login(context.Background(), w, "x@example.com", "bad")
	assert.EqualError(t, err, "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestCurrent(t *testing.T) {
	valid := signToken(t, "s3cret", jwt.MapClaims{"sub": "u9", "role": "customer", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, "s3cret", jwt.MapClaims{"sub": "u9", "exp": time.Now().Add(-time.Hour).Unix()})
	forged := signToken(t, "other", jwt.MapClaims{"sub": "u9", "exp": time.Now().Add(time.Hour).Unix()})

	m := NewManager(nil, "s3cret", false)

	t.Run("no token", func(t *testing.T) {
		_, err := m.Current(requestWithCookies(nil))
		assert.Equal(t, ErrNoSession, err)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := m.Current(requestWithCookies([]*http.Cookie{{Name: TokenCookie, Value: expired}}))
		assert.Equal(t, ErrExpired, err)
	})

	t.Run("wrong signature", func(t *testing.T) {
		_, err := m.Current(requestWithCookies([]*http.Cookie{{Name: TokenCookie, Value: forged}}))
		assert.Equal(t, ErrNoSession, err)
	})

	t.Run("malformed user cookie falls back to claims", func(t *testing.T) {
		s, err := m.Current(requestWithCookies([]*http.Cookie{
			{Name: TokenCookie, Value: valid},
			{Name: UserCookie, Value: "{not-json"},
		}))
		require.NoError(t, err)
		assert.Equal(t, "u9", s.User.ID)
		assert.Equal(t, models.RoleCustomer, s.User.Role)
		assert.Empty(t, s.ID)
	})

	t.Run("edited user cookie cannot raise the role", func(t *testing.T) {
		s, err := m.Current(requestWithCookies([]*http.Cookie{
			{Name: TokenCookie, Value: valid},
			{Name: UserCookie, Value: url.QueryEscape(`{"id":"u9","name":"Eve","role":"admin"}`)},
		}))
		require.NoError(t, err)
		assert.True(t, s.Verified)
		assert.Equal(t, "u9", s.User.ID)
		assert.Equal(t, "Eve", s.User.Name)
		assert.Equal(t, models.RoleCustomer, s.User.Role)
	})

	t.Run("user cookie for another account is ignored", func(t *testing.T) {
		s, err := m.Current(requestWithCookies([]*http.Cookie{
			{Name: TokenCookie, Value: valid},
			{Name: UserCookie, Value: url.QueryEscape(`{"id":"o1","name":"Bea","role":"owner"}`)},
		}))
		require.NoError(t, err)
		assert.Equal(t, "u9", s.User.ID)
		assert.Empty(t, s.User.Name)
		assert.Equal(t, models.RoleCustomer, s.User.Role)
	})
}

func TestCurrentWithoutSecretChecksExpiry(t *testing.T) {
	token := signToken(t, "whatever", jwt.MapClaims{"sub": "u1", "exp": time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC).Unix()})

	m := NewManager(nil, "", false)
	req := requestWithCookies([]*http.Cookie{{Name: TokenCookie, Value: token}})

	m.now = func() time.Time { return time.Date(2026, 10, 15, 11, 0, 0, 0, time.UTC) }
	s, err := m.Current(req)
	require.NoError(t, err)
	assert.False(t, s.Verified)

	m.now = func() time.Time { return time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC) }
	_, err = m.Current(req)
	assert.Equal(t, ErrExpired, err)
}

func TestEnsureID(t *testing.T) {
	m := NewManager(nil, "", false)
	w := httptest.NewRecorder()

	s := &Session{Token: "t"}
	m.EnsureID(w, s)
	assert.NotEmpty(t, s.ID)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, IDCookie, w.Result().Cookies()[0].Name)

	w2 := httptest.NewRecorder()
	m.EnsureID(w2, s)
	assert.Empty(t, w2.Result().Cookies())
}

func TestLogoutClearsCookies(t *testing.T) {
	m := NewManager(nil, "", false)
	w := httptest.NewRecorder()

	m.Logout(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 3)
	for _, c := range cookies {
		assert.Equal(t, -1, c.MaxAge)
	}
}

func TestParseUserCookie(t *testing.T) {
	raw := `{"id":"u1","name":"Ana","email":"a@example.com","role":"admin"}`

	u, ok := ParseUserCookie(url.QueryEscape(raw))
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, u.Role)

	u, ok = ParseUserCookie(raw)
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)

	_, ok = ParseUserCookie("")
	assert.False(t, ok)
	_, ok = ParseUserCookie("%7Bbroken")
	assert.False(t, ok)
}

func TestContextHelpers(t *testing.T) {
	ctx := Into(context.Background(), &Session{ID: "sid", Token: "tok", User: models.User{ID: "u1"}})

	assert.Equal(t, "tok", TokenFrom(ctx))
	assert.Equal(t, "sid", IDFrom(ctx))
	u, ok := UserFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", u.ID)

	assert.Equal(t, "", TokenFrom(context.Background()))
}

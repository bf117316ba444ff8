package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	TokenCookie = "token"
	UserCookie  = "user"
	IDCookie    = "sid"
)

const defaultLifetime = 24 * time.Hour

var (
	ErrNoSession = errors.New("no session")
	ErrExpired   = errors.New("session expired")
)

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Phone    string      `json:"phone,omitempty"`
	Role     models.Role `json:"role"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Authenticator is the salon API's auth endpoints.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
}

type Session struct {
	ID        string
	Token     string
	User      models.User
	ExpiresAt time.Time
	// Verified is set when the token signature was checked, so User.ID and
	// User.Role come from its claims.
	Verified bool
}

// Manager owns the browser session: the API token, the user profile and a
// server-side id that keys booking drafts. It replaces any ambient auth
// state; handlers receive it explicitly.
type Manager struct {
	auth   Authenticator
	secret []byte
	secure bool
	now    func() time.Time
}

func NewManager(auth Authenticator, jwtSecret string, secureCookies bool) *Manager {
	m := &Manager{
		auth:   auth,
		secure: secureCookies,
		now:    time.Now,
	}
	if jwtSecret != "" {
		m.secret = []byte(jwtSecret)
	}
	return m
}

func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*Session, error) {
	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.start(w, res)
}

func (m *Manager) Register(ctx context.Context, w http.ResponseWriter, in RegisterInput) (*Session, error) {
	res, err := m.auth.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return m.start(w, res)
}

func (m *Manager) start(w http.ResponseWriter, res *AuthResult) (*Session, error) {
	claims, err := m.claims(res.Token)
	if err != nil {
		return nil, err
	}

	expires := m.now().Add(defaultLifetime)
	if exp, _ := claims.GetExpirationTime(); exp != nil {
		expires = exp.Time
	}

	s := &Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		User:      res.User,
		ExpiresAt: expires,
		Verified:  m.secret != nil,
	}

	profile, err := json.Marshal(s.User)
	if err != nil {
		return nil, err
	}

	m.setCookie(w, TokenCookie, s.Token, expires, true)
	m.setCookie(w, UserCookie, url.QueryEscape(string(profile)), expires, false)
	m.setCookie(w, IDCookie, s.ID, expires, true)

	return s, nil
}

func (m *Manager) Logout(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, UserCookie, IDCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name != UserCookie,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// Current rebuilds the session from the request cookies. A missing or
// unreadable user cookie is tolerated. With a JWT secret, identity comes from
// the verified claims and a user cookie naming someone else is ignored.
func (m *Manager) Current(r *http.Request) (*Session, error) {
	tc, err := r.Cookie(TokenCookie)
	if err != nil || tc.Value == "" {
		return nil, ErrNoSession
	}

	claims, err := m.claims(tc.Value)
	if err != nil {
		return nil, err
	}

	s := &Session{Token: tc.Value, Verified: m.secret != nil}
	if exp, _ := claims.GetExpirationTime(); exp != nil {
		s.ExpiresAt = exp.Time
		if m.now().After(exp.Time) {
			return nil, ErrExpired
		}
	}

	sub, _ := claims.GetSubject()
	role, _ := claims["role"].(string)

	if uc, err := r.Cookie(UserCookie); err == nil {
		if u, ok := ParseUserCookie(uc.Value); ok && (!s.Verified || u.ID == sub) {
			s.User = u
		}
	}

	// The user cookie is browser-writable: with a verified token it only
	// supplies display fields.
	if s.Verified || s.User.ID == "" {
		s.User.ID = sub
	}
	if s.Verified || s.User.Role == "" {
		s.User.Role = models.Role(role)
	}

	if ic, err := r.Cookie(IDCookie); err == nil && ic.Value != "" {
		s.ID = ic.Value
	}

	return s, nil
}

// EnsureID assigns a session id when the browser has a token but no id
// cookie yet, e.g. a token issued before this server was deployed.
func (m *Manager) EnsureID(w http.ResponseWriter, s *Session) {
	if s.ID != "" {
		return
	}
	s.ID = uuid.NewString()

	expires := s.ExpiresAt
	if expires.IsZero() {
		expires = m.now().Add(defaultLifetime)
	}
	m.setCookie(w, IDCookie, s.ID, expires, true)
}

// ParseUserCookie decodes the JSON profile cookie, URL-escaped or not.
func ParseUserCookie(raw string) (models.User, bool) {
	var u models.User
	if raw == "" {
		return u, false
	}
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.User{}, false
	}
	return u, true
}

func (m *Manager) claims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}

	if m.secret == nil {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, ErrNoSession
		}
		return claims, nil
	}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrExpired
	}
	if err != nil {
		return nil, ErrNoSession
	}
	return claims, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, name, value string, expires time.Time, httpOnly bool) {
	maxAge := int(expires.Sub(m.now()).Seconds())
	if maxAge <= 0 {
		maxAge = int(defaultLifetime.Seconds())
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

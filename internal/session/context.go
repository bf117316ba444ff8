package session

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ctxKey int

const (
	tokenKey ctxKey = iota
	userKey
	sessionIDKey
)

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFrom(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFrom(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func IDFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// Into carries everything a downstream API call needs from s.
func Into(ctx context.Context, s *Session) context.Context {
	ctx = WithToken(ctx, s.Token)
	ctx = WithUser(ctx, s.User)
	return WithID(ctx, s.ID)
}

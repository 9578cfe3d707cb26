// Package session stores login sessions behind one interface with two
// implementations: an in-process map for single-instance deployments and a
// Redis store when several instances must share logins.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Store interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

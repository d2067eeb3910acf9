// Package identity verifies bearer tokens against the identity provider and
// manages provider-side accounts.
package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoEmail      = errors.New("token has no email claim")
)

// Subject is the verified identity behind a request.
type Subject struct {
	UID   string
	Email string
}

// Verifier checks a raw bearer token.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Subject, error)
}

// AccountDeleter removes the provider-side account for an email.
type AccountDeleter interface {
	DeleteAccountByEmail(ctx context.Context, email string) error
}

// Provider is implemented by every identity backend.
type Provider interface {
	Verifier
	AccountDeleter
}

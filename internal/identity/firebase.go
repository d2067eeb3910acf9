package identity

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// firebaseAuth is the subset of *auth.Client used here.
type firebaseAuth interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

type FirebaseProvider struct {
	client firebaseAuth
}

// NewFirebaseProvider initializes the Admin SDK from a base64-encoded
// service account JSON.
func NewFirebaseProvider(ctx context.Context, serviceKeyBase64 string) (*FirebaseProvider, error) {
	credentials, err := base64.StdEncoding.DecodeString(serviceKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("decode firebase service key: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

// VerifyToken verifies an ID token, rejecting revoked sessions.
func (p *FirebaseProvider) VerifyToken(ctx context.Context, token string) (*Subject, error) {
	decoded, err := p.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return nil, ErrNoEmail
	}
	return &Subject{UID: decoded.UID, Email: email}, nil
}

func (p *FirebaseProvider) DeleteAccountByEmail(ctx context.Context, email string) error {
	user, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup firebase user %s: %w", email, err)
	}
	if err := p.client.DeleteUser(ctx, user.UID); err != nil {
		return fmt.Errorf("delete firebase user %s: %w", user.UID, err)
	}
	return nil
}

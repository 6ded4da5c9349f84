// README: Bearer token verifiers for the gateway (Firebase ID tokens or a shared static token).
package infra

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the caller attached to a request after verification.
type Identity struct {
	Subject string
	Claims  map[string]any
}

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier falls back to application-default credentials when credentialsFile is empty.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	t, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Identity{Subject: t.UID, Claims: t.Claims}, nil
}

// StaticTokenVerifier accepts exactly one shared secret.
type StaticTokenVerifier struct {
	token []byte
}

func NewStaticTokenVerifier(token string) *StaticTokenVerifier {
	return &StaticTokenVerifier{token: []byte(token)}
}

func (v *StaticTokenVerifier) VerifyToken(_ context.Context, token string) (*Identity, error) {
	if len(v.token) == 0 || subtle.ConstantTimeCompare(v.token, []byte(token)) != 1 {
		return nil, ErrInvalidToken
	}
	return &Identity{Subject: "static"}, nil
}

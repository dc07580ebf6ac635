package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// Identity is what the login flow needs from a verified ID token.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
	Role    string
}

// IDTokenVerifier checks an identity-provider ID token.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

// FirebaseVerifier verifies Firebase ID tokens and checks revocation.
type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

// NewFirebaseVerifier initializes Firebase from a credentials JSON blob.
func NewFirebaseVerifier(ctx context.Context, credsJSON, projectID string) (*FirebaseVerifier, error) {
	if credsJSON == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_JSON must be set")
	}
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing Firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting Firebase Auth client: %w", err)
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.Audience != v.projectID {
		return nil, fmt.Errorf("token audience mismatch: got %q", token.Audience)
	}

	id := &Identity{UID: token.UID}
	id.Email, _ = token.Claims["email"].(string)
	id.Name, _ = token.Claims["name"].(string)
	id.Picture, _ = token.Claims["picture"].(string)
	id.Role, _ = token.Claims["role"].(string)
	return id, nil
}

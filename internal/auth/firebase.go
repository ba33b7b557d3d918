package auth

import (
	"context"
	"errors"
	"log"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// User is the identity attached to a verified request.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Verifier wraps the Firebase Admin SDK for token verification and the
// profile operations the login surface needs.
type Verifier struct {
	client *fbauth.Client
}

// NewVerifier initializes the Firebase app from a service account.
func NewVerifier(ctx context.Context, serviceAccountJSON []byte) (*Verifier, error) {
	if len(serviceAccountJSON) == 0 {
		return nil, errors.New("firebase service account not set")
	}
	log.Println("Initializing Firebase...")

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(serviceAccountJSON))
	if err != nil {
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := app.Auth(initCtx)
	if err != nil {
		return nil, err
	}

	log.Println("Firebase initialized successfully")
	return &Verifier{client: client}, nil
}

// Verify returns the user info if the ID token is valid, else error.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*User, error) {
	if idToken == "" {
		return nil, errors.New("empty token provided")
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	token, err := v.client.VerifyIDToken(verifyCtx, idToken)
	if err != nil {
		log.Printf("Token verification failed: %v", err)
		return nil, errors.New("invalid or expired Firebase ID token")
	}
	if token.UID == "" {
		return nil, errors.New("token missing user ID")
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	return &User{UID: token.UID, Email: email, Name: name}, nil
}

// SetDisplayName updates the user's profile display name.
func (v *Verifier) SetDisplayName(ctx context.Context, uid, name string) error {
	_, err := v.client.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).DisplayName(name))
	return err
}

// Revoke invalidates the user's refresh tokens.
func (v *Verifier) Revoke(ctx context.Context, uid string) error {
	return v.client.RevokeRefreshTokens(ctx, uid)
}

// ExtractIDToken strips an optional Bearer prefix from an Authorization
// header value.
func ExtractIDToken(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return authHeader
}

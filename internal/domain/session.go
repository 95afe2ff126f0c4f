package domain

import "context"

// Session is the authenticated identity. A visitor either has exactly one
// Session or none; "none" is never represented by a zero Session.
type Session struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Valid reports whether s carries the minimum identity attributes.
func (s Session) Valid() bool {
	return s.ID != "" && s.Email != ""
}

// AuthIntent tells the identity provider which flow is being run.
type AuthIntent string

const (
	IntentSignIn AuthIntent = "sign_in"
	IntentSignUp AuthIntent = "sign_up"
)

type Credentials struct {
	Intent   AuthIntent
	Email    string
	Password string
	Name     string // sign-up only
}

// AuthStatus is the observable state of a SessionStore.
type AuthStatus string

const (
	StatusUnauthenticated AuthStatus = "unauthenticated"
	StatusAuthenticating  AuthStatus = "authenticating"
	StatusAuthenticated   AuthStatus = "authenticated"
)

// IdentityProvider verifies credentials and returns the resulting Session.
// Any returned error is treated as an authentication failure.
type IdentityProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (Session, error)
}

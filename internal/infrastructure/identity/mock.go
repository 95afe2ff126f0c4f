package identity

import (
	"context"
	"net/url"
	"strings"
	"time"

	"shade-storefront/internal/domain"

	"github.com/google/uuid"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// MockProvider accepts any credentials after a fixed delay. It stands in for
// a real identity service during development and must not be used to guard
// anything.
type MockProvider struct {
	delay time.Duration
}

func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{delay: delay}
}

func (p *MockProvider) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return domain.Session{}, ctx.Err()
		case <-timer.C:
		}
	}
	return MockSession(creds), nil
}

// MockSession derives a session from the credentials alone. The id is a
// name-based UUID of the normalized email, so the same email always maps to
// the same id.
func MockSession(creds domain.Credentials) domain.Session {
	name := creds.Name
	if creds.Intent != domain.IntentSignUp {
		name, _, _ = strings.Cut(creds.Email, "@")
	}

	normalized := strings.ToLower(strings.TrimSpace(creds.Email))
	return domain.Session{
		ID:     uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalized)).String(),
		Email:  creds.Email,
		Name:   name,
		Avatar: avatarBaseURL + url.QueryEscape(creds.Email),
	}
}

package identity

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"shade-storefront/internal/domain"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// HTTPProvider calls a remote identity service:
//
//	POST {baseURL}/login     {"email","password"}
//	POST {baseURL}/register  {"email","password","name"}
//
// Both answer 200/201 with a session object. Any other status is a rejection.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (p *HTTPProvider) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	path := "/login"
	if creds.Intent == domain.IntentSignUp {
		path = "/register"
	}

	payload, err := json.Marshal(authRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Name:     creds.Name,
	})
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "encode identity request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "build identity request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Session{}, errors.Wrapf(err, "identity request %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Session{}, errors.Errorf("identity provider returned status %d%s", resp.StatusCode, rejectionReason(resp.Body))
	}

	var session domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return domain.Session{}, errors.Wrap(err, "decode identity response")
	}
	return session, nil
}

func rejectionReason(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil {
		if eb.Error != "" {
			return ": " + eb.Error
		}
		if eb.Message != "" {
			return ": " + eb.Message
		}
	}
	return ""
}

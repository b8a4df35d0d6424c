// ABOUTME: Gmail-backed mail relay and Google identity helpers
// ABOUTME: Sends HTML mail with the user's bearer token and resolves or revokes that token

package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
)

// DefaultRevokeURL is the OAuth token revocation endpoint
const DefaultRevokeURL = "https://accounts.google.com/o/oauth2/revoke"

const (
	gmailAPI    = "Gmail"
	userinfoAPI = "Google userinfo"
	revokeAPI   = "Google OAuth revoke"
)

// Endpoints overrides the Google API base URLs; empty fields use the defaults
type Endpoints struct {
	Gmail    string
	Userinfo string
	Revoke   string
}

// GoogleMail implements interfaces.MailRelay and interfaces.IdentityService
type GoogleMail struct {
	http      interfaces.HTTPClient
	logger    interfaces.Logger
	endpoints Endpoints
}

// NewGoogleMail creates the relay. httpClient is used for token revocation.
func NewGoogleMail(httpClient interfaces.HTTPClient, logger interfaces.Logger, endpoints Endpoints) *GoogleMail {
	if endpoints.Revoke == "" {
		endpoints.Revoke = DefaultRevokeURL
	}
	return &GoogleMail{http: httpClient, logger: logger, endpoints: endpoints}
}

// Send posts the message through Gmail's users.messages.send. No retries.
func (m *GoogleMail) Send(ctx context.Context, email domain.Email, bearerToken string) error {
	if bearerToken == "" {
		return &coreerrors.AuthError{Message: "no bearer token"}
	}
	if err := domain.ValidateEmailAddress(email.To); err != nil {
		return &coreerrors.ValidationError{Field: "to", Message: err.Error()}
	}

	svc, err := gmail.NewService(ctx, m.options(bearerToken, m.endpoints.Gmail)...)
	if err != nil {
		return fmt.Errorf("failed to create Gmail client: %w", err)
	}

	msg := &gmail.Message{Raw: EncodeRaw(BuildMessage(email))}
	sent, err := svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return classify(gmailAPI, err)
	}

	m.logger.Info("Email sent", map[string]interface{}{
		"message_id": sent.Id,
		"subject":    email.Subject,
	})
	return nil
}

// UserEmail returns the signed-in user's address
func (m *GoogleMail) UserEmail(ctx context.Context, bearerToken string) (string, error) {
	if bearerToken == "" {
		return "", &coreerrors.AuthError{Message: "no bearer token"}
	}

	svc, err := googleoauth.NewService(ctx, m.options(bearerToken, m.endpoints.Userinfo)...)
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", classify(userinfoAPI, err)
	}

	if err := domain.ValidateEmailAddress(info.Email); err != nil {
		return "", &coreerrors.MalformedResponseError{API: userinfoAPI, Reason: "could not retrieve a valid email address"}
	}
	return info.Email, nil
}

// Revoke invalidates the bearer token
func (m *GoogleMail) Revoke(ctx context.Context, bearerToken string) error {
	if bearerToken == "" {
		return &coreerrors.AuthError{Message: "no bearer token"}
	}

	resp, err := m.http.Get(ctx, m.endpoints.Revoke+"?token="+url.QueryEscape(bearerToken), nil)
	if err != nil {
		return &coreerrors.TransportError{API: revokeAPI, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body(), 4096))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &coreerrors.ExternalAPIError{StatusCode: resp.StatusCode(), Message: msg, API: revokeAPI}
	}
	return nil
}

func (m *GoogleMail) options(bearerToken, endpoint string) []option.ClientOption {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: bearerToken,
			TokenType:   "Bearer",
		})),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

// classify maps a Google API client error onto the error taxonomy
func classify(api string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		if gerr.Code == http.StatusUnauthorized {
			return &coreerrors.AuthError{Message: msg}
		}
		return &coreerrors.ExternalAPIError{StatusCode: gerr.Code, Message: msg, API: api}
	}
	return &coreerrors.TransportError{API: api, Err: err}
}

package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
	"tabscribe-api/infrastructure/http/standard"
)

var (
	_ interfaces.MailRelay       = (*GoogleMail)(nil)
	_ interfaces.IdentityService = (*GoogleMail)(nil)
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func newMail(t *testing.T, handler http.HandlerFunc) (*GoogleMail, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := server.URL + "/"
	return NewGoogleMail(standard.NewStandardHTTPClient(5*time.Second), nopLogger{}, Endpoints{
		Gmail:    base,
		Userinfo: base,
		Revoke:   server.URL + "/revoke",
	}), server
}

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage(domain.Email{
		To:      "me@example.com",
		Subject: "[example.com] Title",
		Body:    "line one\nline two",
	})

	assert.Equal(t, "To: me@example.com\r\n"+
		"Subject: [example.com] Title\r\n"+
		"Content-Type: text/html; charset=utf-8\r\n"+
		"\r\n"+
		"line one<br>line two", msg)
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	msg := BuildMessage(domain.Email{To: "a@b.co", Subject: "Café notes", Body: ""})
	assert.Contains(t, msg, "Subject: =?utf-8?q?Caf=C3=A9_notes?=")
}

func TestEncodeRaw_IsBase64URL(t *testing.T) {
	// 16 bytes would need padding in the padded alphabet
	raw := EncodeRaw("subject??>>body!")
	assert.NotContains(t, raw, "+")
	assert.NotContains(t, raw, "/")
	assert.NotContains(t, raw, "=")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Equal(t, "subject??>>body!", string(decoded))
}

func TestGoogleMail_Send(t *testing.T) {
	var gotRaw, gotAuth string
	m, _ := newMail(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gmail/v1/users/me/messages/send", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var body struct {
			Raw string `json:"raw"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotRaw = body.Raw

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg-1"}`))
	})

	err := m.Send(context.Background(), domain.Email{To: "me@example.com", Subject: "Hi", Body: "a\nb"}, "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	decoded, err := base64.RawURLEncoding.DecodeString(gotRaw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "a<br>b")
}

func TestGoogleMail_Send_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, check: func(t *testing.T, err error) {
			assert.True(t, coreerrors.IsAuth(err))
		}},
		{name: "forbidden", status: http.StatusForbidden, check: func(t *testing.T, err error) {
			var apiErr *coreerrors.ExternalAPIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "Insufficient Permission", apiErr.Message)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newMail(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"error":{"code":%d,"message":"Insufficient Permission"}}`, tt.status)
			})

			err := m.Send(context.Background(), domain.Email{To: "me@example.com", Subject: "s"}, "tok")
			tt.check(t, err)
		})
	}
}

func TestGoogleMail_Send_ValidatesBeforeRequest(t *testing.T) {
	calls := 0
	m, _ := newMail(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

	assert.True(t, coreerrors.IsAuth(m.Send(context.Background(), domain.Email{To: "me@example.com"}, "")))
	assert.True(t, coreerrors.IsValidation(m.Send(context.Background(), domain.Email{To: "not-an-email"}, "tok")))
	assert.Zero(t, calls)
}

func TestGoogleMail_UserEmail(t *testing.T) {
	email := "me@example.com"
	m, _ := newMail(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/v2/userinfo", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"email": email})
	})

	got, err := m.UserEmail(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", got)

	email = "bogus"
	_, err = m.UserEmail(context.Background(), "tok")
	assert.True(t, coreerrors.IsMalformedResponse(err))
}

func TestGoogleMail_Revoke(t *testing.T) {
	var gotToken string
	status := http.StatusOK
	m, _ := newMail(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/revoke", r.URL.Path)
		gotToken = r.URL.Query().Get("token")
		w.WriteHeader(status)
	})

	require.NoError(t, m.Revoke(context.Background(), "a+b/c"))
	assert.Equal(t, "a+b/c", gotToken)

	status = http.StatusBadRequest
	err := m.Revoke(context.Background(), "tok")
	assert.True(t, coreerrors.IsExternalAPI(err))

	assert.True(t, coreerrors.IsAuth(m.Revoke(context.Background(), "")))
}

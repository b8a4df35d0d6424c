package mail

import (
	"encoding/base64"
	"mime"
	"strings"

	"tabscribe-api/core/domain"
)

// BuildMessage renders the RFC 2822 message for email. Newlines in the body
// become <br> because the message is sent as HTML.
func BuildMessage(email domain.Email) string {
	lines := []string{
		"To: " + email.To,
		"Subject: " + mime.QEncoding.Encode("utf-8", email.Subject),
		"Content-Type: text/html; charset=utf-8",
		"",
		strings.ReplaceAll(email.Body, "\n", "<br>"),
	}
	return strings.Join(lines, "\r\n")
}

// EncodeRaw encodes a message for the Gmail raw field
func EncodeRaw(message string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(message))
}

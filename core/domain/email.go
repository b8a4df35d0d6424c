// ABOUTME: Email domain model for sending page text to the signed-in user
// ABOUTME: Derives subjects from page content and validates recipient addresses

package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// UntitledSubject is used when no title can be derived from the content
const UntitledSubject = "Untitled Content"

var (
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	markdownTitlePattern = regexp.MustCompile(`(?m)^# (.*)`)
	sourceURLPattern     = regexp.MustCompile(`(?m)^Source URL: (.*)`)
)

// Email is a message addressed to a single recipient
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ValidateEmailAddress checks the loose shape local@domain.tld
func ValidateEmailAddress(address string) error {
	if !emailPattern.MatchString(address) {
		return ErrInvalidEmail
	}
	return nil
}

// DeriveSubject builds the subject line for emailing page text. The markdown
// view uses the first level-one heading, the raw view uses the source URL
// line. The tab hostname is prepended in brackets when tabURL parses.
func DeriveSubject(text string, markdownView bool, tabURL string) string {
	pattern := sourceURLPattern
	if markdownView {
		pattern = markdownTitlePattern
	}

	title := UntitledSubject
	if m := pattern.FindStringSubmatch(text); m != nil {
		title = strings.TrimRight(m[1], "\r")
	}

	if tabURL == "" {
		return title
	}
	u, err := url.Parse(tabURL)
	if err != nil || u.Hostname() == "" {
		return title
	}
	return "[" + u.Hostname() + "] " + title
}

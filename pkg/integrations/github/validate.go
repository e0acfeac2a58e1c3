package github

import (
	"regexp"
	"strings"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
)

// GitHub logins: 1-39 alphanumeric or single hyphens, not starting or
// ending with a hyphen.
var validLogin = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9]){0,38}$`)

// ValidateLogin validates a GitHub username.
func ValidateLogin(login string) error {
	if login == "" {
		return errors.New(errors.ErrCodeInvalidInput, "GitHub user is required")
	}
	if len(login) > 39 || !validLogin.MatchString(login) {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid GitHub user %q: must be 1-39 alphanumeric characters or single hyphens, cannot start or end with a hyphen", login)
	}
	return nil
}

// NormalizeLogin trims whitespace and a leading "@".
func NormalizeLogin(login string) string {
	return strings.TrimPrefix(strings.TrimSpace(login), "@")
}

package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxPingMessageLength is measured in runes, not bytes
	MaxPingMessageLength = 280

	DefaultListLimit = 20
	MaxListLimit     = 100
)

// NormalizePingMessage trims surrounding whitespace and validates the result.
// An empty message is allowed: a bare ping is still a check-in.
func NormalizePingMessage(message string) (string, error) {
	message = strings.TrimSpace(strings.ReplaceAll(message, "\r\n", "\n"))

	if !utf8.ValidString(message) {
		return "", errors.New("message must be valid UTF-8")
	}

	if utf8.RuneCountInString(message) > MaxPingMessageLength {
		return "", errors.New("message must be 280 characters or less")
	}

	for _, r := range message {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return "", errors.New("message cannot contain control characters")
		}
	}

	return message, nil
}

// NormalizeLimit maps a requested page size onto 1..MaxListLimit; zero means the default
func NormalizeLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, errors.New("limit cannot be negative")
	}
	if limit == 0 {
		return DefaultListLimit, nil
	}
	if limit > MaxListLimit {
		return MaxListLimit, nil
	}
	return limit, nil
}

// ValidateID checks that an identifier is a UUID as generated by the db package
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("id must be a valid UUID")
	}
	return nil
}

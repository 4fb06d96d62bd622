// Package phone normalizes the mobile numbers admins type into judge forms.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ten digits, first one 6-9
	mobileRegex = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	// Regex to remove non-digit characters
	digitsOnlyRegex = regexp.MustCompile(`[^0-9]`)
)

// ErrInvalid is returned for numbers that are not a ten-digit mobile number
var ErrInvalid = errors.New("invalid mobile number format")

// Normalize strips separators and country or trunk prefixes and returns the
// bare ten-digit number
func Normalize(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", errors.New("phone number cannot be empty")
	}

	// Remove all non-digit characters (hyphens, spaces, parentheses, etc.)
	normalized := digitsOnlyRegex.ReplaceAllString(phone, "")

	switch {
	case len(normalized) == 12 && strings.HasPrefix(normalized, "91"):
		normalized = normalized[2:] // +91XXXXXXXXXX
	case len(normalized) == 11 && strings.HasPrefix(normalized, "0"):
		normalized = normalized[1:]
	}

	if !mobileRegex.MatchString(normalized) {
		return "", ErrInvalid
	}
	return normalized, nil
}

// FormatForDisplay renders a normalized number as "98765 43210"
func FormatForDisplay(phone string) string {
	if len(phone) != 10 {
		return phone
	}
	return phone[:5] + " " + phone[5:]
}

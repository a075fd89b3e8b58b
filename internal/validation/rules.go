// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/custody/internal/errors"
)

var (
	// sha256HexRegex matches a hex-encoded SHA-256 digest in either case.
	sha256HexRegex = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// SHA256Hex validates that a string is a 64 character hex-encoded SHA-256 digest,
// ignoring surrounding whitespace. Empty strings pass so that Required (or its absence)
// decides optionality.
var SHA256Hex = validation.NewStringRuleWithError(
	func(s string) bool {
		return IsSHA256Hex(s)
	},
	validation.NewError("validation_sha256_hex", "must be a hex-encoded SHA-256 digest"),
)

// IsSHA256Hex reports whether s, once trimmed, is a hex-encoded SHA-256 digest.
func IsSHA256Hex(s string) bool {
	return sha256HexRegex.MatchString(strings.TrimSpace(s))
}

// NormalizeHash trims and lowercases a hex digest so comparisons are case-insensitive.
func NormalizeHash(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Package validation holds the pure field validators shared by signup, admin
// account creation and rating submission. Each function returns nil when the
// value is acceptable and an error carrying the human-readable reason
// otherwise; none of them panic.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	NameMinLen     = 20
	NameMaxLen     = 60
	PasswordMinLen = 8
	PasswordMaxLen = 16
	AddressMaxLen  = 400
	RatingMin      = 1
	RatingMax      = 5
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// Name checks the 20-60 character bound. The bound is deliberately strict and
// is product behavior, not a bug.
func Name(name string) error {
	if len(name) < NameMinLen || len(name) > NameMaxLen {
		return fmt.Errorf("name must be between %d and %d characters", NameMinLen, NameMaxLen)
	}
	return nil
}

// Email checks the non-whitespace@non-whitespace.non-whitespace shape.
func Email(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("please enter a valid email address")
	}
	return nil
}

// Password requires 8-16 characters, at least one ASCII uppercase letter and
// at least one special character.
func Password(password string) error {
	if len(password) < PasswordMinLen || len(password) > PasswordMaxLen {
		return fmt.Errorf("password must be between %d and %d characters", PasswordMinLen, PasswordMaxLen)
	}
	hasUpper := false
	for _, r := range password {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(password, passwordSpecialChars) {
		return errors.New("password must contain at least one special character")
	}
	return nil
}

// Address requires a non-empty value of at most 400 characters. The storage
// schema marks address as NOT NULL, so empty is rejected here as well rather
// than letting the two layers disagree.
func Address(address string) error {
	if address == "" || len(address) > AddressMaxLen {
		return fmt.Errorf("address is required and must not exceed %d characters", AddressMaxLen)
	}
	return nil
}

// Rating parses v into an integer in [1,5]. Numeric strings such as "3" are
// accepted, matching the loosely-typed payloads clients send.
func Rating(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < RatingMin || n > RatingMax {
		return 0, fmt.Errorf("rating must be between %d and %d", RatingMin, RatingMax)
	}
	return n, nil
}

// RatingValue checks an already-parsed integer rating.
func RatingValue(n int) error {
	if n < RatingMin || n > RatingMax {
		return fmt.Errorf("rating must be between %d and %d", RatingMin, RatingMax)
	}
	return nil
}

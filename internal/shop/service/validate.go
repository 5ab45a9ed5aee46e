package service

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailSyntax     = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// passwordStrong requires at least 8 characters, no whitespace, and at
// least one character that is neither a letter nor a digit.
func passwordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasSymbol := false
	for _, r := range password {
		if unicode.IsSpace(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			hasSymbol = true
		}
	}
	return hasSymbol
}

// signupRule pairs a predicate with the message returned when it fails.
// Rules are evaluated in order and the first failure wins, so the
// precedence clients rely on is reproducible without the HTTP layer.
type signupRule struct {
	ok      func(username, email, password string) bool
	message string
}

var signupRules = []signupRule{
	{
		ok:      func(_, _, password string) bool { return len(password) >= 8 },
		message: "password too short",
	},
	{
		ok:      func(username, _, _ string) bool { return usernameCharset.MatchString(username) },
		message: "Username must not contain special characters",
	},
	{
		ok:      func(_, _, password string) bool { return passwordStrong(password) },
		message: "Password must not contain spaces and have at least 8 characters including one special character",
	},
	{
		ok:      func(username, _, _ string) bool { return len(username) >= 5 },
		message: "Username must be at least 5 characters",
	},
	{
		ok:      func(_, email, _ string) bool { return emailSyntax.MatchString(email) },
		message: "Enter a valid email",
	},
	{
		ok:      func(username, _, _ string) bool { return username != "" },
		message: "Username cannot be empty",
	},
	{
		ok:      func(_, _, password string) bool { return password != "" },
		message: "Password cannot be empty",
	},
	{
		ok:      func(_, email, _ string) bool { return email != "" },
		message: "Email cannot be empty",
	},
}

// ValidateSignup runs the signup rules in order and returns the first
// failure as a ValidationError.
func ValidateSignup(username, email, password string) error {
	for _, rule := range signupRules {
		if !rule.ok(username, email, password) {
			return &ValidationError{Message: rule.message}
		}
	}
	return nil
}

// ValidatePassword checks a new password against the strength rules
// only, for password changes where username and email are untouched.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{Message: "password too short"}
	}
	if !passwordStrong(password) {
		return &ValidationError{Message: "Password must not contain spaces and have at least 8 characters including one special character"}
	}
	return nil
}

// NormalizeEmail lowercases an address the same way storage does so
// lookups and inserts agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

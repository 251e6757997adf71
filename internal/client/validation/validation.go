// Package validation holds the local, pre-network checks applied to
// credentials and profile answers. Nothing here talks to the server.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrAgeBelowMinimum  = errors.New("age is below the allowed minimum")
	ErrEmptyName        = errors.New("full name is required")
	ErrInvalidBirthDate = errors.New("invalid date of birth")
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// DateLayout is the wire format of dates of birth.
const DateLayout = "2006-01-02"

// birthDateLayouts are tried in order when parsing user input.
var birthDateLayouts = []string{DateLayout, "01/02/2006"}

const (
	DefaultPasswordMinLength = 6
	DefaultMinAge            = 14
)

// Rules carries the configurable limits.
type Rules struct {
	PasswordMinLength int
	MinAge            int
}

// DefaultRules returns the limits used when nothing is configured.
func DefaultRules() Rules {
	return Rules{PasswordMinLength: DefaultPasswordMinLength, MinAge: DefaultMinAge}
}

// Credentials rejects an email or password that is empty after trimming.
func Credentials(email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrEmptyCredentials
	}
	return nil
}

func Email(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func (r Rules) Password(password string) error {
	if len([]rune(password)) < r.PasswordMinLength {
		return fmt.Errorf("%w: at least %d characters", ErrPasswordTooShort, r.PasswordMinLength)
	}
	return nil
}

func PasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return ErrPasswordMismatch
	}
	return nil
}

// Phone accepts an empty number; the field is optional.
func Phone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if !phoneRe.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

func (r Rules) Age(age int) error {
	if age < r.MinAge {
		return fmt.Errorf("%w: must be at least %d", ErrAgeBelowMinimum, r.MinAge)
	}
	return nil
}

func FullName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ParseBirthDate accepts YYYY-MM-DD or MM/DD/YYYY.
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidBirthDate
}

// AgeAt returns the number of full years between birth and now.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

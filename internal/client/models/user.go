// Package models defines the client-side session data: the authenticated
// user, the onboarding scratch buffer and the persisted session snapshot.
package models

import (
	"errors"
	"slices"
	"strings"
)

// Gender is the user's self-reported gender.
type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderNotSpecified Gender = "not_specified"
)

var ErrInvalidGender = errors.New("gender must be male, female or not_specified")

// Valid reports whether g is one of the known values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNotSpecified:
		return true
	}
	return false
}

// ParseGender accepts the local values plus the remote "empty" marker.
// Empty input and "empty" both normalize to GenderNotSpecified.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "not_specified", "empty", "":
		return GenderNotSpecified, nil
	}
	return "", ErrInvalidGender
}

// User is an authenticated account as seen by the client.
type User struct {
	ID                  string   `json:"id"`
	FullName            string   `json:"fullName"`
	Email               string   `json:"email"`
	Username            string   `json:"username,omitempty"`
	PhoneNumber         string   `json:"phoneNumber,omitempty"`
	DateOfBirth         string   `json:"dateOfBirth,omitempty"`
	Country             string   `json:"country,omitempty"`
	Gender              Gender   `json:"gender"`
	Age                 *int     `json:"age,omitempty"`
	FavoriteGenres      []string `json:"favoriteGenres"`
	Avatar              string   `json:"avatar,omitempty"`
	OnboardingCompleted bool     `json:"onboardingCompleted"`
	EmailVerified       bool     `json:"emailVerified"`
}

// Clone returns a deep copy of u. A nil receiver yields nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	if u.FavoriteGenres != nil {
		c.FavoriteGenres = slices.Clone(u.FavoriteGenres)
	}
	return &c
}

// UserPatch is a partial update of a User. Nil fields are left untouched.
type UserPatch struct {
	FullName            *string
	Username            *string
	PhoneNumber         *string
	DateOfBirth         *string
	Country             *string
	Gender              *Gender
	Age                 *int
	FavoriteGenres      []string
	Avatar              *string
	OnboardingCompleted *bool
	EmailVerified       *bool
}

// Apply shallow-merges p into a copy of u and returns it.
func (p UserPatch) Apply(u *User) *User {
	out := u.Clone()
	if out == nil {
		return nil
	}
	if p.FullName != nil {
		out.FullName = *p.FullName
	}
	if p.Username != nil {
		out.Username = *p.Username
	}
	if p.PhoneNumber != nil {
		out.PhoneNumber = *p.PhoneNumber
	}
	if p.DateOfBirth != nil {
		out.DateOfBirth = *p.DateOfBirth
	}
	if p.Country != nil {
		out.Country = *p.Country
	}
	if p.Gender != nil {
		out.Gender = *p.Gender
	}
	if p.Age != nil {
		age := *p.Age
		out.Age = &age
	}
	if p.FavoriteGenres != nil {
		out.FavoriteGenres = UniqueGenres(p.FavoriteGenres)
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.OnboardingCompleted != nil {
		out.OnboardingCompleted = *p.OnboardingCompleted
	}
	if p.EmailVerified != nil {
		out.EmailVerified = *p.EmailVerified
	}
	return out
}

// UniqueGenres drops duplicate labels keeping the first occurrence.
// A nil input stays nil so "not answered" survives.
func UniqueGenres(labels []string) []string {
	if labels == nil {
		return nil
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

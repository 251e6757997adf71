package models

import "slices"

// TempOnboardingData collects onboarding answers before an account exists.
// It is working state only and is never written to durable storage.
//
// Nil fields are "not answered yet". An empty, non-nil FavoriteGenres means
// the user skipped the genres screen.
type TempOnboardingData struct {
	Gender         *Gender  `json:"gender,omitempty"`
	Age            *int     `json:"age,omitempty"`
	AgeRange       string   `json:"ageRange,omitempty"`
	FavoriteGenres []string `json:"favoriteGenres,omitempty"`
}

// Clone returns a deep copy of d.
func (d *TempOnboardingData) Clone() *TempOnboardingData {
	if d == nil {
		return nil
	}
	c := *d
	if d.Gender != nil {
		g := *d.Gender
		c.Gender = &g
	}
	if d.Age != nil {
		a := *d.Age
		c.Age = &a
	}
	if d.FavoriteGenres != nil {
		c.FavoriteGenres = slices.Clone(d.FavoriteGenres)
	}
	return &c
}

// Merge returns a copy of d with every field set in partial written over it.
// Merging into a nil record starts from an empty one.
func (d *TempOnboardingData) Merge(partial TempOnboardingData) *TempOnboardingData {
	out := d.Clone()
	if out == nil {
		out = &TempOnboardingData{}
	}
	if partial.Gender != nil {
		g := *partial.Gender
		out.Gender = &g
	}
	if partial.Age != nil {
		a := *partial.Age
		out.Age = &a
	}
	if partial.AgeRange != "" {
		out.AgeRange = partial.AgeRange
	}
	if partial.FavoriteGenres != nil {
		out.FavoriteGenres = UniqueGenres(partial.FavoriteGenres)
	}
	return out
}

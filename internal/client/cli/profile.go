package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/validation"
)

// WhoAmI prints the signed-in profile.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.store.State()
	u := st.User
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn("Name:      ", u.FullName)
	printlnFn("Email:     ", u.Email)
	if u.Username != "" {
		printlnFn("Username:  ", u.Username)
	}
	if u.DateOfBirth != "" {
		printlnFn("Born:      ", u.DateOfBirth)
	}
	if u.Age != nil {
		printlnFn("Age:       ", *u.Age)
	}
	printlnFn("Gender:    ", u.Gender)
	if u.PhoneNumber != "" {
		printlnFn("Phone:     ", u.PhoneNumber)
	}
	if u.Country != "" {
		printlnFn("Country:   ", u.Country)
	}
	if u.Avatar != "" {
		printlnFn("Avatar:    ", u.Avatar)
	}
	genresLine := "none"
	if len(u.FavoriteGenres) > 0 {
		genresLine = strings.Join(u.FavoriteGenres, ", ")
	}
	printlnFn("Genres:    ", genresLine)
	printlnFn("Onboarded: ", st.OnboardingCompleted)
	if exp, ok := a.store.TokenExpiry(); ok {
		printlnFn("Token exp: ", exp.UTC().Format("2006-01-02 15:04 MST"))
	}
	if a.snapshots != nil {
		at, ok, err := a.snapshots.SavedAt(ctx)
		if err != nil {
			a.logger.Warn(ctx, "reading snapshot time failed", "error", err)
		} else if ok {
			printlnFn("Saved:     ", at.UTC().Format("2006-01-02 15:04 MST"))
		}
	}
	return nil
}

const editUsage = "Usage: edit <name|phone|country|avatar> <value>"

// Edit changes one locally editable profile field.
func (a *App) Edit(_ context.Context, args []string) error {
	if len(args) < 1 {
		printlnFn(editUsage)
		return nil
	}
	field, value := args[0], trimmedJoin(args[1:])

	var patch models.UserPatch
	switch field {
	case "name":
		if err := validation.FullName(value); err != nil {
			printlnFn("Error:", err)
			return nil
		}
		patch.FullName = &value
	case "phone":
		if err := validation.Phone(value); err != nil {
			printlnFn("Error:", err)
			return nil
		}
		patch.PhoneNumber = &value
	case "country":
		patch.Country = &value
	case "avatar":
		patch.Avatar = &value
	default:
		printlnFn(editUsage)
		return nil
	}

	a.store.UpdateUser(patch)
	printlnFn(fmt.Sprintf("Updated %s", field))
	return nil
}

// trimmedJoin rebuilds a value that may contain spaces.
func trimmedJoin(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

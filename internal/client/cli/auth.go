package cli

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/client/validation"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getList       = GetList
)

// Login prompts for credentials and signs in. Failures are reported from
// the store's error message; only input errors are returned.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.store.Login(ctx, email, string(password)) {
		a.reportError()
		return nil
	}
	printlnFn("Welcome back,", a.store.State().User.FullName)
	return nil
}

// Register prompts for the account details and creates the account.
// Answers from a previous onboarding run are sent along.
func (a *App) Register(ctx context.Context) error {
	if !a.store.State().OnboardingCompleted {
		printlnFn("Tip: run 'onboarding' first to pick your favorite genres")
	}

	var in session.RegistrationInput
	var err error

	if in.FullName, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirmation, err := getPassword(a.reader, "Repeat password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if err := validation.PasswordConfirmation(string(password), string(confirmation)); err != nil {
		printlnFn("Error:", err)
		return nil
	}
	in.Password = string(password)

	if in.DateOfBirth, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD or MM/DD/YYYY, empty to skip)", a.out); err != nil {
		return err
	}
	if in.PhoneNumber, err = getSimpleText(a.reader, "Phone number (empty to skip)", a.out); err != nil {
		return err
	}
	if in.Country, err = getSimpleText(a.reader, "Country (empty to skip)", a.out); err != nil {
		return err
	}

	if !a.store.Register(ctx, in) {
		a.reportError()
		return nil
	}
	printlnFn("Account created. Welcome,", a.store.State().User.FullName)
	return nil
}

func (a *App) Logout(context.Context) error {
	a.store.Logout()
	printlnFn("Logged out")
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if !a.store.RefreshUser(ctx) {
		a.reportError()
		return nil
	}
	printlnFn("Profile refreshed")
	return nil
}

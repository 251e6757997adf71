package session

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/genres"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/validation"
)

// Messages shown to the user for failures that carry no server text.
const (
	MsgUnavailable = "server unavailable, check your connection"
	MsgMalformed   = "unexpected server response"
	MsgUnknown     = "something went wrong, try again"
)

// RegistrationInput is what the registration screen collects. Nil
// Gender, Age and FavoriteGenres are filled from the onboarding buffer.
type RegistrationInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	DateOfBirth    string
	PhoneNumber    string
	Country        string
	AvatarURL      string
	Gender         *models.Gender
	Age            *int
	FavoriteGenres []string
}

// withTemp fills the unanswered fields of in from the onboarding buffer.
func (in RegistrationInput) withTemp(d *models.TempOnboardingData) RegistrationInput {
	if d == nil {
		return in
	}
	if in.Gender == nil && d.Gender != nil {
		g := *d.Gender
		in.Gender = &g
	}
	if in.Age == nil && d.Age != nil {
		a := *d.Age
		in.Age = &a
	}
	if in.FavoriteGenres == nil && d.FavoriteGenres != nil {
		in.FavoriteGenres = append([]string(nil), d.FavoriteGenres...)
	}
	return in
}

// validate runs every local check before the network is touched. The
// minimum age applies to the explicit age or, failing that, to the age
// derived from the date of birth at now.
func (in RegistrationInput) validate(rules validation.Rules, now time.Time) error {
	if err := validation.Credentials(in.Email, in.Password); err != nil {
		return err
	}
	if err := validation.FullName(in.FullName); err != nil {
		return err
	}
	if err := validation.Email(in.Email); err != nil {
		return err
	}
	if err := rules.Password(in.Password); err != nil {
		return err
	}
	if err := validation.Phone(in.PhoneNumber); err != nil {
		return err
	}
	var age *int
	if strings.TrimSpace(in.DateOfBirth) != "" {
		birth, err := validation.ParseBirthDate(in.DateOfBirth)
		if err != nil {
			return err
		}
		if birth.After(now) {
			return validation.ErrInvalidBirthDate
		}
		derived := validation.AgeAt(birth, now)
		age = &derived
	}
	if in.Gender != nil && !in.Gender.Valid() {
		return models.ErrInvalidGender
	}
	if in.Age != nil {
		age = in.Age
	}
	if age != nil {
		if err := rules.Age(*age); err != nil {
			return err
		}
	}
	return nil
}

// buildRegisterRequest maps a validated input to the wire payload. The
// returned slice lists genre labels that have no preference key.
func buildRegisterRequest(in RegistrationInput, onboarded bool, now time.Time) (client.RegisterRequest, []string) {
	email := strings.TrimSpace(in.Email)

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	var (
		dob string
		age int
	)
	if strings.TrimSpace(in.DateOfBirth) != "" {
		if t, err := validation.ParseBirthDate(in.DateOfBirth); err == nil {
			dob = t.Format(validation.DateLayout)
			age = validation.AgeAt(t, now)
		}
	}
	if in.Age != nil {
		age = *in.Age
	}

	prefs, unknown := genres.FromLabels(in.FavoriteGenres)

	return client.RegisterRequest{
		Name:                 strings.TrimSpace(in.FullName),
		Email:                email,
		UserApp:              username,
		Password:             in.Password,
		DateBirth:            dob,
		AvatarURL:            strings.TrimSpace(in.AvatarURL),
		Age:                  age,
		OnboardCompleted:     onboarded,
		EmailVerified:        false,
		Genre:                wireGender(in.Gender),
		UserStylePreferences: prefs,
	}, unknown
}

func wireGender(g *models.Gender) string {
	if g == nil {
		return client.WireGenderEmpty
	}
	switch *g {
	case models.GenderMale:
		return client.WireGenderMale
	case models.GenderFemale:
		return client.WireGenderFemale
	}
	return client.WireGenderEmpty
}

// userFromResponse converts the server's user into the local shape.
func userFromResponse(r client.UserResponse) *models.User {
	gender, err := models.ParseGender(r.Genres.Genre)
	if err != nil {
		gender = models.GenderNotSpecified
	}

	u := &models.User{
		ID:                  r.ID,
		FullName:            r.Name,
		Email:               r.Email,
		Username:            r.UserApp,
		DateOfBirth:         r.DateBirth,
		Gender:              gender,
		FavoriteGenres:      r.StylePreferences.ToLabels(),
		Avatar:              r.AvatarURL,
		OnboardingCompleted: r.OnboardCompleted,
		EmailVerified:       r.EmailVerified,
	}
	if r.Age > 0 {
		age := r.Age
		u.Age = &age
	}
	return u
}

// errorMessage turns a failure into the text stored in State.Error.
func errorMessage(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return MsgUnavailable
	case errors.Is(err, client.ErrMalformedResponse):
		return MsgMalformed
	case isValidationError(err):
		return err.Error()
	}
	return MsgUnknown
}

var validationErrors = []error{
	validation.ErrEmptyCredentials,
	validation.ErrInvalidEmail,
	validation.ErrPasswordTooShort,
	validation.ErrPasswordMismatch,
	validation.ErrInvalidPhone,
	validation.ErrAgeBelowMinimum,
	validation.ErrEmptyName,
	validation.ErrInvalidBirthDate,
	models.ErrInvalidGender,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

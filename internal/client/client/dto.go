package client

import "github.com/dmitrijs2005/bookshelf/internal/client/genres"

// Wire gender values. The server has no "not specified", it uses "empty".
const (
	WireGenderMale   = "male"
	WireGenderFemale = "female"
	WireGenderEmpty  = "empty"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name                 string                  `json:"name"`
	Email                string                  `json:"email"`
	UserApp              string                  `json:"userapp"`
	Password             string                  `json:"password"`
	DateBirth            string                  `json:"dateBirth"`
	AvatarURL            string                  `json:"avatarUrl"`
	Age                  int                     `json:"age"`
	OnboardCompleted     bool                    `json:"onboardCompleted"`
	EmailVerified        bool                    `json:"emailVerified"`
	Genre                string                  `json:"genre"`
	UserStylePreferences genres.StylePreferences `json:"userStylePreferences"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GenderResponse is the server's nested gender record.
type GenderResponse struct {
	ID    int    `json:"id"`
	Genre string `json:"genre"`
}

// StylePreferencesResponse is the stored preference row.
type StylePreferencesResponse struct {
	ID int `json:"id"`
	genres.StylePreferences
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// UserResponse is the server's user representation.
type UserResponse struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	UserApp          string                   `json:"userapp"`
	Email            string                   `json:"email"`
	DateBirth        string                   `json:"dateBirth"`
	Age              int                      `json:"age"`
	AvatarURL        string                   `json:"avatarUrl"`
	OnboardCompleted bool                     `json:"onboardCompleted"`
	EmailVerified    bool                     `json:"emailVerified"`
	CreatedAt        string                   `json:"createdAt"`
	UpdatedAt        string                   `json:"updatedAt"`
	Genres           GenderResponse           `json:"genres"`
	StylePreferences StylePreferencesResponse `json:"stylePreferences"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	User  UserResponse `json:"userRegister"`
	Token string       `json:"token"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

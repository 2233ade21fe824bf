package models

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultAvatarURL is the initials avatar used when the backend sends no image.
const DefaultAvatarURL = "https://api.dicebear.com/5.x/initials/svg?seed=%s"

// APIResponse is the envelope every auth endpoint answers with.
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Token   string   `json:"token,omitempty"`
	User    *APIUser `json:"user,omitempty"`
}

// APIUser is the user profile as returned by the backend. Depending on the
// deployment the identifier arrives as "_id" or "id".
type APIUser struct {
	MongoID   string `json:"_id,omitempty"`
	ID        string `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Identifier returns the backend user id, preferring "_id".
func (u *APIUser) Identifier() string {
	if u == nil {
		return ""
	}
	if u.MongoID != "" {
		return u.MongoID
	}
	return u.ID
}

// DisplayName joins first and last name, falling back to Name.
func (u *APIUser) DisplayName() string {
	if u == nil {
		return ""
	}
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	return strings.TrimSpace(u.Name)
}

// AvatarURL returns Image or the generated initials avatar.
func (u *APIUser) AvatarURL() string {
	if u != nil && u.Image != "" {
		return u.Image
	}
	seed := ""
	if u != nil {
		seed = u.FirstName
		if seed == "" {
			seed = u.Name
		}
	}
	return fmt.Sprintf(DefaultAvatarURL, url.QueryEscape(seed))
}

// SendOTPRequest is the body of POST /auth/send-otp.
type SendOTPRequest struct {
	Email            string `json:"email"`
	CheckUserPresent bool   `json:"checkUserPresent"`
}

// SignupRequest is the body of POST /auth/signup; it creates the account and
// confirms the e-mailed code in one call.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordTokenRequest is the body of POST /auth/reset-password-token.
type ResetPasswordTokenRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Token           string `json:"token"`
}

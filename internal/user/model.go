package user

import (
	"storefront-client/internal/auth"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        auth.SubjectID `json:"id" validate:"required"`
	Email     string         `json:"email" validate:"required"`
	FirstName string         `json:"first_name,omitempty"`
	LastName  string         `json:"last_name,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Role      Role           `json:"role,omitempty"`
	AvatarURL *string        `json:"avatar_url,omitempty"`
}

func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// AuthResponse is the login/register/google payload. Token names vary
// between endpoints.
type AuthResponse struct {
	Access       string `json:"access"`
	Refresh      string `json:"refresh"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

func (r AuthResponse) credentials() auth.Credentials {
	c := auth.Credentials{AccessToken: r.Access, RefreshToken: r.Refresh}
	if c.AccessToken == "" {
		c.AccessToken = r.AccessToken
	}
	if c.RefreshToken == "" {
		c.RefreshToken = r.RefreshToken
	}
	return c
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type GoogleLoginInput struct {
	Credential string `json:"credential" validate:"required"`
}

type UpdateProfileInput struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

func (in UpdateProfileInput) empty() bool {
	return in.FirstName == nil && in.LastName == nil && in.Phone == nil && in.AvatarURL == nil
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	UID         string `json:"uid" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

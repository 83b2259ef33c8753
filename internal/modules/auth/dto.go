package auth

import "servicehub/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`

	// AsProvider requests the service_provider role. The provider
	// profile starts unverified and stays out of the directory until
	// an admin approves it.
	AsProvider   bool   `json:"as_provider"`
	BusinessName string `json:"business_name"`
	Location     string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	Tokens    TokenPair    `json:"tokens"`
	User      *domain.User `json:"user"`
	Roles     []domain.Role `json:"roles"`
	Dashboard string       `json:"dashboard"`
}

type MeResponse struct {
	User      *domain.User    `json:"user"`
	Profile   *domain.Profile `json:"profile,omitempty"`
	Roles     []domain.Role   `json:"roles"`
	Primary   domain.Role     `json:"primary_role"`
	Dashboard string          `json:"dashboard"`
}

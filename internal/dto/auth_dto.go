package dto

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// OAuthCallbackRequest carries the identity asserted by the external
// provider after code exchange.
type OAuthCallbackRequest struct {
	Code string `json:"code" validate:"required"`
}

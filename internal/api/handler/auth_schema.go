package handler

import "github.com/panelkit/admin-console/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// From is the path the user was sent away from, if any.
	From string `json:"from"`
}

type registerRequest struct {
	Name            string `json:"name"             validate:"required,min=2,max=80"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"omitempty,e164"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// profileRequest patches the signed-in identity. Empty fields keep their value.
type profileRequest struct {
	Name      string `json:"name"   validate:"omitempty,min=2,max=80"`
	Phone     string `json:"phone"  validate:"omitempty,e164"`
	AvatarURL string `json:"avatar" validate:"omitempty,url"`
}

// --- Response types ---

type authResponse struct {
	Token      string           `json:"token"`
	User       *domain.Identity `json:"user"`
	RedirectTo string           `json:"redirect_to"`
}

type sessionResponse struct {
	Status  domain.SessionStatus `json:"status"`
	User    *domain.Identity     `json:"user"`
	Error   string               `json:"error,omitempty"`
	Loading bool                 `json:"loading"`
}

type menuResponse struct {
	Role   domain.Role       `json:"role,omitempty"`
	Items  []domain.MenuItem `json:"items"`
	Routes []string          `json:"routes"`
}

type loginViewResponse struct {
	View string `json:"view"`
	From string `json:"from,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		Status:  s.Status,
		User:    s.Identity,
		Error:   s.LastError,
		Loading: s.IsLoading(),
	}
}

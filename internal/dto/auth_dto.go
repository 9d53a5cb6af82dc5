package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest accepts email or nombre as identifier. Password is a pointer
// because an empty (but present) password triggers the first-login flow for
// users without a stored credential.
type LoginRequest struct {
	Identificador string  `json:"identificador" validate:"required,min=1"`
	Password      *string `json:"password"      validate:"required"`
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
	Confirm  string `json:"confirm"  validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}

// SetupPasswordResponse is returned with 403 when a credential-less user
// logs in with an empty password: the client must call /set-password with
// the short-lived SetupToken.
type SetupPasswordResponse struct {
	RequirePassword bool            `json:"require_password"`
	SetupToken      string          `json:"setup_token"`
	User            UsuarioResponse `json:"user"`
}

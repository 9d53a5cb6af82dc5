package service

import (
	"context"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/config"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// PurposeSetPassword marks the short-lived token issued on first login,
// valid only for the set-password endpoint.
const PurposeSetPassword = "set_password"

type AuthService interface {
	// Login authenticates by email or nombre. When the account has no
	// password yet it returns a setup response instead of a session.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, *dto.SetupPasswordResponse, error)
	// SetPassword completes the first-login flow for the holder of a
	// setup token and returns a normal session.
	SetPassword(ctx context.Context, uid int, req dto.SetPasswordRequest) (*dto.LoginResponse, error)
}

type authService struct {
	usuarios repository.UsuarioRepository
	cfg      *config.Config
}

func NewAuthService(usuarios repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{usuarios: usuarios, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, *dto.SetupPasswordResponse, error) {
	user, err := s.usuarios.FindByIdentificador(ctx, req.Identificador)
	if err != nil {
		return nil, nil, apierror.Unauthorized("credenciales inválidas")
	}

	resp := dto.UsuarioResponse{ID: user.ID, Nombre: user.Nombre, Email: user.Email, Rol: user.Rol}

	// Accounts created without a password get a setup token on first
	// contact, never a session.
	if user.PasswordHash == "" {
		setupToken, err := s.generateToken(user.ID, user.Rol, user.Nombre, PurposeSetPassword, 15*time.Minute)
		if err != nil {
			return nil, nil, err
		}
		return nil, &dto.SetupPasswordResponse{
			RequirePassword: true,
			SetupToken:      setupToken,
			User:            resp,
		}, nil
	}

	if req.Password == nil ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*req.Password)) != nil {
		return nil, nil, apierror.Unauthorized("credenciales inválidas")
	}

	token, err := s.generateToken(user.ID, user.Rol, user.Nombre, "", time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, nil, err
	}
	return &dto.LoginResponse{Token: token, User: resp}, nil, nil
}

func (s *authService) SetPassword(ctx context.Context, uid int, req dto.SetPasswordRequest) (*dto.LoginResponse, error) {
	if req.Confirm != "" && req.Confirm != req.Password {
		return nil, apierror.Invalid("las contraseñas no coinciden")
	}

	user, err := s.usuarios.FindByID(ctx, uid)
	if err != nil {
		return nil, apierror.NotFound("usuario no encontrado")
	}
	if user.PasswordHash != "" {
		return nil, apierror.Conflict("el usuario ya tiene contraseña")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	if _, err := s.usuarios.UpdatePasswordHash(ctx, uid, string(hash)); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID, user.Rol, user.Nombre, "", time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UsuarioResponse{ID: user.ID, Nombre: user.Nombre, Email: user.Email, Rol: user.Rol},
	}, nil
}

func (s *authService) generateToken(uid int, rol, nombre, purpose string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":    uid,
		"rol":    rol,
		"nombre": nombre,
		"exp":    time.Now().Add(duration).Unix(),
		"iat":    time.Now().Unix(),
	}
	if purpose != "" {
		claims["purpose"] = purpose
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

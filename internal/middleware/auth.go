package middleware

import (
	"net/http"
	"strings"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token.
// Purpose is empty for sessions and "set_password" for setup tokens.
type JWTClaims struct {
	UID     int    `json:"uid"`
	Nombre  string `json:"nombre"`
	Rol     string `json:"rol"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

func parseToken(c *gin.Context, secret string) *JWTClaims {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
		return nil
	}

	tokenStr := strings.TrimPrefix(header, "Bearer ")
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
		return nil
	}
	return claims
}

// JWTAuth validates the Bearer token on every protected route. Setup
// tokens only open the set-password endpoint, never a session.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := parseToken(c, secret)
		if claims == nil {
			return
		}
		if claims.Purpose != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Debes establecer tu contraseña antes de continuar"))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// SetupTokenAuth accepts only setup tokens issued by the first-login flow.
func SetupTokenAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := parseToken(c, secret)
		if claims == nil {
			return
		}
		if claims.Purpose != service.PurposeSetPassword {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Se requiere un token de configuración de contraseña"))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !allowed[claims.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// RequireGestion admits admins and store managers; plain workers are
// rejected. Store-level ownership is checked in the services.
func RequireGestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || (!authz.IsAdmin(claims.Rol) && !authz.IsEncargado(claims.Rol)) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// GetPrincipal converts the request claims into the authz principal used
// by the services.
func GetPrincipal(c *gin.Context) authz.Principal {
	claims := GetClaims(c)
	if claims == nil {
		return authz.Principal{}
	}
	return authz.Principal{UID: claims.UID, Rol: claims.Rol, Nombre: claims.Nombre}
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/security"
)

const (
	ContextBarberID = "barberID"
	ContextRole     = "role"
)

func AuthMiddleware(tokens *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header", "Token de acesso ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid_token", "Token inválido ou expirado.")
			return
		}
		if claims.Role != security.RoleBarber {
			abortUnauthorized(c, "invalid_token_payload", "Token inválido.")
			return
		}

		c.Set(ContextBarberID, claims.BarberID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// BarberID reads the authenticated barber set by AuthMiddleware.
func BarberID(c *gin.Context) uint {
	return c.MustGet(ContextBarberID).(uint)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	httperr.Unauthorized(c, code, message)
	c.Abort()
}

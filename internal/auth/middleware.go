package auth

import (
	"net/http"
	"slices"
	"strings"

	"fishtable/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const principalKey = "principal"

// Middleware requires a valid "Bearer <token>" Authorization header.
func Middleware(v *Verifier, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "expected Authorization: Bearer <token>")
			return
		}

		p, err := v.Verify(parts[1])
		if err != nil {
			logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("token rejected")
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// RequireRole lets only the listed roles through. It must run after Middleware.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing principal")
			return
		}
		if !slices.Contains(roles, p.Role) {
			abort(c, http.StatusForbidden, "FORBIDDEN", "role "+p.Role.String()+" may not call this endpoint")
			return
		}
		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p model.Principal) {
	c.Set(principalKey, p)
}

func PrincipalFrom(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Error: msg, Code: code})
}

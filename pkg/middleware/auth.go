package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skill-mint/auth-service/internal/errs"
	"github.com/skill-mint/auth-service/internal/tokens"
)

// CookieName is the session cookie set on login and read by the gate.
const CookieName = "authToken"

// ClaimsKey is the gin context key under which verified claims are stored.
const ClaimsKey = "user"

// SessionAuth returns a middleware gating protected routes on the session
// cookie. The three failure modes stay distinct in the response code so
// clients can choose between "prompt login" and "silently refresh":
// absent cookie -> ERC7, expired token -> ERC8, anything else -> ERC9.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			abortUnauthorized(c, errs.CodeTokenRequired)
			return
		}

		claims, err := tokens.Verify(secret, raw)
		if err != nil {
			if errors.Is(err, tokens.ErrTokenExpired) {
				abortUnauthorized(c, errs.CodeTokenExpired)
				return
			}
			abortUnauthorized(c, errs.CodeTokenInvalid)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code errs.Code) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"code":    code,
		"message": errs.Message(code),
	})
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobsheet-service/internal/auth"
	"jobsheet-service/internal/model"
)

const (
	principalContextKey = "principal"
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"
)

// Auth resolves the bearer token into the principal read by MustPrincipal.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader(authorizationHeader))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed bearer token"})
			return
		}

		claims, err := parser.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalContextKey, model.Principal{
			UID:         claims.Subject,
			Email:       claims.Email,
			DisplayName: strings.TrimSpace(claims.Name),
		})
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerPrefix) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return model.Principal{}, false
	}

	principal, ok := value.(model.Principal)
	if !ok {
		return model.Principal{}, false
	}

	return principal, true
}

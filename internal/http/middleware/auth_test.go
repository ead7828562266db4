package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsheet-service/internal/auth"
	"jobsheet-service/internal/model"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestAuthSetsPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	parser := auth.NewParser("secret")

	var seen model.Principal
	router := gin.New()
	router.GET("/", Auth(parser), func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		require.True(t, ok)
		seen = principal
		c.Status(http.StatusNoContent)
	})

	raw, err := parser.Sign(auth.Claims{
		Email: "sam@example.com",
		Name:  " Sam ",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "tech-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, model.Principal{UID: "tech-1", Email: "sam@example.com", DisplayName: "Sam"}, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+raw)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMustPrincipalWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := MustPrincipal(c)
	assert.False(t, ok)
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/skill-mint/auth-service/internal/tokens"
)

const testSecret = "middleware-test-secret-32-bytes-"

func serveWithCookie(t *testing.T, value string, withCookie bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/", SessionAuth(testSecret), func(c *gin.Context) {
		claims, ok := c.Get(ClaimsKey)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"claims": claims})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func bodyCode(t *testing.T, rw *httptest.ResponseRecorder) string {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	code, _ := got["code"].(string)
	return code
}

func TestSessionAuth_NoCookie(t *testing.T) {
	rw := serveWithCookie(t, "", false)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.Equal(t, "ERC7", bodyCode(t, rw))
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	raw, err := tokens.Generate(testSecret, "u1", "a@b.com", "email", -time.Minute)
	require.NoError(t, err)

	rw := serveWithCookie(t, raw, true)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.Equal(t, "ERC8", bodyCode(t, rw))
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	// tampered, malformed, and wrongly-signed tokens all collapse into ERC9
	other, err := tokens.Generate("a-completely-different-secret-xx", "u1", "a@b.com", "email", time.Hour)
	require.NoError(t, err)

	for _, value := range []string{"garbage", "a.b.c", other} {
		rw := serveWithCookie(t, value, true)
		require.Equal(t, http.StatusUnauthorized, rw.Code)
		require.Equal(t, "ERC9", bodyCode(t, rw))
	}
}

func TestSessionAuth_ValidToken(t *testing.T) {
	raw, err := tokens.Generate(testSecret, "u1", "a@b.com", "google", time.Hour)
	require.NoError(t, err)

	rw := serveWithCookie(t, raw, true)
	require.Equal(t, http.StatusOK, rw.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	claims := got["claims"].(map[string]any)
	require.Equal(t, "u1", claims["userId"])
	require.Equal(t, "google", claims["loginMethod"])
}

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

type stubParser struct {
	claims *models.Claims
	err    error
}

func (p stubParser) ParseToken(string) (*models.Claims, error) { return p.claims, p.err }

func newRouter(p TokenParser, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(p, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString(UsernameKey)})
	})
	r.GET("/secure", handlers...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	ok := stubParser{claims: &models.Claims{Username: "alice", Role: "investigator"}}

	tests := []struct {
		name   string
		parser TokenParser
		header string
		code   int
		field  string
		want   string
	}{
		{"missing header", ok, "", http.StatusUnauthorized, "error", "Authorization header required"},
		{"wrong scheme", ok, "Basic abc", http.StatusUnauthorized, "error", "Authorization header format must be Bearer <token>"},
		{"expired", stubParser{err: jwt.ErrTokenExpired}, "Bearer t", http.StatusUnauthorized, "error", "Token expired"},
		{"invalid", stubParser{err: errors.New("bad sig")}, "Bearer t", http.StatusUnauthorized, "error", "Invalid token"},
		{"valid", ok, "Bearer t", http.StatusOK, "username", "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(tt.parser), tt.header)
			assert.Equal(t, tt.code, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body[tt.field])
		})
	}
}

func TestRequireRole(t *testing.T) {
	investigator := stubParser{claims: &models.Claims{Username: "bob", Role: "investigator"}}
	w := do(newRouter(investigator, RequireRole("admin")), "Bearer t")
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := stubParser{claims: &models.Claims{Username: "root", Role: "admin"}}
	w = do(newRouter(admin, RequireRole("admin")), "Bearer t")
	assert.Equal(t, http.StatusOK, w.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireRole(t *testing.T) {
	issuer, err := auth.NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	adminToken, err := issuer.Issue("a@example.com", auth.RoleAdmin, "u1")
	require.NoError(t, err)
	superToken, err := issuer.Issue("s@example.com", auth.RoleSuperAdmin, "u2")
	require.NoError(t, err)

	r := newRouter(RequireRole(issuer, auth.RoleSuperAdmin))

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + adminToken, "", http.StatusForbidden},
		{"bearer", "Bearer " + superToken, "", http.StatusOK},
		{"bare token", superToken, "", http.StatusOK},
		{"query token ignored", "", superToken, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/x"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(r, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "u2", rec.Body.String())
			}
		})
	}
}

func TestValidateAPIKey(t *testing.T) {
	r := newRouter(ValidateAPIKey("k1"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req.Header.Set("X-API-KEY", "k2")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req.Header.Set("X-API-KEY", "k1")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	locked := newRouter(ValidateAPIKey(""))
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(locked, req).Code)
}

func TestRequireRole_NoIssuer(t *testing.T) {
	r := newRouter(RequireRole(nil, auth.RoleAdmin))
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireRoleForUpgrade_QueryToken(t *testing.T) {
	issuer, err := auth.NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	token, err := issuer.Issue("a@example.com", auth.RoleAdmin, "u1")
	require.NoError(t, err)

	r := newRouter(RequireRoleForUpgrade(issuer, auth.RoleAdmin))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/x?token="+token, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/x?token=nope", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

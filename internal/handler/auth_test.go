package handler_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking-system/internal/config"
	"github.com/iliyamo/smart-parking-system/internal/handler"
	"github.com/iliyamo/smart-parking-system/internal/router"
	"github.com/iliyamo/smart-parking-system/internal/utils"
)

func newAuthServer(t *testing.T) *echo.Echo {
	t.Helper()
	hash, err := utils.HashPassword("open-sesame", 4) // low cost keeps the test fast
	require.NoError(t, err)
	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 5}
	e := echo.New()
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, hash))
	return e
}

func TestLoginIssuesAdminToken(t *testing.T) {
	e := newAuthServer(t)
	code, body := do(t, e, http.MethodPost, "/v1/auth/login",
		`{"username":"admin","password":"open-sesame"}`, "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, handler.AdminRole, body["role"])
	require.NotEmpty(t, body["token"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newAuthServer(t)

	code, _ := do(t, e, http.MethodPost, "/v1/auth/login",
		`{"username":"admin","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, e, http.MethodPost, "/v1/auth/login",
		`{"username":"root","password":"open-sesame"}`, "")
	require.Equal(t, http.StatusUnauthorized, code, "unknown username looks identical")

	code, _ = do(t, e, http.MethodPost, "/v1/auth/login",
		`{"username":"admin"}`, "")
	require.Equal(t, http.StatusBadRequest, code, "missing password")
}

package handler

import (
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // token expiry in responses

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/smart-parking-system/internal/config" // app configuration
	"github.com/iliyamo/smart-parking-system/internal/utils"  // helper functions (hashing, token issuing)
)

// AdminRole is the role claim required for topology and rollback endpoints.
const AdminRole = "ADMIN"

// AuthHandler issues admin access tokens.  There is exactly one operator
// account; its password comes from the environment and only its bcrypt hash
// is kept in memory.
type AuthHandler struct {
	Cfg       config.Config
	AdminHash string // bcrypt hash of the admin password
}

func NewAuthHandler(cfg config.Config, adminHash string) *AuthHandler {
	return &AuthHandler{Cfg: cfg, AdminHash: adminHash}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	Role    string    `json:"role"`
}

// Login verifies the admin credentials and returns a signed access token.
// A wrong username and a wrong password produce the same response so the
// endpoint does not confirm which half was correct.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	if req.Username != "admin" || !utils.VerifyPassword(h.AdminHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, AdminRole, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: access.Token, Expires: access.Exp, Role: AdminRole})
}

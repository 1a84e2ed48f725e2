package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/filmhub/swapper-api/internal/config"
	"github.com/filmhub/swapper-api/internal/repository"
	"github.com/filmhub/swapper-api/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register.  Username and password length
// rules are checked before any store call; the duplicate check proper
// lives in the repository, backed by the unique constraint.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "request body must be valid JSON")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return respondErr(c, http.StatusBadRequest, "username and password are required")
	}
	if len(req.Username) < 3 {
		return respondErr(c, http.StatusBadRequest, "username must be at least 3 characters")
	}
	if len(req.Password) < 6 {
		return respondErr(c, http.StatusBadRequest, "password must be at least 6 characters")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Register(ctx, req.Username, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return respondErr(c, http.StatusBadRequest, "username already exists")
		}
		return respondErr(c, http.StatusInternalServerError, "could not register user")
	}

	return respondOK(c, http.StatusCreated, "user registered successfully", echo.Map{
		"user_id":  u.ID,
		"username": u.Username,
	})
}

// Login handles POST /api/login and returns a signed access token on
// success.  An unknown username and a wrong password both come back
// as 401, with messages matching the store's distinction.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "request body must be valid JSON")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return respondErr(c, http.StatusBadRequest, "username and password are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Verify(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return respondErr(c, http.StatusUnauthorized, "user not found, please register first")
		case errors.Is(err, repository.ErrInvalidPassword):
			return respondErr(c, http.StatusUnauthorized, "incorrect password")
		default:
			return respondErr(c, http.StatusInternalServerError, "could not verify credentials")
		}
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, h.Cfg.TokenTTLHours)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not issue token")
	}

	return respondOK(c, http.StatusOK, "login successful", echo.Map{
		"token":    token.Token,
		"username": u.Username,
	})
}

// Protected handles GET /api/protected, a token smoke-test endpoint.
// The JWT middleware has already rejected unauthenticated requests
// and stored the username in the context.
func (h *AuthHandler) Protected(c echo.Context) error {
	username, _ := c.Get("username").(string)
	return respondOK(c, http.StatusOK, "hello, "+username+"! this is a protected endpoint.", echo.Map{
		"current_user": username,
	})
}

package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeapi/internal/errors"
	"storeapi/internal/middleware"
	"storeapi/internal/model"
	"storeapi/internal/service"
	"storeapi/internal/validation"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService     service.AuthService
	duplicateStatus int
}

// NewAuthHandler creates a new auth handler. duplicateStatus is the status
// reported for duplicate-email registrations (409 by default, 400 for
// compatibility with older clients).
func NewAuthHandler(authService service.AuthService, duplicateStatus int) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		duplicateStatus: duplicateStatus,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful authentication response.
type AuthResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": validation.Translate(err)})
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name, model.Role(req.Role))
	if err != nil {
		if stderrors.Is(err, errors.ErrEmailTaken) {
			return errors.NewHTTPError(h.duplicateStatus, err.Error())
		}
		c.Logger().Errorf("register: %v", err)
		return errors.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "user registered successfully",
		User:    user,
		Token:   token,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": validation.Translate(err)})
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidCredentials) {
			return errors.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		c.Logger().Errorf("login: %v", err)
		return errors.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "login successful",
		User:    user,
		Token:   token,
	})
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

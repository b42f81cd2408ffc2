package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeapi/internal/model"
)

type authBody struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
	Token   string     `json:"token"`
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "User@Example.COM",
		"password": "password123",
		"name":     "Test User",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	registered := decode[authBody](t, rec)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "user@example.com", registered.User.Email)
	assert.Equal(t, model.RoleUser, registered.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.request(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "password123",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	loggedIn := decode[authBody](t, rec)
	assert.NotEmpty(t, loggedIn.Token)

	rec = env.request(t, http.MethodGet, "/api/auth/profile", nil, loggedIn.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[map[string]model.User](t, rec)
	assert.Equal(t, "user@example.com", profile["user"].Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "taken@example.com", model.RoleUser)

	rec := env.request(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "taken@example.com",
		"password": "password123",
		"name":     "Another User",
	}, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, decode[errorBody](t, rec).Error)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "not-an-email",
		"password": "abc",
		"name":     "X",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decode[errorsBody](t, rec).Errors, 3)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "user@example.com",
		"password": "password123",
		"name":     "Test User",
		"role":     "superadmin",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode[errorsBody](t, rec).Errors
	require.Len(t, errs, 1)
	assert.Equal(t, "role", errs[0].Field)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "user@example.com", model.RoleUser)

	rec := env.request(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "wrong-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decode[errorBody](t, rec).Error)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "password123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/auth/profile", nil, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decode[errorBody](t, rec).Error)
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storeapi/internal/auth"
	"storeapi/internal/config"
	"storeapi/internal/handler"
	"storeapi/internal/model"
	"storeapi/internal/repository"
	"storeapi/internal/router"
	"storeapi/internal/service"
)

const testSecret = "test-secret"

var dbCounter atomic.Int64

type testEnv struct {
	e   *echo.Echo
	db  *gorm.DB
	jwt *auth.JWTService
}

// newTestEnv builds the full router over an isolated in-memory database so
// requests pass through the same gate chain as production traffic.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.User{}, &model.Product{}))

	cfg := &config.Config{
		JWTSecret:            testSecret,
		AllowedOrigins:       []string{"*"},
		ProductListOrder:     config.ListOrderIDDesc,
		DuplicateEmailStatus: http.StatusConflict,
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	authService := service.NewAuthService(userRepo, jwtService)
	productService := service.NewProductService(productRepo, nil, cfg.ProductListOrder)

	authHandler := handler.NewAuthHandler(authService, cfg.DuplicateEmailStatus)
	productHandler := handler.NewProductHandler(productService)

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	router.Register(e, cfg, jwtService, userRepo, authHandler, productHandler)

	return &testEnv{e: e, db: gormDB, jwt: jwtService}
}

// createUser inserts a user directly and returns it with a valid token.
func (env *testEnv) createUser(t *testing.T, email string, role model.Role) (*model.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, env.db.Create(user).Error)

	token, err := env.jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) createProduct(t *testing.T, name string, price float64) *model.Product {
	t.Helper()

	product := &model.Product{Name: name, Price: price, Availability: true}
	require.NoError(t, env.db.Create(product).Error)
	return product
}

// request sends a JSON request through the full middleware chain.
func (env *testEnv) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type errorBody struct {
	Error string `json:"error"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorsBody struct {
	Errors []fieldError `json:"errors"`
}

type productBody struct {
	Data model.Product `json:"data"`
}

type productListBody struct {
	Data []model.Product `json:"data"`
}

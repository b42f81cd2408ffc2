package router

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storeapi/internal/auth"
	"storeapi/internal/config"
	"storeapi/internal/errors"
	"storeapi/internal/handler"
	"storeapi/internal/middleware"
	"storeapi/internal/model"
	"storeapi/internal/repository"
	"storeapi/internal/validation"
)

// Register wires routes and middleware. The gate order on every route is
// fixed here at registration time: authenticate, resolve identity, role
// gate, param validation, body validation, handler.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	e.Validator = validation.NewValidator()
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	authenticate := middleware.Authenticate(jwtService)
	resolveUser := middleware.ResolveUser(users)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	validID := middleware.ValidateParams(validation.ProductIDRules)

	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/profile", authHandler.Profile, authenticate, resolveUser)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get, validID)
	api.POST("/products", productHandler.Create,
		authenticate, resolveUser, adminOnly,
		middleware.ValidateBody(validation.CreateProductRules))
	api.PUT("/products/:id", productHandler.Replace,
		authenticate, resolveUser, adminOnly, validID,
		middleware.ValidateBody(validation.ReplaceProductRules))
	api.PATCH("/products/:id", productHandler.Toggle,
		authenticate, resolveUser, adminOnly, validID)
	api.DELETE("/products/:id", productHandler.Delete,
		authenticate, resolveUser, adminOnly, validID)
}

// errorHandler shapes every error as {"error": message}. Unrecognized errors
// become a generic 500; the detail stays in the server log.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var appErr *errors.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case stderrors.As(err, &appErr):
		code = appErr.StatusCode
		msg = appErr.Message
	case stderrors.As(err, &echoErr):
		code = echoErr.Code
		if s, ok := echoErr.Message.(string); ok {
			msg = s
		}
	}

	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, errors.ErrorResponse{Error: msg})
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

package middleware

import (
	stderrors "errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storeapi/internal/auth"
	"storeapi/internal/errors"
	"storeapi/internal/model"
	"storeapi/internal/repository"
)

// identityKey holds the resolved user for the lifetime of one request.
const identityKey = "identity"

// Authenticate verifies the bearer token on the Authorization header.
// Verification itself lives in auth.JWTService; this gate only extracts the
// token and shapes the failures. A missing token and a token that fails
// signature or expiry checks produce distinct 401 messages; neither reaches
// any later gate.
func Authenticate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if stderrors.Is(err, echojwt.ErrJWTMissing) {
				return errors.NewHTTPError(http.StatusUnauthorized, "access token required")
			}
			return errors.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		},
	})
}

// ResolveUser loads the user the verified token refers to and attaches it to
// the request context. A token for a deleted or unknown user id is a 401.
func ResolveUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return errors.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if stderrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.NewHTTPError(http.StatusUnauthorized, errors.ErrUserNotFound.Error())
				}
				return err
			}

			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the identity resolved for this request, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(identityKey).(*model.User)
	return user, ok
}

// RequireRole allows the request through only when the resolved identity
// carries one of the given roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				// unreachable when ResolveUser ran first
				return errors.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return errors.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeapi/internal/errors"
	"storeapi/internal/validation"
)

// ValidateBody decodes the request body into raw values and applies the rule
// set, collecting every violation before rejecting. On success the body is
// restored so the handler can bind its typed request.
func ValidateBody(rules validation.RuleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return errors.NewHTTPError(http.StatusBadRequest, "invalid request body")
			}
			c.Request().Body = io.NopCloser(bytes.NewReader(body))

			values := map[string]any{}
			if len(bytes.TrimSpace(body)) > 0 {
				if err := json.Unmarshal(body, &values); err != nil {
					return errors.NewHTTPError(http.StatusBadRequest, "invalid request body")
				}
			}

			if fieldErrs := rules.Apply(values); len(fieldErrs) > 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrs})
			}
			return next(c)
		}
	}
}

// ValidateParams applies the rule set to path parameters.
func ValidateParams(rules validation.RuleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			values := map[string]any{}
			for _, name := range c.ParamNames() {
				values[name] = c.Param(name)
			}

			if fieldErrs := rules.Apply(values); len(fieldErrs) > 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrs})
			}
			return next(c)
		}
	}
}

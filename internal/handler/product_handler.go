package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storeapi/internal/errors"
	"storeapi/internal/service"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest represents a product create/replace payload. Field rules are
// enforced by the validation gate before binding.
type ProductRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability *bool   `json:"availability"`
}

// DataResponse wraps every successful product payload.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// List godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: products})
}

// Get godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: product})
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.productService.Create(c.Request().Context(), service.ProductInput{
		Name:         req.Name,
		Price:        req.Price,
		Availability: req.Availability,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: product})
}

// Replace godoc
// @Summary Replace a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} DataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Replace(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.productService.Replace(c.Request().Context(), id, service.ProductInput{
		Name:         req.Name,
		Price:        req.Price,
		Availability: req.Availability,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: product})
}

// Toggle godoc
// @Summary Toggle product availability
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [patch]
func (h *ProductHandler) Toggle(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.ToggleAvailability(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: product})
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: "Product Deleted"})
}

// productID reads the already-validated :id parameter.
func productID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, errors.NewHTTPError(http.StatusBadRequest, "invalid identifier")
	}
	return uint(id), nil
}

// mapError translates a service error, logging anything that maps to a 500
// so the generic message is all the caller ever sees.
func (h *ProductHandler) mapError(c echo.Context, err error) error {
	httpErr := errors.MapError(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("product handler: %v", err)
	}
	return httpErr
}

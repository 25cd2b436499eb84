package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/events"
	"github.com/techstore-lab/techstore/internal/logging"
	"github.com/techstore-lab/techstore/internal/models"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"error": msg})
}

func publishEvent(c echo.Context, p *events.Producer, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("audit publish failed", "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	var items []models.Product
	if err := h.DB.Find(&items).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("list products failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, items)
}

// SearchProducts matches a case-insensitive substring against name or
// description. An empty term returns an empty list, not the catalog;
// listing everything is GetProducts' job.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusOK, []models.Product{})
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var items []models.Product
	if err := h.DB.
		Where("lower(name) LIKE ? OR lower(description) LIKE ?", pattern, pattern).
		Find(&items).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("search failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, items)
}

// DeleteProduct stays public on purpose; anyone who knows a product id
// can remove it.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Product ID is required")
	}

	res := h.DB.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		logging.FromContext(c.Request().Context()).Error("delete product failed", "error", res.Error)
		return errorResponse(c, http.StatusInternalServerError, "Database error")
	}
	if res.RowsAffected == 0 {
		return errorResponse(c, http.StatusNotFound, "Product not found")
	}

	publishEvent(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

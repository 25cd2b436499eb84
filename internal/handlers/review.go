package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/events"
	"github.com/techstore-lab/techstore/internal/logging"
	"github.com/techstore-lab/techstore/internal/models"
)

// ReviewHandler runs the submission queue: public submissions land in
// pending_products and an authenticated reviewer publishes or discards
// them.
type ReviewHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

type submitRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
}

// Submit is deliberately public; anything on the storefront may propose
// a product. It only ever writes to the pending table.
func (h *ReviewHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Missing required fields")
	}
	if err := c.Validate(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Missing required fields")
	}

	pending := models.PendingProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.DB.Create(&pending).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("submit pending failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Database error")
	}

	return c.JSON(http.StatusCreated, pending)
}

func (h *ReviewHandler) ListPending(c echo.Context) error {
	var items []models.PendingProduct
	if err := h.DB.Find(&items).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("list pending failed", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, items)
}

// Approve copies the pending row into the catalog and removes it, both
// writes inside one transaction so a failed delete never leaves the
// product published twice.
func (h *ReviewHandler) Approve(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusNotFound, "Pending product not found")
	}

	var newProductID int
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var pending models.PendingProduct
		if err := tx.First(&pending, id).Error; err != nil {
			return err
		}

		product := models.Product{
			Name:        pending.Name,
			Description: pending.Description,
			Price:       pending.Price,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PendingProduct{}, pending.ID).Error; err != nil {
			return err
		}

		newProductID = product.ID
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "Pending product not found")
		}
		logging.FromContext(c.Request().Context()).Error("approve failed", "error", txErr)
		return errorResponse(c, http.StatusInternalServerError, "Database error")
	}

	publishEvent(c, h.Producer, fmt.Sprint(newProductID), map[string]any{
		"type":         "product_approved",
		"pendingID":    id,
		"newProductID": newProductID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Product approved",
		"newProductId": newProductID,
	})
}

func (h *ReviewHandler) Reject(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusNotFound, "Pending product not found")
	}

	res := h.DB.Delete(&models.PendingProduct{}, "id = ?", id)
	if res.Error != nil {
		logging.FromContext(c.Request().Context()).Error("reject failed", "error", res.Error)
		return errorResponse(c, http.StatusInternalServerError, "Database error")
	}
	if res.RowsAffected == 0 {
		return errorResponse(c, http.StatusNotFound, "Pending product not found")
	}

	publishEvent(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type":      "product_rejected",
		"pendingID": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Pending product removed"})
}

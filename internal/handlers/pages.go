package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/logging"
	"github.com/techstore-lab/techstore/internal/models"
	"github.com/techstore-lab/techstore/internal/render"
)

// PageHandler serves the server-rendered storefront views.
type PageHandler struct {
	DB       *gorm.DB
	Renderer *render.Renderer
}

func (h *PageHandler) Home(c echo.Context) error {
	var products []models.Product
	if err := h.DB.Find(&products).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("home page failed", "error", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	doc, err := h.Renderer.Page("index.html", map[string]string{
		render.MarkerProducts: h.Renderer.ProductCards(products),
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("home page failed", "error", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}
	return c.HTML(http.StatusOK, doc)
}

// HomeNew renders the search-enabled storefront. The ?search= term is
// echoed into the status banner and also narrows the product query.
func (h *PageHandler) HomeNew(c echo.Context) error {
	term := c.QueryParam("search")

	q := h.DB
	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(description) LIKE ?", pattern, pattern)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("search page failed", "error", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	doc, err := h.Renderer.Page("home-new.html", map[string]string{
		render.MarkerSearchStatus: h.Renderer.SearchStatus(term),
		render.MarkerProducts:     h.Renderer.ProductCards(products),
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("search page failed", "error", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}
	return c.HTML(http.StatusOK, doc)
}

// AdminQueue reuses the storefront template with pending cards and the
// review banner in place of the catalog.
func (h *PageHandler) AdminQueue(c echo.Context) error {
	var pending []models.PendingProduct
	if err := h.DB.Find(&pending).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("admin queue failed", "error", err)
		return c.String(http.StatusInternalServerError, "Database error")
	}

	doc, err := h.Renderer.Page("index.html", map[string]string{
		render.MarkerProducts:     h.Renderer.QueueBanner() + h.Renderer.PendingCards(pending),
		render.MarkerRenderedFlag: `<script>window.SERVER_RENDERED=true;window.IS_REVIEW_QUEUE=true;</script>`,
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("admin queue failed", "error", err)
		return c.String(http.StatusInternalServerError, "Server error")
	}
	return c.HTML(http.StatusOK, doc)
}

func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.File(filepath.Join(h.Renderer.Dir, "dashboard.html"))
}

func (h *PageHandler) LoginPage(c echo.Context) error {
	return c.File(filepath.Join(h.Renderer.Dir, "login.html"))
}

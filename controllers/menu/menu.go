package menuControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/junaidrashid-git/rivaleats-api/store"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Menu store.MenuStore // nil: serve the sample menu
	now  func() time.Time
}

func NewHandler(menu store.MenuStore) *Handler {
	return &Handler{Menu: menu, now: time.Now}
}

type MenuResponse struct {
	LastUpdated time.Time         `json:"lastUpdated"`
	Items       []models.MenuItem `json:"items"`
	Sample      bool              `json:"sample,omitempty"`
}

type MenuItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Section     string           `json:"section" binding:"required"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    string           `json:"image_url"`
	Tags        []string         `json:"tags"`
	IsActive    *bool            `json:"is_active"`
}

func (r MenuItemRequest) toModel(id string) (models.MenuItem, error) {
	section, ok := models.ParseMenuSection(strings.ToLower(strings.TrimSpace(r.Section)))
	if !ok {
		return models.MenuItem{}, errors.New("section must be breakfast or dinner")
	}
	item := models.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Section:     section,
		ImageURL:    strings.TrimSpace(r.ImageURL),
		Tags:        cleanTags(r.Tags),
		IsActive:    true,
	}
	if r.Price != nil {
		if r.Price.IsNegative() {
			return models.MenuItem{}, errors.New("price must not be negative")
		}
		item.Price = decimal.NewNullDecimal(r.Price.Round(2))
	}
	if r.IsActive != nil {
		item.IsActive = *r.IsActive
	}
	return item, nil
}

func cleanTags(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (h *Handler) sample() MenuResponse {
	return MenuResponse{LastUpdated: h.now().UTC(), Items: sampleMenu, Sample: true}
}

// GetMenu returns the active menu ordered by section then name. It never
// fails: without a working store the sample menu is served.
func (h *Handler) GetMenu(c *gin.Context) {
	if h.Menu == nil {
		c.JSON(http.StatusOK, h.sample())
		return
	}
	items, err := h.Menu.ListMenuItems(c.Request.Context(), true)
	if err != nil {
		log.Printf("⚠️ Menu fetch failed, serving sample menu: %v", err)
		c.JSON(http.StatusOK, h.sample())
		return
	}

	resp := MenuResponse{Items: items}
	for _, it := range items {
		if it.UpdatedAt.After(resp.LastUpdated) {
			resp.LastUpdated = it.UpdatedAt
		}
	}
	if resp.LastUpdated.IsZero() {
		resp.LastUpdated = h.now().UTC()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) requireStore(c *gin.Context) bool {
	if h.Menu == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Menu store is not configured"})
		return false
	}
	return true
}

// ListMenuItems includes inactive items.
func (h *Handler) ListMenuItems(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	items, err := h.Menu.ListMenuItems(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, description and section are required"})
		return
	}
	item, err := req.toModel(uuid.NewString())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Menu.CreateMenuItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, description and section are required"})
		return
	}
	item, err := req.toModel(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err = h.Menu.UpdateMenuItem(c.Request.Context(), &item)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	err := h.Menu.DeleteMenuItem(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

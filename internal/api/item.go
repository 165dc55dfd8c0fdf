package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manzapp/manz/backend/internal/middleware"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
)

const itemNotFound = "Item not found"

// ItemHandler handles ingredient queries and item image uploads
type ItemHandler struct {
	itemService  service.IItemService
	imageService service.IImageService
	authService  service.IAuthService
}

// NewItemHandler creates a new item handler. imageService is nil when no
// bucket is configured; uploads then answer 503.
func NewItemHandler(itemService service.IItemService, imageService service.IImageService, authService service.IAuthService) *ItemHandler {
	return &ItemHandler{
		itemService:  itemService,
		imageService: imageService,
		authService:  authService,
	}
}

// RegisterRoutes registers the item routes
func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/item")
	items.Use(middleware.AuthMiddleware(h.authService))
	{
		items.GET("/", h.ListIngredients)
		items.POST("/image/", h.UploadImage)
		items.GET("/:id/", h.GetItem)
	}
}

// ListIngredients returns the ingredient lines of every meal that ends at
// or before end_date
func (h *ItemHandler) ListIngredients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	value, ok := queryTimestamp(c, "end_date")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date is required"})
		return
	}
	cutoff, err := service.ParseTimestamp(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date format"})
		return
	}

	entries, err := h.itemService.IngredientsUntil(c.Request.Context(), userID, cutoff)
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetItem returns a single item
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: itemNotFound})
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusOK, item)
}

// UploadImage stores the multipart field "image" and returns its public URL
func (h *ItemHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Image storage is not configured"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
		return
	}
	if header.Size > service.MaxImageSize {
		respondError(c, service.ErrImageTooLarge, itemNotFound)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}
	defer file.Close()

	// One extra byte tells an oversized stream apart from an exact fit.
	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}

	url, err := h.imageService.UploadItemImage(c.Request.Context(), data)
	if err != nil {
		respondError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusCreated, types.ImageUploadResponse{ImageURL: url})
}

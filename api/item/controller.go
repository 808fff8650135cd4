package item

import (
	"net/http"

	"shop/api/response"
	itemapp "shop/application/item"

	"github.com/gin-gonic/gin"
)

// Controller Item controller
type Controller struct {
	itemService *itemapp.ApplicationService
}

// NewController Create item controller
func NewController(itemService *itemapp.ApplicationService) *Controller {
	return &Controller{
		itemService: itemService,
	}
}

// RegisterRoutes Register item routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	itemGroup := router.Group("/items")
	{
		itemGroup.POST("", c.CreateItem)
		itemGroup.GET("", c.ListItems)
		itemGroup.GET("/:id", c.GetItem)
		itemGroup.PUT("/:id", c.UpdateItem)
	}
}

// CreateItem Create a catalog item
func (c *Controller) CreateItem(ctx *gin.Context) {
	var req itemapp.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	it, err := c.itemService.CreateItem(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, it, "Item created successfully")
}

// ListItems List the catalog
func (c *Controller) ListItems(ctx *gin.Context) {
	items, err := c.itemService.ListItems(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, items, "Items retrieved successfully")
}

// GetItem Get one item
func (c *Controller) GetItem(ctx *gin.Context) {
	it, err := c.itemService.GetItem(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, it, "Item retrieved successfully")
}

// UpdateItem Update name, price and stock of an item
func (c *Controller) UpdateItem(ctx *gin.Context) {
	var req itemapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	it, err := c.itemService.UpdateItem(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, it, "Item updated successfully")
}

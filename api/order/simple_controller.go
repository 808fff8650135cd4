package order

import (
	"errors"

	"shop/api/response"
	orderapp "shop/application/order"

	"github.com/gin-gonic/gin"
)

var errInvalidPage = errors.New("offset must be >= 0 and limit in (0, 1000]")

// SimpleController Versioned listings of orders without their line items.
// The to-one variant of the read-strategy ladder: no collection is ever
// touched, so the worst case is 1 + 2N queries instead of the full fan-out.
type SimpleController struct {
	queryService *orderapp.QueryService
}

// NewSimpleController Create simple-order controller
func NewSimpleController(queryService *orderapp.QueryService) *SimpleController {
	return &SimpleController{queryService: queryService}
}

// RegisterRoutes Register simple-order routes on the /api group
func (c *SimpleController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/v1/simple-orders", c.ListV1)
	api.GET("/v2/simple-orders", c.ListV2)
	api.GET("/v3/simple-orders", c.ListV3)
	api.GET("/v4/simple-orders", c.ListV4)
}

// ListV1 Raw entities with resolved to-one associations
func (c *SimpleController) ListV1(ctx *gin.Context) {
	orders, err := c.queryService.ListSimpleOrdersV1(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListV2 Flat DTOs over the v1 load plan
func (c *SimpleController) ListV2(ctx *gin.Context) {
	orders, err := c.queryService.ListSimpleOrdersV2(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListV3 Join fetch of the to-one associations in one query
func (c *SimpleController) ListV3(ctx *gin.Context) {
	orders, err := c.queryService.ListSimpleOrdersV3(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListV4 Straight projection into the view's columns
func (c *SimpleController) ListV4(ctx *gin.Context) {
	orders, err := c.queryService.ListSimpleOrdersV4(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

package order

import (
	"net/http"
	"strconv"

	"shop/api/response"
	orderapp "shop/application/order"
	"shop/domain/order"

	"github.com/gin-gonic/gin"
)

// Default page bounds for the paginated listing.
const (
	defaultOffset = 0
	defaultLimit  = 100
	maxLimit      = 1000
)

// Controller Order controller.
//
// The read endpoints are deliberately versioned side by side: every
// /api/vN/orders route answers the same question with a different query
// plan, and the differences show up in the query-count metrics. v1 returns
// raw entities, v2/v3/v3.1 shaped aggregates, v4..v6 projections.
type Controller struct {
	orderService *orderapp.ApplicationService
	queryService *orderapp.QueryService
}

// NewController Create order controller
func NewController(orderService *orderapp.ApplicationService, queryService *orderapp.QueryService) *Controller {
	return &Controller{
		orderService: orderService,
		queryService: queryService,
	}
}

// RegisterRoutes Register order routes on the /api group
func (c *Controller) RegisterRoutes(api *gin.RouterGroup) {
	v1 := api.Group("/v1")
	{
		v1.POST("/orders", c.PlaceOrder)
		v1.GET("/orders", c.ListOrdersV1)
		v1.GET("/orders/search", c.SearchOrders)
		v1.GET("/orders/:id", c.GetOrder)
		v1.POST("/orders/:id/cancel", c.CancelOrder)
	}

	api.GET("/v2/orders", c.ListOrdersV2)
	api.GET("/v3/orders", c.ListOrdersV3)
	api.GET("/v3.1/orders", c.ListOrdersV31)
	api.GET("/v4/orders", c.ListOrdersV4)
	api.GET("/v5/orders", c.ListOrdersV5)
	api.GET("/v6/orders", c.ListOrdersV6)
}

// PlaceOrder Place an order
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.orderService.PlaceOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, result, "Order placed successfully")
}

// CancelOrder Cancel an order
func (c *Controller) CancelOrder(ctx *gin.Context) {
	if err := c.orderService.CancelOrder(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// GetOrder Get one order
func (c *Controller) GetOrder(ctx *gin.Context) {
	o, err := c.queryService.GetOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "Order retrieved successfully")
}

// SearchOrders Criteria search for the admin listing
func (c *Controller) SearchOrders(ctx *gin.Context) {
	var req orderapp.SearchOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "Invalid search parameters", http.StatusBadRequest)
		return
	}

	orders, err := c.queryService.SearchOrders(ctx.Request.Context(), order.Search{
		Status:     order.Status(req.Status),
		MemberName: req.MemberName,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListOrdersV1 Raw entities, shallow load plus per-order resolution
func (c *Controller) ListOrdersV1(ctx *gin.Context) {
	orders, err := c.queryService.ListOrdersV1(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListOrdersV2 DTOs over the v1 load plan
func (c *Controller) ListOrdersV2(ctx *gin.Context) {
	orders, err := c.queryService.ListOrdersV2(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListOrdersV3 Single-statement join fetch
func (c *Controller) ListOrdersV3(ctx *gin.Context) {
	orders, err := c.queryService.ListOrdersV3(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListOrdersV31 Paginated join fetch with batched collection loading
func (c *Controller) ListOrdersV31(ctx *gin.Context) {
	offset, limit, err := pageParams(ctx)
	if err != nil {
		response.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
		return
	}

	orders, err := c.queryService.ListOrdersV31(ctx.Request.Context(), offset, limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, orders, response.Pagination{
		Offset:   offset,
		Limit:    limit,
		Returned: len(orders),
	}, "Orders retrieved successfully")
}

// ListOrdersV4 Projection plus per-order line-item queries
func (c *Controller) ListOrdersV4(ctx *gin.Context) {
	orders, err := c.queryService.ListOrdersV4(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListOrdersV5 Projection plus one IN query
func (c *Controller) ListOrdersV5(ctx *gin.Context) {
	orders, err := c.queryService.ListOrdersV5(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

// ListOrdersV6 Flat single query, regrouped in memory
func (c *Controller) ListOrdersV6(ctx *gin.Context) {
	orders, err := c.queryService.ListOrdersV6(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "Orders retrieved successfully")
}

func pageParams(ctx *gin.Context) (offset, limit int, err error) {
	offset = defaultOffset
	limit = defaultLimit

	if raw := ctx.Query("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errInvalidPage
		}
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxLimit {
			return 0, 0, errInvalidPage
		}
	}
	return offset, limit, nil
}

package member

import (
	"net/http"

	"shop/api/response"
	memberapp "shop/application/member"

	"github.com/gin-gonic/gin"
)

// Controller Member controller
type Controller struct {
	memberService *memberapp.ApplicationService
}

// NewController Create member controller
func NewController(memberService *memberapp.ApplicationService) *Controller {
	return &Controller{
		memberService: memberService,
	}
}

// RegisterRoutes Register member routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	memberGroup := router.Group("/members")
	{
		memberGroup.POST("", c.RegisterMember)
		memberGroup.GET("", c.ListMembers)
		memberGroup.GET("/:id", c.GetMember)
		memberGroup.PUT("/:id", c.UpdateMember)
	}
}

// RegisterMember Register a new member
func (c *Controller) RegisterMember(ctx *gin.Context) {
	var req memberapp.RegisterMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	m, err := c.memberService.RegisterMember(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, m, "Member registered successfully")
}

// ListMembers List all members
func (c *Controller) ListMembers(ctx *gin.Context) {
	members, err := c.memberService.ListMembers(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, members, "Members retrieved successfully")
}

// GetMember Get one member
func (c *Controller) GetMember(ctx *gin.Context) {
	m, err := c.memberService.GetMember(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, m, "Member retrieved successfully")
}

// UpdateMember Rename a member
func (c *Controller) UpdateMember(ctx *gin.Context) {
	var req memberapp.UpdateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	m, err := c.memberService.UpdateMember(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, m, "Member updated successfully")
}

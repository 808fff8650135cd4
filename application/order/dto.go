package order

import (
	"time"

	"shop/domain/order"
	"shop/domain/shared"
)

// PlaceOrderRequest 下单入参
type PlaceOrderRequest struct {
	MemberID string             `json:"member_id" binding:"required"`
	Items    []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderLineRequest 下单时的单个商品行
type OrderLineRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	Count  int    `json:"count" binding:"required,min=1"`
}

// PlaceOrderResponse 下单返回
type PlaceOrderResponse struct {
	OrderID    string `json:"order_id"`
	TotalPrice int    `json:"total_price"`
}

// SearchOrdersRequest 订单检索入参（管理后台用）
type SearchOrdersRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=ORDERED CANCELED"`
	MemberName string `form:"member_name"`
}

// OrderResponse 含订单项的订单视图
// The shaped counterpart of the raw entity payload: stable field set,
// decoupled from the aggregate's internals.
type OrderResponse struct {
	OrderID    string              `json:"order_id"`
	MemberName string              `json:"member_name"`
	OrderDate  time.Time           `json:"order_date"`
	Status     order.Status        `json:"status"`
	Address    shared.Address      `json:"address"`
	OrderItems []OrderItemResponse `json:"order_items"`
}

// OrderItemResponse 订单项视图
type OrderItemResponse struct {
	ItemName   string `json:"item_name"`
	OrderPrice int    `json:"order_price"`
	Count      int    `json:"count"`
}

// SimpleOrderResponse 不含订单项的订单视图
type SimpleOrderResponse struct {
	OrderID    string         `json:"order_id"`
	MemberName string         `json:"member_name"`
	OrderDate  time.Time      `json:"order_date"`
	Status     order.Status   `json:"status"`
	Address    shared.Address `json:"address"`
}

// convertToResponse maps a fully resolved aggregate to the nested view.
func convertToResponse(o *order.Order) OrderResponse {
	items := o.Items()
	itemResponses := make([]OrderItemResponse, len(items))
	for i, oi := range items {
		name := ""
		if oi.Item() != nil {
			name = oi.Item().Name()
		}
		itemResponses[i] = OrderItemResponse{
			ItemName:   name,
			OrderPrice: oi.OrderPrice(),
			Count:      oi.Count(),
		}
	}
	return OrderResponse{
		OrderID:    o.ID(),
		MemberName: o.Member().Name(),
		OrderDate:  o.OrderDate(),
		Status:     o.Status(),
		Address:    o.Delivery().Address(),
		OrderItems: itemResponses,
	}
}

// convertToSimpleResponse maps an aggregate with resolved to-one associations
// to the flat view. Line items are never touched.
func convertToSimpleResponse(o *order.Order) SimpleOrderResponse {
	return SimpleOrderResponse{
		OrderID:    o.ID(),
		MemberName: o.Member().Name(),
		OrderDate:  o.OrderDate(),
		Status:     o.Status(),
		Address:    o.Delivery().Address(),
	}
}

func summaryToSimpleResponse(s order.Summary) SimpleOrderResponse {
	return SimpleOrderResponse{
		OrderID:    s.OrderID,
		MemberName: s.MemberName,
		OrderDate:  s.OrderDate,
		Status:     s.Status,
		Address:    s.Address,
	}
}

func itemSummaryToResponse(s order.ItemSummary) OrderItemResponse {
	return OrderItemResponse{
		ItemName:   s.ItemName,
		OrderPrice: s.OrderPrice,
		Count:      s.Count,
	}
}

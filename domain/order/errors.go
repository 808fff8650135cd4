package order

import "errors"

// 订单领域哨兵错误
// 用于 errors.Is() 判断
var (
	// ErrOrderNotFound 订单未找到
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyOrderItems 订单必须至少包含一个订单项
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidOrder 无效的订单参数
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidQuantity 订单项数量必须为正数
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrAlreadyDelivered 已完成配送的订单不能取消
	ErrAlreadyDelivered = errors.New("cannot cancel a delivered order")

	// ErrAlreadyCanceled 订单已取消
	ErrAlreadyCanceled = errors.New("order is already canceled")

	// ErrAssociationsNotLoaded 操作要求聚合已完整加载（delivery与订单项已解析）
	ErrAssociationsNotLoaded = errors.New("order associations are not loaded")
)

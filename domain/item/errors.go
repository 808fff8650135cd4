package item

import "errors"

// 商品领域哨兵错误
var (
	// ErrItemNotFound 商品未找到
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientStock 库存不足，扣减会使库存为负
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidItem 无效的商品属性
	ErrInvalidItem = errors.New("invalid item attributes")

	// ErrUnknownKind 未知的商品类型
	ErrUnknownKind = errors.New("unknown item kind")
)

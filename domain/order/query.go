package order

import (
	"context"
	"time"

	"shop/domain/shared"
)

// 读模型投影 (CQRS Q侧)
// Projection rows are shaped directly by the query, bypassing entity
// materialization. They are plain exported-field structs: no behavior, safe
// to marshal, safe to cache.

// Summary 订单平铺投影（不含订单项）
type Summary struct {
	OrderID    string         `json:"order_id"`
	MemberName string         `json:"member_name"`
	OrderDate  time.Time      `json:"order_date"`
	Status     Status         `json:"status"`
	Address    shared.Address `json:"address"`
}

// ItemSummary 订单项平铺投影
type ItemSummary struct {
	OrderID    string `json:"order_id"`
	ItemName   string `json:"item_name"`
	OrderPrice int    `json:"order_price"`
	Count      int    `json:"count"`
}

// FlatRow 完全平铺投影：每行对应一个 (订单 × 订单项) 组合
// All order-level and item-level fields already joined in the query; the
// assembler regroups rows into nested views in memory.
type FlatRow struct {
	OrderID    string         `json:"order_id"`
	MemberName string         `json:"member_name"`
	OrderDate  time.Time      `json:"order_date"`
	Status     Status         `json:"status"`
	Address    shared.Address `json:"address"`
	ItemName   string         `json:"item_name"`
	OrderPrice int            `json:"order_price"`
	Count      int            `json:"count"`
}

// QueryRepository 订单读模型仓储接口
// Each method is exactly one query; strategy fan-out is decided by how the
// application layer combines them.
type QueryRepository interface {
	// FindSummaries 订单平铺投影（join member、delivery，1次查询）
	FindSummaries(ctx context.Context) ([]Summary, error)

	// FindItemSummaries 单个订单的订单项投影（1次查询）
	FindItemSummaries(ctx context.Context, orderID string) ([]ItemSummary, error)

	// FindItemSummariesByOrderIDs 一批订单的订单项投影（IN集合过滤，1次查询）
	FindItemSummariesByOrderIDs(ctx context.Context, orderIDs []string) ([]ItemSummary, error)

	// FindFlatRows 完全平铺投影（内连接订单项与商品，1次查询）
	// Inner join: orders with zero line items do not appear in the output.
	FindFlatRows(ctx context.Context) ([]FlatRow, error)
}

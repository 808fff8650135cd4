package item

import "context"

// Repository 商品仓储接口
// FindByID returns (nil, nil) when the item is absent; callers must nil-check.
type Repository interface {
	// Save 保存商品（创建或更新，含库存变更的持久化）
	Save(ctx context.Context, it *Item) error

	// FindByID 按ID查找商品，未找到时返回 (nil, nil)
	FindByID(ctx context.Context, id string) (*Item, error)

	// FindByIDs 按ID集合批量查找商品
	FindByIDs(ctx context.Context, ids []string) ([]*Item, error)

	// FindAll 查询全部商品
	FindAll(ctx context.Context) ([]*Item, error)
}

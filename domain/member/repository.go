package member

import "context"

// Repository 会员仓储接口
// Lookups by ID return (nil, nil) when the member is absent; callers must
// nil-check. Only query failures surface as errors.
type Repository interface {
	// Save 保存会员（创建或更新）
	Save(ctx context.Context, m *Member) error

	// FindByID 按ID查找会员，未找到时返回 (nil, nil)
	FindByID(ctx context.Context, id string) (*Member, error)

	// FindAll 查询全部会员
	FindAll(ctx context.Context) ([]*Member, error)

	// FindByName 按名称精确查找（注册重名校验用）
	FindByName(ctx context.Context, name string) ([]*Member, error)
}

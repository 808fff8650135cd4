package order

import "context"

// MaxSearchResults 无过滤条件时条件检索的最大返回行数
const MaxSearchResults = 1000

// MaxJoinFetchResults 集合join一把捞（FindAllWithItems）的订单数上限
// The exploded row set makes this the memory-risky path; it is capped instead
// of paginated because a query-level limit would page joined rows, not orders.
const MaxJoinFetchResults = 100

// Search 订单检索条件
// Status is an exact match; MemberName a substring (contains) match. Both
// combine with AND; zero values mean "no filter".
type Search struct {
	Status     Status
	MemberName string
}

// IsEmpty 是否无任何过滤条件
func (s Search) IsEmpty() bool {
	return s.Status == "" && s.MemberName == ""
}

// Repository 订单仓储接口
//
// The load operations differ only in which associations arrive resolved:
//
//	FindAllByCriteria        shallow (FKs only)
//	FindAllWithMemberDelivery to-one associations joined, items lazy
//	FindAllWithItems         everything joined in one statement
//
// Shallow loads pair with the Resolve* operations below; each Resolve call
// is at least one extra query, and the caller wears that cost explicitly.
type Repository interface {
	// Save 保存订单聚合（订单、配送、订单项，同一事务内）
	Save(ctx context.Context, o *Order) error

	// FindByID 按ID加载完整聚合（delivery、订单项及其商品均已解析）
	// 未找到时返回 (nil, nil)
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindAllByCriteria 条件检索，返回浅聚合
	// 结果上限为 MaxSearchResults 行（无论是否带过滤条件）
	FindAllByCriteria(ctx context.Context, search Search) ([]*Order, error)

	// FindAllWithMemberDelivery 仅join to-one关联（member、delivery），
	// offset/limit 在查询层生效，分页是页准确的
	FindAllWithMemberDelivery(ctx context.Context, offset, limit int) ([]*Order, error)

	// FindAllWithItems 单条语句join全部关联
	// 集合join使行数按订单项数膨胀，装配时按订单ID去重；
	// 不支持分页，上限 MaxJoinFetchResults
	FindAllWithItems(ctx context.Context) ([]*Order, error)

	// ResolveMember 解析订单的会员关联（1次查询）
	ResolveMember(ctx context.Context, o *Order) error

	// ResolveDelivery 解析订单的配送关联（1次查询）
	ResolveDelivery(ctx context.Context, o *Order) error

	// ResolveItems 解析单个订单的订单项及其商品
	// 1次订单项查询 + 每个不同商品1次查询（v1/v2的扇出来源）
	ResolveItems(ctx context.Context, o *Order) error

	// ResolveItemsBatched 为一批订单解析订单项及其商品
	// IN查询按批大小分块，后续查询次数有界，与页大小无关
	ResolveItemsBatched(ctx context.Context, orders []*Order) error
}

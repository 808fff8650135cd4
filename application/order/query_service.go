package order

import (
	"context"
	"time"

	"shop/domain/order"
	"shop/infrastructure/cache"
	"shop/infrastructure/persistence"
	"shop/pkg/logger"
	"shop/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Read strategy labels, used in metrics and logs.
const (
	StrategyV1  = "v1"
	StrategyV2  = "v2"
	StrategyV3  = "v3"
	StrategyV31 = "v3.1"
	StrategyV4  = "v4"
	StrategyV5  = "v5"
	StrategyV6  = "v6"

	StrategySimpleV1 = "simple-v1"
	StrategySimpleV2 = "simple-v2"
	StrategySimpleV3 = "simple-v3"
	StrategySimpleV4 = "simple-v4"
)

// QueryService Order read side.
//
// Every List method answers the same question with a different query plan;
// the version suffix tracks the escalation from per-row fan-out (v1/v2)
// through join fetching (v3, v3.1) to projections (v4..v6). Each invocation
// runs inside one read-only transactional scope with a fresh query counter,
// so the cost difference shows up in the metrics and logs.
type QueryService struct {
	orderRepo order.Repository
	queryRepo order.QueryRepository
	db        *gorm.DB
	pageCache *cache.PageCache // nil when caching is disabled
}

// NewQueryService Create order query service
func NewQueryService(
	orderRepo order.Repository,
	queryRepo order.QueryRepository,
	db *gorm.DB,
	pageCache *cache.PageCache,
) *QueryService {
	return &QueryService{
		orderRepo: orderRepo,
		queryRepo: queryRepo,
		db:        db,
		pageCache: pageCache,
	}
}

// runStrategy wraps one strategy invocation: fresh query counter, read-only
// transactional scope, then metrics and a trace of the measured query count.
func (s *QueryService) runStrategy(ctx context.Context, strategy string, fn func(ctx context.Context) error) error {
	ctx = persistence.ContextWithQueryCounter(ctx)
	start := time.Now()

	err := persistence.RunReadOnly(ctx, s.db, fn)

	elapsed := time.Since(start)
	queries, _ := persistence.QueryCount(ctx)
	if err != nil {
		return err
	}

	metrics.ObserveStrategy(strategy, queries, elapsed.Seconds())
	logger.FromContext(ctx).Debug("order read strategy finished",
		zap.String("strategy", strategy),
		zap.Int64("queries", queries),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

// ListOrdersV1 Raw entities via shallow load plus per-order resolution.
// Query cost: 1 + 3N (member, delivery, items per order, plus one query per
// distinct item inside the items resolution). The baseline everything else
// is measured against.
func (s *QueryService) ListOrdersV1(ctx context.Context) ([]*order.Order, error) {
	var orders []*order.Order
	err := s.runStrategy(ctx, StrategyV1, func(ctx context.Context) error {
		var err error
		orders, err = s.loadOrdersEntityWalk(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersV2 Same load plan as v1, but shaped into DTOs.
// Fixes the payload coupling, not the query count.
func (s *QueryService) ListOrdersV2(ctx context.Context) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.runStrategy(ctx, StrategyV2, func(ctx context.Context) error {
		orders, err := s.loadOrdersEntityWalk(ctx)
		if err != nil {
			return err
		}
		responses = convertAll(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *QueryService) loadOrdersEntityWalk(ctx context.Context) ([]*order.Order, error) {
	orders, err := s.orderRepo.FindAllByCriteria(ctx, order.Search{})
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := s.orderRepo.ResolveMember(ctx, o); err != nil {
			return nil, err
		}
		if err := s.orderRepo.ResolveDelivery(ctx, o); err != nil {
			return nil, err
		}
		if err := s.orderRepo.ResolveItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// ListOrdersV3 Single-statement join fetch of the whole graph.
// One query, but the row set explodes with line items, pagination is
// impossible, and the result is capped.
func (s *QueryService) ListOrdersV3(ctx context.Context) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.runStrategy(ctx, StrategyV3, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllWithItems(ctx)
		if err != nil {
			return err
		}
		responses = convertAll(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListOrdersV31 To-one join fetch with exact pagination, collections resolved
// in batched IN queries afterwards. 1 + ceil(pageSize/batch)-ish queries and
// page-accurate offsets: the recommended default for paged listings.
// Pages are served from the DTO cache when one is configured.
func (s *QueryService) ListOrdersV31(ctx context.Context, offset, limit int) ([]OrderResponse, error) {
	key := cache.PageKey(StrategyV31, offset, limit)
	if s.pageCache != nil {
		var cached []OrderResponse
		if s.pageCache.Get(ctx, key, &cached) {
			metrics.CacheHits.WithLabelValues(StrategyV31).Inc()
			return cached, nil
		}
	}

	var responses []OrderResponse
	err := s.runStrategy(ctx, StrategyV31, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllWithMemberDelivery(ctx, offset, limit)
		if err != nil {
			return err
		}
		if err := s.orderRepo.ResolveItemsBatched(ctx, orders); err != nil {
			return err
		}
		responses = convertAll(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.pageCache != nil {
		s.pageCache.Set(ctx, key, responses)
	}
	return responses, nil
}

// ListOrdersV4 Order-level projection plus one line-item query per order.
// 1 + N queries, but each moves only the columns the view needs.
func (s *QueryService) ListOrdersV4(ctx context.Context) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.runStrategy(ctx, StrategyV4, func(ctx context.Context) error {
		summaries, err := s.queryRepo.FindSummaries(ctx)
		if err != nil {
			return err
		}

		responses = make([]OrderResponse, len(summaries))
		for i, sum := range summaries {
			items, err := s.queryRepo.FindItemSummaries(ctx, sum.OrderID)
			if err != nil {
				return err
			}
			responses[i] = assembleResponse(sum, items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListOrdersV5 Order-level projection plus one IN query for every line item.
// Exactly two statements regardless of order count; the join happens in
// memory by order ID.
func (s *QueryService) ListOrdersV5(ctx context.Context) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.runStrategy(ctx, StrategyV5, func(ctx context.Context) error {
		summaries, err := s.queryRepo.FindSummaries(ctx)
		if err != nil {
			return err
		}

		orderIDs := make([]string, len(summaries))
		for i, sum := range summaries {
			orderIDs[i] = sum.OrderID
		}
		items, err := s.queryRepo.FindItemSummariesByOrderIDs(ctx, orderIDs)
		if err != nil {
			return err
		}

		itemsByOrder := make(map[string][]order.ItemSummary, len(summaries))
		for _, it := range items {
			itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
		}

		responses = make([]OrderResponse, len(summaries))
		for i, sum := range summaries {
			responses[i] = assembleResponse(sum, itemsByOrder[sum.OrderID])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListOrdersV6 One fully flat statement, regrouped in memory.
// A single query moving duplicated order-level columns per row; orders
// without line items vanish through the inner join, and order-level
// pagination is meaningless on the flat rows.
func (s *QueryService) ListOrdersV6(ctx context.Context) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.runStrategy(ctx, StrategyV6, func(ctx context.Context) error {
		rows, err := s.queryRepo.FindFlatRows(ctx)
		if err != nil {
			return err
		}
		responses = GroupFlatRows(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetOrder Load one order as the nested view.
func (s *QueryService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.runStrategy(ctx, "get", func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return order.ErrOrderNotFound
		}
		if err := s.orderRepo.ResolveMember(ctx, o); err != nil {
			return err
		}
		r := convertToResponse(o)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// SearchOrders Criteria search for the admin listing: shallow load filtered
// by status and member name, to-one associations resolved per order.
func (s *QueryService) SearchOrders(ctx context.Context, search order.Search) ([]SimpleOrderResponse, error) {
	var responses []SimpleOrderResponse
	err := s.runStrategy(ctx, "search", func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllByCriteria(ctx, search)
		if err != nil {
			return err
		}
		responses = make([]SimpleOrderResponse, len(orders))
		for i, o := range orders {
			if err := s.orderRepo.ResolveMember(ctx, o); err != nil {
				return err
			}
			if err := s.orderRepo.ResolveDelivery(ctx, o); err != nil {
				return err
			}
			responses[i] = convertToSimpleResponse(o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListSimpleOrdersV1 Raw entities with only the to-one associations resolved.
// 1 + 2N queries; line items stay untouched.
func (s *QueryService) ListSimpleOrdersV1(ctx context.Context) ([]*order.Order, error) {
	var orders []*order.Order
	err := s.runStrategy(ctx, StrategySimpleV1, func(ctx context.Context) error {
		var err error
		orders, err = s.loadOrdersToOneWalk(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListSimpleOrdersV2 Same load plan as simple v1, shaped into flat DTOs.
func (s *QueryService) ListSimpleOrdersV2(ctx context.Context) ([]SimpleOrderResponse, error) {
	var responses []SimpleOrderResponse
	err := s.runStrategy(ctx, StrategySimpleV2, func(ctx context.Context) error {
		orders, err := s.loadOrdersToOneWalk(ctx)
		if err != nil {
			return err
		}
		responses = make([]SimpleOrderResponse, len(orders))
		for i, o := range orders {
			responses[i] = convertToSimpleResponse(o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *QueryService) loadOrdersToOneWalk(ctx context.Context) ([]*order.Order, error) {
	orders, err := s.orderRepo.FindAllByCriteria(ctx, order.Search{})
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := s.orderRepo.ResolveMember(ctx, o); err != nil {
			return nil, err
		}
		if err := s.orderRepo.ResolveDelivery(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// ListSimpleOrdersV3 To-one join fetch in one query, shaped into flat DTOs.
// Row count equals order count, so no explosion and no cap.
func (s *QueryService) ListSimpleOrdersV3(ctx context.Context) ([]SimpleOrderResponse, error) {
	var responses []SimpleOrderResponse
	err := s.runStrategy(ctx, StrategySimpleV3, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllWithMemberDelivery(ctx, 0, order.MaxSearchResults)
		if err != nil {
			return err
		}
		responses = make([]SimpleOrderResponse, len(orders))
		for i, o := range orders {
			responses[i] = convertToSimpleResponse(o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListSimpleOrdersV4 Straight projection: the query selects exactly the view's
// columns and the result needs no conversion at all.
func (s *QueryService) ListSimpleOrdersV4(ctx context.Context) ([]SimpleOrderResponse, error) {
	var responses []SimpleOrderResponse
	err := s.runStrategy(ctx, StrategySimpleV4, func(ctx context.Context) error {
		summaries, err := s.queryRepo.FindSummaries(ctx)
		if err != nil {
			return err
		}
		responses = make([]SimpleOrderResponse, len(summaries))
		for i, sum := range summaries {
			responses[i] = summaryToSimpleResponse(sum)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func convertAll(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = convertToResponse(o)
	}
	return responses
}

func assembleResponse(sum order.Summary, items []order.ItemSummary) OrderResponse {
	itemResponses := make([]OrderItemResponse, len(items))
	for i, it := range items {
		itemResponses[i] = itemSummaryToResponse(it)
	}
	return OrderResponse{
		OrderID:    sum.OrderID,
		MemberName: sum.MemberName,
		OrderDate:  sum.OrderDate,
		Status:     sum.Status,
		Address:    sum.Address,
		OrderItems: itemResponses,
	}
}

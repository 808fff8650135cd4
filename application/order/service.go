package order

import (
	"context"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/infrastructure/cache"
	"shop/infrastructure/persistence"
	"shop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplicationService Order write side - placing and canceling orders
type ApplicationService struct {
	orderRepo  order.Repository
	memberRepo member.Repository
	itemRepo   item.Repository
	db         *gorm.DB
	pageCache  *cache.PageCache // nil when caching is disabled
}

// NewApplicationService Create order application service
func NewApplicationService(
	orderRepo order.Repository,
	memberRepo member.Repository,
	itemRepo item.Repository,
	db *gorm.DB,
	pageCache *cache.PageCache,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:  orderRepo,
		memberRepo: memberRepo,
		itemRepo:   itemRepo,
		db:         db,
		pageCache:  pageCache,
	}
}

// PlaceOrder Place an order.
// Stock is removed inside the order item factory, so the item lookups, the
// stock change and the order insert must commit or roll back together.
func (s *ApplicationService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	var o *order.Order

	err := persistence.RunInTx(ctx, s.db, func(ctx context.Context) error {
		m, err := s.memberRepo.FindByID(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if m == nil {
			return member.ErrMemberNotFound
		}

		orderItems := make([]*order.OrderItem, 0, len(req.Items))
		changedItems := make([]*item.Item, 0, len(req.Items))
		for _, line := range req.Items {
			it, err := s.itemRepo.FindByID(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if it == nil {
				return item.ErrItemNotFound
			}

			oi, err := order.NewOrderItem(it, it.Price(), line.Count)
			if err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
			changedItems = append(changedItems, it)
		}

		delivery := order.NewDelivery(m.Address())
		o, err = order.NewOrder(m, delivery, orderItems...)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		for _, it := range changedItems {
			if err := s.itemRepo.Save(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	logger.FromContext(ctx).Info("order placed",
		zap.String("order_id", o.ID()),
		zap.String("member_id", o.MemberID()),
		zap.Int("total_price", o.TotalPrice()),
	)

	return &PlaceOrderResponse{OrderID: o.ID(), TotalPrice: o.TotalPrice()}, nil
}

// CancelOrder Cancel an order and restock its line items.
// The aggregate enforces the business guards; this method only loads the
// full graph, applies the state change and persists both sides of it.
func (s *ApplicationService) CancelOrder(ctx context.Context, orderID string) error {
	err := persistence.RunInTx(ctx, s.db, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return order.ErrOrderNotFound
		}

		if err := o.Cancel(); err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		for _, oi := range o.Items() {
			if oi.Item() == nil {
				continue
			}
			if err := s.itemRepo.Save(ctx, oi.Item()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache(ctx)
	logger.FromContext(ctx).Info("order canceled", zap.String("order_id", orderID))
	return nil
}

func (s *ApplicationService) invalidateCache(ctx context.Context) {
	if s.pageCache != nil {
		s.pageCache.InvalidateOrders(ctx)
	}
}

package order

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/domain/shared"
	"shop/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The fakes below serve every load operation from one shared fixture, so the
// strategies can be checked against each other: different query plans, same
// answer.

type lineFixture struct {
	id     string
	itemID string
	price  int
	count  int
}

type orderFixture struct {
	id         string
	memberID   string
	deliveryID string
	date       time.Time
	status     order.Status
	lines      []lineFixture
}

type fakeStore struct {
	orders     []orderFixture
	members    map[string]*member.Member
	deliveries map[string]*order.Delivery
	items      map[string]*item.Item
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()

	kim := member.RebuildFromDTO(member.ReconstructionDTO{
		ID: "member-1", Name: "kim",
		Address: shared.NewAddress("Seoul", "Teheran-ro 1", "06000"),
	})
	lee := member.RebuildFromDTO(member.ReconstructionDTO{
		ID: "member-2", Name: "lee",
		Address: shared.NewAddress("Busan", "Haeundae 2", "48000"),
	})

	book1 := item.RebuildFromDTO(item.ReconstructionDTO{
		ID: "item-1", Kind: item.KindBook, Name: "BOOK1", Price: 10000, StockQuantity: 100,
	})
	book2 := item.RebuildFromDTO(item.ReconstructionDTO{
		ID: "item-2", Kind: item.KindBook, Name: "BOOK2", Price: 20000, StockQuantity: 100,
	})

	d1 := order.RebuildDeliveryFromDTO(order.DeliveryReconstructionDTO{
		ID: "delivery-1", Address: kim.Address(), Status: order.DeliveryReady,
	})
	d2 := order.RebuildDeliveryFromDTO(order.DeliveryReconstructionDTO{
		ID: "delivery-2", Address: lee.Address(), Status: order.DeliveryReady,
	})
	d3 := order.RebuildDeliveryFromDTO(order.DeliveryReconstructionDTO{
		ID: "delivery-3", Address: kim.Address(), Status: order.DeliveryReady,
	})

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &fakeStore{
		orders: []orderFixture{
			{
				id: "order-1", memberID: "member-1", deliveryID: "delivery-1",
				date: base, status: order.StatusOrdered,
				lines: []lineFixture{
					{id: "line-1", itemID: "item-1", price: 10000, count: 1},
					{id: "line-2", itemID: "item-2", price: 20000, count: 2},
				},
			},
			{
				id: "order-2", memberID: "member-2", deliveryID: "delivery-2",
				date: base.Add(time.Hour), status: order.StatusOrdered,
				lines: []lineFixture{
					{id: "line-3", itemID: "item-1", price: 10000, count: 3},
				},
			},
			// 没有订单项的订单：内连接路径会丢弃它
			{
				id: "order-3", memberID: "member-1", deliveryID: "delivery-3",
				date: base.Add(2 * time.Hour), status: order.StatusCanceled,
			},
		},
		members:    map[string]*member.Member{"member-1": kim, "member-2": lee},
		deliveries: map[string]*order.Delivery{"delivery-1": d1, "delivery-2": d2, "delivery-3": d3},
		items:      map[string]*item.Item{"item-1": book1, "item-2": book2},
	}
}

func (f *fakeStore) shallow(fx orderFixture) *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         fx.id,
		MemberID:   fx.memberID,
		DeliveryID: fx.deliveryID,
		OrderDate:  fx.date,
		Status:     fx.status,
	})
}

func (f *fakeStore) orderItems(fx orderFixture) []*order.OrderItem {
	items := make([]*order.OrderItem, len(fx.lines))
	for i, l := range fx.lines {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:         l.id,
			ItemID:     l.itemID,
			Item:       f.items[l.itemID],
			OrderPrice: l.price,
			Count:      l.count,
		})
	}
	return items
}

func (f *fakeStore) fixtureByID(id string) (orderFixture, bool) {
	for _, fx := range f.orders {
		if fx.id == id {
			return fx, true
		}
	}
	return orderFixture{}, false
}

// fakeOrderRepository implements order.Repository over the fixture.
type fakeOrderRepository struct {
	store *fakeStore
}

func (r *fakeOrderRepository) Save(ctx context.Context, o *order.Order) error { return nil }

func (r *fakeOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	fx, ok := r.store.fixtureByID(id)
	if !ok {
		return nil, nil
	}
	o := r.store.shallow(fx)
	o.AttachDelivery(r.store.deliveries[fx.deliveryID])
	o.AttachItems(r.store.orderItems(fx))
	return o, nil
}

func (r *fakeOrderRepository) FindAllByCriteria(ctx context.Context, search order.Search) ([]*order.Order, error) {
	var orders []*order.Order
	for _, fx := range r.store.orders {
		if search.Status != "" && fx.status != search.Status {
			continue
		}
		if search.MemberName != "" {
			m := r.store.members[fx.memberID]
			if m == nil || !strings.Contains(m.Name(), search.MemberName) {
				continue
			}
		}
		orders = append(orders, r.store.shallow(fx))
	}
	return orders, nil
}

func (r *fakeOrderRepository) FindAllWithMemberDelivery(ctx context.Context, offset, limit int) ([]*order.Order, error) {
	var orders []*order.Order
	for i := offset; i < len(r.store.orders) && len(orders) < limit; i++ {
		fx := r.store.orders[i]
		o := r.store.shallow(fx)
		o.AttachMember(r.store.members[fx.memberID])
		o.AttachDelivery(r.store.deliveries[fx.deliveryID])
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *fakeOrderRepository) FindAllWithItems(ctx context.Context) ([]*order.Order, error) {
	var orders []*order.Order
	for _, fx := range r.store.orders {
		if len(fx.lines) == 0 {
			continue // inner join drops order rows without line items
		}
		o := r.store.shallow(fx)
		o.AttachMember(r.store.members[fx.memberID])
		o.AttachDelivery(r.store.deliveries[fx.deliveryID])
		o.AttachItems(r.store.orderItems(fx))
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *fakeOrderRepository) ResolveMember(ctx context.Context, o *order.Order) error {
	o.AttachMember(r.store.members[o.MemberID()])
	return nil
}

func (r *fakeOrderRepository) ResolveDelivery(ctx context.Context, o *order.Order) error {
	o.AttachDelivery(r.store.deliveries[o.DeliveryID()])
	return nil
}

func (r *fakeOrderRepository) ResolveItems(ctx context.Context, o *order.Order) error {
	fx, _ := r.store.fixtureByID(o.ID())
	o.AttachItems(r.store.orderItems(fx))
	return nil
}

func (r *fakeOrderRepository) ResolveItemsBatched(ctx context.Context, orders []*order.Order) error {
	for _, o := range orders {
		if err := r.ResolveItems(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

var _ order.Repository = (*fakeOrderRepository)(nil)

// fakeQueryRepository implements order.QueryRepository over the same fixture.
type fakeQueryRepository struct {
	store *fakeStore
}

func (r *fakeQueryRepository) FindSummaries(ctx context.Context) ([]order.Summary, error) {
	summaries := make([]order.Summary, len(r.store.orders))
	for i, fx := range r.store.orders {
		summaries[i] = order.Summary{
			OrderID:    fx.id,
			MemberName: r.store.members[fx.memberID].Name(),
			OrderDate:  fx.date,
			Status:     fx.status,
			Address:    r.store.deliveries[fx.deliveryID].Address(),
		}
	}
	return summaries, nil
}

func (r *fakeQueryRepository) FindItemSummaries(ctx context.Context, orderID string) ([]order.ItemSummary, error) {
	fx, _ := r.store.fixtureByID(orderID)
	return r.lineSummaries(fx), nil
}

func (r *fakeQueryRepository) FindItemSummariesByOrderIDs(ctx context.Context, orderIDs []string) ([]order.ItemSummary, error) {
	var summaries []order.ItemSummary
	for _, id := range orderIDs {
		fx, ok := r.store.fixtureByID(id)
		if !ok {
			continue
		}
		summaries = append(summaries, r.lineSummaries(fx)...)
	}
	return summaries, nil
}

func (r *fakeQueryRepository) FindFlatRows(ctx context.Context) ([]order.FlatRow, error) {
	var rows []order.FlatRow
	for _, fx := range r.store.orders {
		for _, l := range fx.lines {
			rows = append(rows, order.FlatRow{
				OrderID:    fx.id,
				MemberName: r.store.members[fx.memberID].Name(),
				OrderDate:  fx.date,
				Status:     fx.status,
				Address:    r.store.deliveries[fx.deliveryID].Address(),
				ItemName:   r.store.items[l.itemID].Name(),
				OrderPrice: l.price,
				Count:      l.count,
			})
		}
	}
	return rows, nil
}

func (r *fakeQueryRepository) lineSummaries(fx orderFixture) []order.ItemSummary {
	summaries := make([]order.ItemSummary, len(fx.lines))
	for i, l := range fx.lines {
		summaries[i] = order.ItemSummary{
			OrderID:    fx.id,
			ItemName:   r.store.items[l.itemID].Name(),
			OrderPrice: l.price,
			Count:      l.count,
		}
	}
	return summaries
}

var _ order.QueryRepository = (*fakeQueryRepository)(nil)

func newTestQueryService(t *testing.T) (*QueryService, context.Context) {
	t.Helper()
	store := newFakeStore(t)
	svc := NewQueryService(&fakeOrderRepository{store: store}, &fakeQueryRepository{store: store}, nil, nil)

	// A transaction already in the context makes the read-only scope join it
	// instead of opening one, so no database is needed.
	ctx := persistence.ContextWithTx(context.Background(), &gorm.DB{})
	return svc, ctx
}

func orderIDs(responses []OrderResponse) []string {
	ids := make([]string, len(responses))
	for i, r := range responses {
		ids[i] = r.OrderID
	}
	return ids
}

func TestNestedStrategiesAgree(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	v2, err := svc.ListOrdersV2(ctx)
	require.NoError(t, err)
	v31, err := svc.ListOrdersV31(ctx, 0, 100)
	require.NoError(t, err)
	v4, err := svc.ListOrdersV4(ctx)
	require.NoError(t, err)
	v5, err := svc.ListOrdersV5(ctx)
	require.NoError(t, err)

	// 所有含空订单的策略给出同一答案
	assert.Equal(t, v2, v31)
	assert.Equal(t, v2, v4)
	assert.Equal(t, v2, v5)
	assert.Equal(t, []string{"order-1", "order-2", "order-3"}, orderIDs(v2))
	assert.Empty(t, v2[2].OrderItems)
}

func TestInnerJoinStrategiesDropEmptyOrders(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	v3, err := svc.ListOrdersV3(ctx)
	require.NoError(t, err)
	v6, err := svc.ListOrdersV6(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"order-1", "order-2"}, orderIDs(v3))
	assert.Equal(t, orderIDs(v3), orderIDs(v6))

	// 除空订单外与其它策略一致
	v2, err := svc.ListOrdersV2(ctx)
	require.NoError(t, err)
	assert.Equal(t, v2[:2], v3)
	assert.Equal(t, v2[:2], v6)
}

func TestV1ResolvesFullGraph(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	orders, err := svc.ListOrdersV1(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	for _, o := range orders {
		assert.NotNil(t, o.Member())
		assert.NotNil(t, o.Delivery())
		assert.True(t, o.ItemsResolved())
	}
	assert.Equal(t, "kim", orders[0].Member().Name())
	assert.Len(t, orders[0].Items(), 2)
	assert.Empty(t, orders[2].Items())
}

func TestV31PagesAreDisjoint(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	page1, err := svc.ListOrdersV31(ctx, 0, 2)
	require.NoError(t, err)
	page2, err := svc.ListOrdersV31(ctx, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"order-1", "order-2"}, orderIDs(page1))
	assert.Equal(t, []string{"order-3"}, orderIDs(page2))
}

// 缓存命中必须返回和未命中相同的页：DTO 经 JSON 往返后不得失真
// Address has private fields, so this breaks silently if its marshal and
// unmarshal methods ever drift apart.
func TestCachedPageSurvivesJSONRoundTrip(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	page, err := svc.ListOrdersV31(ctx, 0, 100)
	require.NoError(t, err)
	require.NotEmpty(t, page)

	payload, err := json.Marshal(page)
	require.NoError(t, err)

	var cached []OrderResponse
	require.NoError(t, json.Unmarshal(payload, &cached))

	assert.Equal(t, page, cached)
	assert.Equal(t, "Seoul", cached[0].Address.City())
	assert.Equal(t, "Teheran-ro 1", cached[0].Address.Street())
	assert.Equal(t, "06000", cached[0].Address.Zipcode())
}

func TestSearchOrdersFiltersByStatus(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	got, err := svc.SearchOrders(ctx, order.Search{Status: order.StatusCanceled})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "order-3", got[0].OrderID)
	assert.Equal(t, "kim", got[0].MemberName)
}

func TestSearchOrdersFiltersByMemberNameSubstring(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	got, err := svc.SearchOrders(ctx, order.Search{MemberName: "ee"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "order-2", got[0].OrderID)
	assert.Equal(t, "lee", got[0].MemberName)

	// combined filters are ANDed
	got, err = svc.SearchOrders(ctx, order.Search{MemberName: "ee", Status: order.StatusCanceled})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSimpleStrategiesAgree(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	v2, err := svc.ListSimpleOrdersV2(ctx)
	require.NoError(t, err)
	v3, err := svc.ListSimpleOrdersV3(ctx)
	require.NoError(t, err)
	v4, err := svc.ListSimpleOrdersV4(ctx)
	require.NoError(t, err)

	assert.Equal(t, v2, v3)
	assert.Equal(t, v2, v4)
	require.Len(t, v2, 3)
	assert.Equal(t, "Busan", v2[1].Address.City())
}

func TestSimpleV1LeavesItemsUnresolved(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	orders, err := svc.ListSimpleOrdersV1(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	for _, o := range orders {
		assert.NotNil(t, o.Member())
		assert.NotNil(t, o.Delivery())
		assert.False(t, o.ItemsResolved())
	}
}

func TestGetOrder(t *testing.T) {
	svc, ctx := newTestQueryService(t)

	got, err := svc.GetOrder(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", got.OrderID)
	assert.Equal(t, "kim", got.MemberName)
	assert.Len(t, got.OrderItems, 2)

	_, err = svc.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

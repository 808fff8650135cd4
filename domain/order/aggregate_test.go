package order

import (
	"testing"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMember(t *testing.T) *member.Member {
	t.Helper()
	m, err := member.NewMember("kim", shared.NewAddress("Seoul", "Teheran-ro 1", "06000"))
	require.NoError(t, err)
	return m
}

func testBook(t *testing.T, stock int) *item.Item {
	t.Helper()
	it, err := item.NewBook("book", 10000, stock, "author", "isbn")
	require.NoError(t, err)
	return it
}

func TestNewOrderItemRemovesStock(t *testing.T) {
	it := testBook(t, 10)

	oi, err := NewOrderItem(it, it.Price(), 3)
	require.NoError(t, err)

	assert.Equal(t, 7, it.StockQuantity())
	assert.Equal(t, 30000, oi.TotalPrice())
	assert.Equal(t, it.ID(), oi.ItemID())
}

func TestNewOrderItemInsufficientStock(t *testing.T) {
	it := testBook(t, 2)

	_, err := NewOrderItem(it, it.Price(), 3)
	assert.ErrorIs(t, err, item.ErrInsufficientStock)
	// 被拒绝的下单不扣库存
	assert.Equal(t, 2, it.StockQuantity())
}

func TestNewOrderItemInvalidQuantity(t *testing.T) {
	it := testBook(t, 2)

	_, err := NewOrderItem(it, it.Price(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrderItem(it, it.Price(), -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewOrder(t *testing.T) {
	m := testMember(t)
	it := testBook(t, 10)
	oi, err := NewOrderItem(it, it.Price(), 2)
	require.NoError(t, err)
	oi2, err := NewOrderItem(it, it.Price(), 1)
	require.NoError(t, err)

	o, err := NewOrder(m, NewDelivery(m.Address()), oi, oi2)
	require.NoError(t, err)

	assert.Equal(t, StatusOrdered, o.Status())
	assert.Equal(t, m.ID(), o.MemberID())
	assert.Equal(t, 30000, o.TotalPrice())
	assert.True(t, o.ItemsResolved())
	assert.Equal(t, DeliveryReady, o.Delivery().Status())
	assert.True(t, o.Delivery().Address().Equals(m.Address()))
}

func TestNewOrderRequiresItems(t *testing.T) {
	m := testMember(t)

	_, err := NewOrder(m, NewDelivery(m.Address()))
	assert.ErrorIs(t, err, ErrEmptyOrderItems)
}

func TestCancelRestocks(t *testing.T) {
	m := testMember(t)
	it := testBook(t, 10)
	oi, err := NewOrderItem(it, it.Price(), 4)
	require.NoError(t, err)

	o, err := NewOrder(m, NewDelivery(m.Address()), oi)
	require.NoError(t, err)
	require.Equal(t, 6, it.StockQuantity())

	require.NoError(t, o.Cancel())

	assert.Equal(t, StatusCanceled, o.Status())
	assert.Equal(t, 10, it.StockQuantity())
}

func TestCancelTwiceRejected(t *testing.T) {
	m := testMember(t)
	it := testBook(t, 10)
	oi, err := NewOrderItem(it, it.Price(), 4)
	require.NoError(t, err)

	o, err := NewOrder(m, NewDelivery(m.Address()), oi)
	require.NoError(t, err)

	require.NoError(t, o.Cancel())
	err = o.Cancel()
	assert.ErrorIs(t, err, ErrAlreadyCanceled)
	// 重复取消不会二次回补
	assert.Equal(t, 10, it.StockQuantity())
}

func TestCancelDeliveredRejected(t *testing.T) {
	m := testMember(t)
	it := testBook(t, 10)
	oi, err := NewOrderItem(it, it.Price(), 1)
	require.NoError(t, err)

	delivery := RebuildDeliveryFromDTO(DeliveryReconstructionDTO{
		ID:      "delivery-1",
		Address: m.Address(),
		Status:  DeliveryComp,
	})
	o := RebuildFromDTO(ReconstructionDTO{
		ID:         "order-1",
		MemberID:   m.ID(),
		DeliveryID: delivery.ID(),
		Status:     StatusOrdered,
		Delivery:   delivery,
		Items:      []*OrderItem{oi},
	})

	assert.ErrorIs(t, o.Cancel(), ErrAlreadyDelivered)
	assert.Equal(t, StatusOrdered, o.Status())
}

func TestCancelShallowAggregateRejected(t *testing.T) {
	o := RebuildFromDTO(ReconstructionDTO{
		ID:         "order-1",
		MemberID:   "member-1",
		DeliveryID: "delivery-1",
		Status:     StatusOrdered,
	})

	assert.False(t, o.ItemsResolved())
	assert.ErrorIs(t, o.Cancel(), ErrAssociationsNotLoaded)
}

func TestAttachItemsMarksResolved(t *testing.T) {
	o := RebuildFromDTO(ReconstructionDTO{
		ID:     "order-1",
		Status: StatusOrdered,
	})
	require.False(t, o.ItemsResolved())

	// 空集合也算已解析：没有订单项和尚未加载是两回事
	o.AttachItems([]*OrderItem{})
	assert.True(t, o.ItemsResolved())
	assert.Empty(t, o.Items())
}

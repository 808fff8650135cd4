package order

import (
	"testing"
	"time"

	"shop/domain/order"
	"shop/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDate  = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	seoulAddr = shared.NewAddress("Seoul", "Teheran-ro 1", "06000")
	busanAddr = shared.NewAddress("Busan", "Haeundae 2", "48000")
)

func flatRow(orderID, memberName, itemName string, price, count int) order.FlatRow {
	addr := seoulAddr
	if memberName == "lee" {
		addr = busanAddr
	}
	return order.FlatRow{
		OrderID:    orderID,
		MemberName: memberName,
		OrderDate:  testDate,
		Status:     order.StatusOrdered,
		Address:    addr,
		ItemName:   itemName,
		OrderPrice: price,
		Count:      count,
	}
}

func TestGroupFlatRows(t *testing.T) {
	rows := []order.FlatRow{
		flatRow("order-1", "kim", "BOOK1", 10000, 1),
		flatRow("order-1", "kim", "BOOK2", 20000, 2),
		flatRow("order-2", "lee", "BOOK3", 30000, 3),
	}

	got := GroupFlatRows(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "order-1", got[0].OrderID)
	assert.Equal(t, "kim", got[0].MemberName)
	require.Len(t, got[0].OrderItems, 2)
	assert.Equal(t, "BOOK1", got[0].OrderItems[0].ItemName)
	assert.Equal(t, "BOOK2", got[0].OrderItems[1].ItemName)

	assert.Equal(t, "order-2", got[1].OrderID)
	require.Len(t, got[1].OrderItems, 1)
	assert.Equal(t, "BOOK3", got[1].OrderItems[0].ItemName)
}

func TestGroupFlatRowsKeepsFirstAppearanceOrder(t *testing.T) {
	// Interleaved rows of the same order merge into the slot of its first row.
	rows := []order.FlatRow{
		flatRow("order-2", "lee", "A", 1, 1),
		flatRow("order-1", "kim", "B", 2, 1),
		flatRow("order-2", "lee", "C", 3, 1),
	}

	got := GroupFlatRows(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "order-2", got[0].OrderID)
	assert.Equal(t, []OrderItemResponse{
		{ItemName: "A", OrderPrice: 1, Count: 1},
		{ItemName: "C", OrderPrice: 3, Count: 1},
	}, got[0].OrderItems)
	assert.Equal(t, "order-1", got[1].OrderID)
}

func TestGroupFlatRowsNormalizesTimezone(t *testing.T) {
	kst := time.FixedZone("KST", 9*3600)
	rowUTC := flatRow("order-1", "kim", "A", 1, 1)
	rowKST := rowUTC
	rowKST.OrderDate = rowUTC.OrderDate.In(kst)
	rowKST.ItemName = "B"

	// 同一时刻不同时区表示的行仍归入同一订单
	got := GroupFlatRows([]order.FlatRow{rowUTC, rowKST})
	require.Len(t, got, 1)
	assert.Len(t, got[0].OrderItems, 2)
}

func TestGroupFlatRowsEmpty(t *testing.T) {
	got := GroupFlatRows(nil)
	assert.Empty(t, got)
}

func TestGroupFlatRowsDistinguishesOrderLevelFields(t *testing.T) {
	// Same order ID with a different member name is a different group.
	a := flatRow("order-1", "kim", "A", 1, 1)
	b := flatRow("order-1", "lee", "B", 2, 1)

	got := GroupFlatRows([]order.FlatRow{a, b})
	assert.Len(t, got, 2)
}

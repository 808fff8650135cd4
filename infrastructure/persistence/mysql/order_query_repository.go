package mysql

import (
	"context"
	"time"

	"shop/domain/order"
	"shop/domain/shared"
	"shop/infrastructure/persistence"

	"gorm.io/gorm"
)

// OrderQueryRepository Read-model side of the order store.
// Projections are shaped in SQL and scanned straight into row structs; no
// aggregate is materialized. Each method issues exactly one statement.
type OrderQueryRepository struct {
	db *gorm.DB
}

// NewOrderQueryRepository Create order read-model repository
func NewOrderQueryRepository(db *gorm.DB) *OrderQueryRepository {
	return &OrderQueryRepository{db: db}
}

func (r *OrderQueryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

type summaryRow struct {
	OrderID    string    `gorm:"column:order_id"`
	MemberName string    `gorm:"column:member_name"`
	OrderDate  time.Time `gorm:"column:order_date"`
	Status     string    `gorm:"column:status"`
	City       string    `gorm:"column:city"`
	Street     string    `gorm:"column:street"`
	Zipcode    string    `gorm:"column:zipcode"`
}

// FindSummaries Order-level projection joining member and delivery (one query)
func (r *OrderQueryRepository) FindSummaries(ctx context.Context) ([]order.Summary, error) {
	const query = `
SELECT o.id AS order_id,
       m.name AS member_name,
       o.order_date,
       o.status,
       d.city,
       d.street,
       d.zipcode
FROM orders o
JOIN members m ON m.id = o.member_id
JOIN deliveries d ON d.id = o.delivery_id
ORDER BY o.order_date, o.id`

	var rows []summaryRow
	if err := r.getDB(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]order.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = order.Summary{
			OrderID:    row.OrderID,
			MemberName: row.MemberName,
			OrderDate:  row.OrderDate,
			Status:     order.Status(row.Status),
			Address:    shared.NewAddress(row.City, row.Street, row.Zipcode),
		}
	}
	return summaries, nil
}

type itemSummaryRow struct {
	OrderID    string `gorm:"column:order_id"`
	ItemName   string `gorm:"column:item_name"`
	OrderPrice int    `gorm:"column:order_price"`
	Count      int    `gorm:"column:count"`
}

const itemSummarySelect = `
SELECT oi.order_id,
       i.name AS item_name,
       oi.order_price,
       oi.count
FROM order_items oi
JOIN items i ON i.id = oi.item_id`

// FindItemSummaries Line-item projection of one order (one query)
func (r *OrderQueryRepository) FindItemSummaries(ctx context.Context, orderID string) ([]order.ItemSummary, error) {
	query := itemSummarySelect + `
WHERE oi.order_id = ?
ORDER BY oi.id`

	var rows []itemSummaryRow
	if err := r.getDB(ctx).Raw(query, orderID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toItemSummaries(rows), nil
}

// FindItemSummariesByOrderIDs Line-item projection of a batch of orders,
// collected with a single IN query.
func (r *OrderQueryRepository) FindItemSummariesByOrderIDs(ctx context.Context, orderIDs []string) ([]order.ItemSummary, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	query := itemSummarySelect + `
WHERE oi.order_id IN ?
ORDER BY oi.order_id, oi.id`

	var rows []itemSummaryRow
	if err := r.getDB(ctx).Raw(query, orderIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toItemSummaries(rows), nil
}

func toItemSummaries(rows []itemSummaryRow) []order.ItemSummary {
	summaries := make([]order.ItemSummary, len(rows))
	for i, row := range rows {
		summaries[i] = order.ItemSummary{
			OrderID:    row.OrderID,
			ItemName:   row.ItemName,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		}
	}
	return summaries
}

type flatRow struct {
	OrderID    string    `gorm:"column:order_id"`
	MemberName string    `gorm:"column:member_name"`
	OrderDate  time.Time `gorm:"column:order_date"`
	Status     string    `gorm:"column:status"`
	City       string    `gorm:"column:city"`
	Street     string    `gorm:"column:street"`
	Zipcode    string    `gorm:"column:zipcode"`
	ItemName   string    `gorm:"column:item_name"`
	OrderPrice int       `gorm:"column:order_price"`
	Count      int       `gorm:"column:count"`
}

// FindFlatRows Fully flat projection: one row per (order, line item) pair,
// everything joined in one statement. The inner join on order_items means
// orders without line items never appear in the result.
func (r *OrderQueryRepository) FindFlatRows(ctx context.Context) ([]order.FlatRow, error) {
	const query = `
SELECT o.id AS order_id,
       m.name AS member_name,
       o.order_date,
       o.status,
       d.city,
       d.street,
       d.zipcode,
       i.name AS item_name,
       oi.order_price,
       oi.count
FROM orders o
JOIN members m ON m.id = o.member_id
JOIN deliveries d ON d.id = o.delivery_id
JOIN order_items oi ON oi.order_id = o.id
JOIN items i ON i.id = oi.item_id
ORDER BY o.order_date, o.id, oi.id`

	var rows []flatRow
	if err := r.getDB(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	flats := make([]order.FlatRow, len(rows))
	for i, row := range rows {
		flats[i] = order.FlatRow{
			OrderID:    row.OrderID,
			MemberName: row.MemberName,
			OrderDate:  row.OrderDate,
			Status:     order.Status(row.Status),
			Address:    shared.NewAddress(row.City, row.Street, row.Zipcode),
			ItemName:   row.ItemName,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		}
	}
	return flats, nil
}

// Compile-time interface implementation check
var _ order.QueryRepository = (*OrderQueryRepository)(nil)

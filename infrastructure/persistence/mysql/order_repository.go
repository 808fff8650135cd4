package mysql

import (
	"context"
	"errors"
	"time"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/domain/shared"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// GORM usage convention: association features (Preload, Joins with models)
// are prohibited. Every query below is written out so the query count of each
// load path stays visible and countable.
type OrderRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewOrderRepository Create order repository
// batchSize bounds the chunk size of IN queries in ResolveItemsBatched.
func NewOrderRepository(db *gorm.DB, batchSize int) *OrderRepository {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OrderRepository{db: db, batchSize: batchSize}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save order aggregate (order, delivery and order items in one transaction)
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, deliveryPO, itemPOs := po.FromOrderDomain(o)

	if deliveryPO != nil {
		if err := tx.Save(deliveryPO).Error; err != nil {
			return err
		}
	}

	if err := tx.Save(orderPO).Error; err != nil {
		return err
	}

	// Delete old order items (simple strategy: delete then insert)
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	return nil
}

// FindByID Load the full aggregate: delivery, order items and their items
// are all resolved. Returns (nil, nil) when absent.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	var deliveryPO po.DeliveryPO
	if err := db.First(&deliveryPO, "id = ?", orderPO.DeliveryID).Error; err != nil {
		return nil, err
	}

	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Order("id").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	items, err := r.attachableItems(db, itemPOs)
	if err != nil {
		return nil, err
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         orderPO.ID,
		MemberID:   orderPO.MemberID,
		DeliveryID: orderPO.DeliveryID,
		OrderDate:  orderPO.OrderDate,
		Status:     order.Status(orderPO.Status),
		Delivery:   deliveryPO.ToDomain(),
		Items:      items,
	}), nil
}

// attachableItems converts order item POs to domain line items with their
// item associations resolved through a single IN query.
func (r *OrderRepository) attachableItems(db *gorm.DB, itemPOs []po.OrderItemPO) ([]*order.OrderItem, error) {
	itemIDs := distinctItemIDs(itemPOs)

	itemsByID := make(map[string]*item.Item, len(itemIDs))
	if len(itemIDs) > 0 {
		var productPOs []po.ItemPO
		if err := db.Where("id IN ?", itemIDs).Find(&productPOs).Error; err != nil {
			return nil, err
		}
		for i := range productPOs {
			itemsByID[productPOs[i].ID] = productPOs[i].ToDomain()
		}
	}

	items := make([]*order.OrderItem, len(itemPOs))
	for i := range itemPOs {
		items[i] = itemPOs[i].ToDomain(itemsByID[itemPOs[i].ItemID])
	}
	return items, nil
}

// buildSearchClause translates the search criteria into SQL fragments.
// Joining members is only needed when the name filter is present; the status
// filter works off the orders table alone.
func buildSearchClause(s order.Search) (joinMember bool, where []string, args []interface{}) {
	if s.Status != "" {
		where = append(where, "o.status = ?")
		args = append(args, string(s.Status))
	}
	if s.MemberName != "" {
		joinMember = true
		where = append(where, "m.name LIKE ?")
		args = append(args, "%"+s.MemberName+"%")
	}
	return joinMember, where, args
}

// FindAllByCriteria Criteria search returning shallow aggregates.
// Capped at MaxSearchResults rows whether or not filters are present.
func (r *OrderRepository) FindAllByCriteria(ctx context.Context, search order.Search) ([]*order.Order, error) {
	joinMember, where, args := buildSearchClause(search)

	tx := r.getDB(ctx).Table("orders o").Select("o.*")
	if joinMember {
		tx = tx.Joins("JOIN members m ON m.id = o.member_id")
	}
	for i, w := range where {
		tx = tx.Where(w, args[i])
	}

	var orderPOs []po.OrderPO
	if err := tx.Order("o.order_date, o.id").
		Limit(order.MaxSearchResults).
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain()
	}
	return orders, nil
}

// orderGraphRow holds one row of the to-one join (orders × members × deliveries).
type orderGraphRow struct {
	OrderID         string    `gorm:"column:order_id"`
	MemberID        string    `gorm:"column:member_id"`
	DeliveryID      string    `gorm:"column:delivery_id"`
	OrderDate       time.Time `gorm:"column:order_date"`
	OrderStatus     string    `gorm:"column:order_status"`
	MemberName      string    `gorm:"column:member_name"`
	MemberCity      string    `gorm:"column:member_city"`
	MemberStreet    string    `gorm:"column:member_street"`
	MemberZipcode   string    `gorm:"column:member_zipcode"`
	MemberCreatedAt time.Time `gorm:"column:member_created_at"`
	MemberUpdatedAt time.Time `gorm:"column:member_updated_at"`
	DeliveryCity    string    `gorm:"column:delivery_city"`
	DeliveryStreet  string    `gorm:"column:delivery_street"`
	DeliveryZipcode string    `gorm:"column:delivery_zipcode"`
	DeliveryStatus  string    `gorm:"column:delivery_status"`
}

func (row *orderGraphRow) toOrder(items []*order.OrderItem) *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         row.OrderID,
		MemberID:   row.MemberID,
		DeliveryID: row.DeliveryID,
		OrderDate:  row.OrderDate,
		Status:     order.Status(row.OrderStatus),
		Member: member.RebuildFromDTO(member.ReconstructionDTO{
			ID:        row.MemberID,
			Name:      row.MemberName,
			Address:   shared.NewAddress(row.MemberCity, row.MemberStreet, row.MemberZipcode),
			CreatedAt: row.MemberCreatedAt,
			UpdatedAt: row.MemberUpdatedAt,
		}),
		Delivery: order.RebuildDeliveryFromDTO(order.DeliveryReconstructionDTO{
			ID:      row.DeliveryID,
			Address: shared.NewAddress(row.DeliveryCity, row.DeliveryStreet, row.DeliveryZipcode),
			Status:  order.DeliveryStatus(row.DeliveryStatus),
		}),
		Items: items,
	})
}

const orderGraphSelect = `
SELECT o.id AS order_id,
       o.member_id,
       o.delivery_id,
       o.order_date,
       o.status AS order_status,
       m.name AS member_name,
       m.city AS member_city,
       m.street AS member_street,
       m.zipcode AS member_zipcode,
       m.created_at AS member_created_at,
       m.updated_at AS member_updated_at,
       d.city AS delivery_city,
       d.street AS delivery_street,
       d.zipcode AS delivery_zipcode,
       d.status AS delivery_status
FROM orders o
JOIN members m ON m.id = o.member_id
JOIN deliveries d ON d.id = o.delivery_id`

// FindAllWithMemberDelivery Join only the to-one associations in one query.
// Row count equals order count, so offset/limit apply at the query level and
// pages are exact. Line items stay unresolved.
func (r *OrderRepository) FindAllWithMemberDelivery(ctx context.Context, offset, limit int) ([]*order.Order, error) {
	var rows []orderGraphRow
	query := orderGraphSelect + `
ORDER BY o.order_date, o.id
LIMIT ? OFFSET ?`
	if err := r.getDB(ctx).Raw(query, limit, offset).Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].toOrder(nil)
	}
	return orders, nil
}

// orderItemGraphRow extends orderGraphRow with the joined line-item and item
// columns of the full-graph statement.
type orderItemGraphRow struct {
	orderGraphRow
	OrderItemID   string `gorm:"column:order_item_id"`
	OrderPrice    int    `gorm:"column:order_price"`
	OrderCount    int    `gorm:"column:order_count"`
	ItemID        string `gorm:"column:item_id"`
	Dtype         string `gorm:"column:dtype"`
	ItemName      string `gorm:"column:item_name"`
	ItemPrice     int    `gorm:"column:item_price"`
	StockQuantity int    `gorm:"column:stock_quantity"`
	Author        string `gorm:"column:author"`
	ISBN          string `gorm:"column:isbn"`
	Artist        string `gorm:"column:artist"`
	Etc           string `gorm:"column:etc"`
	Director      string `gorm:"column:director"`
	Actor         string `gorm:"column:actor"`
}

func (row *orderItemGraphRow) toOrderItem() *order.OrderItem {
	return order.RebuildItemFromDTO(order.ItemReconstructionDTO{
		ID:     row.OrderItemID,
		ItemID: row.ItemID,
		Item: item.RebuildFromDTO(item.ReconstructionDTO{
			ID:            row.ItemID,
			Kind:          item.Kind(row.Dtype),
			Name:          row.ItemName,
			Price:         row.ItemPrice,
			StockQuantity: row.StockQuantity,
			Author:        row.Author,
			ISBN:          row.ISBN,
			Artist:        row.Artist,
			Etc:           row.Etc,
			Director:      row.Director,
			Actor:         row.Actor,
		}),
		OrderPrice: row.OrderPrice,
		Count:      row.OrderCount,
	})
}

// FindAllWithItems Single statement joining every association.
// The collection join explodes the row count by line items per order, so the
// rows are deduplicated by order ID during assembly. Pagination is not
// supported: a query-level LIMIT would page joined rows, not orders. The
// result is capped at MaxJoinFetchResults orders instead.
func (r *OrderRepository) FindAllWithItems(ctx context.Context) ([]*order.Order, error) {
	full := `
SELECT o.id AS order_id,
       o.member_id,
       o.delivery_id,
       o.order_date,
       o.status AS order_status,
       m.name AS member_name,
       m.city AS member_city,
       m.street AS member_street,
       m.zipcode AS member_zipcode,
       m.created_at AS member_created_at,
       m.updated_at AS member_updated_at,
       d.city AS delivery_city,
       d.street AS delivery_street,
       d.zipcode AS delivery_zipcode,
       d.status AS delivery_status,
       oi.id AS order_item_id,
       oi.order_price,
       oi.count AS order_count,
       i.id AS item_id,
       i.dtype,
       i.name AS item_name,
       i.price AS item_price,
       i.stock_quantity,
       i.author,
       i.isbn,
       i.artist,
       i.etc,
       i.director,
       i.actor
FROM orders o
JOIN members m ON m.id = o.member_id
JOIN deliveries d ON d.id = o.delivery_id
JOIN order_items oi ON oi.order_id = o.id
JOIN items i ON i.id = oi.item_id
ORDER BY o.order_date, o.id, oi.id`

	var rows []orderItemGraphRow
	if err := r.getDB(ctx).Raw(full).Scan(&rows).Error; err != nil {
		return nil, err
	}

	// Deduplicate by order ID. Rows arrive grouped by order, so the cap can
	// cut at the first order past the limit without losing rows of kept ones.
	var orders []*order.Order
	var current *order.Order
	var currentItems []*order.OrderItem
	flush := func() {
		if current != nil {
			current.AttachItems(currentItems)
			orders = append(orders, current)
		}
	}
	for i := range rows {
		row := &rows[i]
		if current == nil || current.ID() != row.OrderID {
			flush()
			if len(orders) == order.MaxJoinFetchResults {
				current = nil
				break
			}
			current = row.orderGraphRow.toOrder(nil)
			currentItems = nil
		}
		currentItems = append(currentItems, row.toOrderItem())
	}
	flush()

	return orders, nil
}

// ResolveMember Resolve the member association of one order (one query)
func (r *OrderRepository) ResolveMember(ctx context.Context, o *order.Order) error {
	if o.Member() != nil {
		return nil
	}
	var memberPO po.MemberPO
	if err := r.getDB(ctx).First(&memberPO, "id = ?", o.MemberID()).Error; err != nil {
		return err
	}
	o.AttachMember(memberPO.ToDomain())
	return nil
}

// ResolveDelivery Resolve the delivery association of one order (one query)
func (r *OrderRepository) ResolveDelivery(ctx context.Context, o *order.Order) error {
	if o.Delivery() != nil {
		return nil
	}
	var deliveryPO po.DeliveryPO
	if err := r.getDB(ctx).First(&deliveryPO, "id = ?", o.DeliveryID()).Error; err != nil {
		return err
	}
	o.AttachDelivery(deliveryPO.ToDomain())
	return nil
}

// ResolveItems Resolve the line items of one order together with their items.
// One query for the line items plus one query per distinct item: this is the
// fan-out the entity-walking read paths pay per order.
func (r *OrderRepository) ResolveItems(ctx context.Context, o *order.Order) error {
	if o.ItemsResolved() {
		return nil
	}
	db := r.getDB(ctx)

	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", o.ID()).Order("id").Find(&itemPOs).Error; err != nil {
		return err
	}

	itemsByID := make(map[string]*item.Item)
	for _, id := range distinctItemIDs(itemPOs) {
		var productPO po.ItemPO
		if err := db.First(&productPO, "id = ?", id).Error; err != nil {
			return err
		}
		itemsByID[id] = productPO.ToDomain()
	}

	items := make([]*order.OrderItem, len(itemPOs))
	for i := range itemPOs {
		items[i] = itemPOs[i].ToDomain(itemsByID[itemPOs[i].ItemID])
	}
	o.AttachItems(items)
	return nil
}

// ResolveItemsBatched Resolve line items for a batch of orders.
// IN queries are chunked by the configured batch size, so the follow-up query
// count is bounded regardless of page size.
func (r *OrderRepository) ResolveItemsBatched(ctx context.Context, orders []*order.Order) error {
	db := r.getDB(ctx)

	pending := make([]*order.Order, 0, len(orders))
	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.ItemsResolved() {
			continue
		}
		pending = append(pending, o)
		orderIDs = append(orderIDs, o.ID())
	}
	if len(pending) == 0 {
		return nil
	}

	var itemPOs []po.OrderItemPO
	for _, chunk := range chunkStrings(orderIDs, r.batchSize) {
		var chunkPOs []po.OrderItemPO
		if err := db.Where("order_id IN ?", chunk).Order("id").Find(&chunkPOs).Error; err != nil {
			return err
		}
		itemPOs = append(itemPOs, chunkPOs...)
	}

	itemsByID := make(map[string]*item.Item)
	for _, chunk := range chunkStrings(distinctItemIDs(itemPOs), r.batchSize) {
		var productPOs []po.ItemPO
		if err := db.Where("id IN ?", chunk).Find(&productPOs).Error; err != nil {
			return err
		}
		for i := range productPOs {
			itemsByID[productPOs[i].ID] = productPOs[i].ToDomain()
		}
	}

	byOrder := make(map[string][]*order.OrderItem, len(pending))
	for i := range itemPOs {
		p := &itemPOs[i]
		byOrder[p.OrderID] = append(byOrder[p.OrderID], p.ToDomain(itemsByID[p.ItemID]))
	}
	for _, o := range pending {
		items := byOrder[o.ID()]
		if items == nil {
			items = []*order.OrderItem{}
		}
		o.AttachItems(items)
	}
	return nil
}

// distinctItemIDs collects item IDs in first-appearance order.
func distinctItemIDs(itemPOs []po.OrderItemPO) []string {
	seen := make(map[string]struct{}, len(itemPOs))
	ids := make([]string, 0, len(itemPOs))
	for i := range itemPOs {
		id := itemPOs[i].ItemID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// chunkStrings splits ids into slices of at most size elements.
func chunkStrings(ids []string, size int) [][]string {
	if size <= 0 {
		size = len(ids)
	}
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)

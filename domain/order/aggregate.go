/*
Package order 订单子域

Order is the aggregate root: it owns its Delivery and its OrderItems; the
Member is referenced by ID only. Associations are lazy by contract: a load
operation returns a shallow aggregate carrying foreign keys, and separate
Resolve* repository operations fetch the member, the delivery, and the line
items. The cost of walking the object graph is therefore visible at the call
site instead of hidden behind field access, which is the whole point of the
v1..v6 read endpoints.
*/
package order

import (
	"encoding/json"
	"time"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/shared"

	"github.com/google/uuid"
)

// Status 订单状态枚举
type Status string

const (
	StatusOrdered  Status = "ORDERED"
	StatusCanceled Status = "CANCELED"
)

// DeliveryStatus 配送状态枚举
type DeliveryStatus string

const (
	DeliveryReady DeliveryStatus = "READY"
	DeliveryComp  DeliveryStatus = "COMP"
)

// Order 订单聚合根
type Order struct {
	id         string
	memberID   string
	deliveryID string
	orderDate  time.Time
	status     Status

	// associations; nil / unresolved until a repository Resolve* call or an
	// eager (join-fetch) load populates them
	member        *member.Member
	delivery      *Delivery
	items         []*OrderItem
	itemsResolved bool
}

// OrderItem 订单项 - 聚合内部实体
// Owned by Order, never persisted independently. Captures the price charged
// at order time, which may differ from the item's current price.
type OrderItem struct {
	id         string
	itemID     string
	item       *item.Item // nil until resolved
	orderPrice int
	count      int
}

// Delivery 配送信息 - 由订单独占
type Delivery struct {
	id      string
	address shared.Address
	status  DeliveryStatus
}

// ============================================================================
// 工厂方法
// ============================================================================

// NewOrderItem 创建订单项，同时扣减商品库存
// This is the only way to create an OrderItem: reserving a line always
// reserves stock, so ErrInsufficientStock surfaces here.
func NewOrderItem(it *item.Item, orderPrice, count int) (*OrderItem, error) {
	if it == nil {
		return nil, ErrInvalidOrder
	}
	if count <= 0 {
		return nil, ErrInvalidQuantity
	}
	if err := it.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{
		id:         "order-item-" + uuid.New().String(),
		itemID:     it.ID(),
		item:       it,
		orderPrice: orderPrice,
		count:      count,
	}, nil
}

// NewDelivery 创建配送信息（初始状态READY）
func NewDelivery(address shared.Address) *Delivery {
	return &Delivery{
		id:      "delivery-" + uuid.New().String(),
		address: address,
		status:  DeliveryReady,
	}
}

// NewOrder 创建订单聚合根
// The only entry point for placing an order; the aggregate is fully resolved
// on creation.
func NewOrder(m *member.Member, delivery *Delivery, items ...*OrderItem) (*Order, error) {
	if m == nil || delivery == nil {
		return nil, ErrInvalidOrder
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrderItems
	}

	return &Order{
		id:            "order-" + uuid.New().String(),
		memberID:      m.ID(),
		deliveryID:    delivery.ID(),
		member:        m,
		delivery:      delivery,
		items:         items,
		itemsResolved: true,
		orderDate:     time.Now(),
		status:        StatusOrdered,
	}, nil
}

// ============================================================================
// 业务行为方法
// ============================================================================

// Cancel 取消订单并回补每个订单项的库存
// Business rules: a completed delivery cannot be canceled; canceling twice
// would restock twice, so repeated cancellation is rejected.
// Requires a fully loaded aggregate (delivery and items resolved).
func (o *Order) Cancel() error {
	if o.delivery == nil || !o.itemsResolved {
		return ErrAssociationsNotLoaded
	}
	if o.delivery.status == DeliveryComp {
		return ErrAlreadyDelivered
	}
	if o.status == StatusCanceled {
		return ErrAlreadyCanceled
	}

	o.status = StatusCanceled
	for _, oi := range o.items {
		oi.cancel()
	}
	return nil
}

// cancel 回补单个订单项的库存
func (oi *OrderItem) cancel() {
	if oi.item != nil {
		oi.item.AddStock(oi.count)
	}
}

// TotalPrice 订单总金额
func (o *Order) TotalPrice() int {
	total := 0
	for _, oi := range o.items {
		total += oi.TotalPrice()
	}
	return total
}

// TotalPrice 订单项小计
func (oi *OrderItem) TotalPrice() int {
	return oi.orderPrice * oi.count
}

// ============================================================================
// ReconstructionDTO - 仅供仓储层使用
// ============================================================================

// ReconstructionDTO 订单重建数据传输对象
type ReconstructionDTO struct {
	ID         string
	MemberID   string
	DeliveryID string
	OrderDate  time.Time
	Status     Status
	Member     *member.Member // optional, eager loads only
	Delivery   *Delivery      // optional, eager loads only
	Items      []*OrderItem   // optional, eager loads only
}

// RebuildFromDTO 从DTO重建订单聚合根（仅供仓储层使用）
// When Items is nil the aggregate is shallow: line items count as unresolved.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:            dto.ID,
		memberID:      dto.MemberID,
		deliveryID:    dto.DeliveryID,
		orderDate:     dto.OrderDate,
		status:        dto.Status,
		member:        dto.Member,
		delivery:      dto.Delivery,
		items:         dto.Items,
		itemsResolved: dto.Items != nil,
	}
}

// ItemReconstructionDTO 订单项重建数据传输对象
type ItemReconstructionDTO struct {
	ID         string
	ItemID     string
	Item       *item.Item // optional
	OrderPrice int
	Count      int
}

// RebuildItemFromDTO 从DTO重建订单项（仅供仓储层使用）
func RebuildItemFromDTO(dto ItemReconstructionDTO) *OrderItem {
	return &OrderItem{
		id:         dto.ID,
		itemID:     dto.ItemID,
		item:       dto.Item,
		orderPrice: dto.OrderPrice,
		count:      dto.Count,
	}
}

// DeliveryReconstructionDTO 配送信息重建数据传输对象
type DeliveryReconstructionDTO struct {
	ID      string
	Address shared.Address
	Status  DeliveryStatus
}

// RebuildDeliveryFromDTO 从DTO重建配送信息（仅供仓储层使用）
func RebuildDeliveryFromDTO(dto DeliveryReconstructionDTO) *Delivery {
	return &Delivery{
		id:      dto.ID,
		address: dto.Address,
		status:  dto.Status,
	}
}

// ============================================================================
// 关联解析挂载 - 仅供仓储层 Resolve* 使用
// ============================================================================

// AttachMember 挂载已解析的会员（仅供仓储层使用）
func (o *Order) AttachMember(m *member.Member) { o.member = m }

// AttachDelivery 挂载已解析的配送信息（仅供仓储层使用）
func (o *Order) AttachDelivery(d *Delivery) { o.delivery = d }

// AttachItems 挂载已解析的订单项列表（仅供仓储层使用）
func (o *Order) AttachItems(items []*OrderItem) {
	o.items = items
	o.itemsResolved = true
}

// AttachItem 挂载已解析的商品（仅供仓储层使用）
func (oi *OrderItem) AttachItem(it *item.Item) { oi.item = it }

// ============================================================================
// 只读访问器
// ============================================================================

func (o *Order) ID() string           { return o.id }
func (o *Order) MemberID() string     { return o.memberID }
func (o *Order) DeliveryID() string   { return o.deliveryID }
func (o *Order) OrderDate() time.Time { return o.orderDate }
func (o *Order) Status() Status       { return o.status }

// Member 已解析的会员，未解析时为nil
func (o *Order) Member() *member.Member { return o.member }

// Delivery 已解析的配送信息，未解析时为nil
func (o *Order) Delivery() *Delivery { return o.delivery }

// Items 已解析的订单项列表
// Returns a copy; ItemsResolved distinguishes "no lines" from "not loaded".
func (o *Order) Items() []*OrderItem {
	items := make([]*OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// ItemsResolved 订单项是否已解析
func (o *Order) ItemsResolved() bool { return o.itemsResolved }

func (oi *OrderItem) ID() string       { return oi.id }
func (oi *OrderItem) ItemID() string   { return oi.itemID }
func (oi *OrderItem) Item() *item.Item { return oi.item }
func (oi *OrderItem) OrderPrice() int  { return oi.orderPrice }
func (oi *OrderItem) Count() int       { return oi.count }

func (d *Delivery) ID() string              { return d.id }
func (d *Delivery) Address() shared.Address { return d.address }
func (d *Delivery) Status() DeliveryStatus  { return d.status }

// ============================================================================
// 实体直出序列化（仅v1端点使用）
// ============================================================================
//
// Exposing entities on the wire couples the API to the persistence model and
// drags the whole resolved graph into the payload. It is kept because the v1
// endpoints exist to demonstrate exactly that; every later version shapes a
// DTO instead.

func (o *Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string         `json:"id"`
		MemberID  string         `json:"member_id"`
		Member    *member.Member `json:"member"`
		OrderDate time.Time      `json:"order_date"`
		Status    Status         `json:"status"`
		Delivery  *Delivery      `json:"delivery"`
		Items     []*OrderItem   `json:"order_items"`
	}{
		ID:        o.id,
		MemberID:  o.memberID,
		Member:    o.member,
		OrderDate: o.orderDate,
		Status:    o.status,
		Delivery:  o.delivery,
		Items:     o.items,
	})
}

func (oi *OrderItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string     `json:"id"`
		ItemID     string     `json:"item_id"`
		Item       *item.Item `json:"item"`
		OrderPrice int        `json:"order_price"`
		Count      int        `json:"count"`
	}{
		ID:         oi.id,
		ItemID:     oi.itemID,
		Item:       oi.item,
		OrderPrice: oi.orderPrice,
		Count:      oi.count,
	})
}

func (d *Delivery) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string         `json:"id"`
		Address shared.Address `json:"address"`
		Status  DeliveryStatus `json:"status"`
	}{
		ID:      d.id,
		Address: d.address,
		Status:  d.status,
	})
}

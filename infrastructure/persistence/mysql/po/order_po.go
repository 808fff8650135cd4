package po

import (
	"time"

	"shop/domain/item"
	"shop/domain/order"
	"shop/domain/shared"
)

// OrderPO 订单持久化对象
// Note: Only used for database mapping, does not contain any business logic.
// Foreign keys are plain columns; joins are written out explicitly in the
// repositories so every query stays visible.
type OrderPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	MemberID   string    `gorm:"size:64;index;not null"`
	DeliveryID string    `gorm:"size:64;index;not null"`
	OrderDate  time.Time `gorm:"index;not null"`
	Status     string    `gorm:"size:20;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO 订单项持久化对象
type OrderItemPO struct {
	ID         string `gorm:"primaryKey;size:128"`
	OrderID    string `gorm:"size:64;index;not null"`
	ItemID     string `gorm:"size:64;index;not null"`
	OrderPrice int    `gorm:"not null"`
	Count      int    `gorm:"column:count;not null"`
}

// TableName Specify table name
func (OrderItemPO) TableName() string {
	return "order_items"
}

// DeliveryPO 配送信息持久化对象
type DeliveryPO struct {
	ID      string `gorm:"primaryKey;size:64"`
	City    string `gorm:"size:100"`
	Street  string `gorm:"size:255"`
	Zipcode string `gorm:"size:20"`
	Status  string `gorm:"size:20;not null"`
}

// TableName Specify table name
func (DeliveryPO) TableName() string {
	return "deliveries"
}

// FromOrderDomain 领域聚合转持久化对象（订单、配送、订单项）
func FromOrderDomain(o *order.Order) (*OrderPO, *DeliveryPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:         o.ID(),
		MemberID:   o.MemberID(),
		DeliveryID: o.DeliveryID(),
		OrderDate:  o.OrderDate(),
		Status:     string(o.Status()),
	}

	var deliveryPO *DeliveryPO
	if d := o.Delivery(); d != nil {
		deliveryPO = &DeliveryPO{
			ID:      d.ID(),
			City:    d.Address().City(),
			Street:  d.Address().Street(),
			Zipcode: d.Address().Zipcode(),
			Status:  string(d.Status()),
		}
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, oi := range items {
		itemPOs[i] = OrderItemPO{
			ID:         oi.ID(),
			OrderID:    o.ID(),
			ItemID:     oi.ItemID(),
			OrderPrice: oi.OrderPrice(),
			Count:      oi.Count(),
		}
	}

	return orderPO, deliveryPO, itemPOs
}

// ToDomain 持久化对象转浅聚合（关联未解析）
func (p *OrderPO) ToDomain() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         p.ID,
		MemberID:   p.MemberID,
		DeliveryID: p.DeliveryID,
		OrderDate:  p.OrderDate,
		Status:     order.Status(p.Status),
	})
}

// ToDomain 持久化对象转配送信息领域模型
func (p *DeliveryPO) ToDomain() *order.Delivery {
	return order.RebuildDeliveryFromDTO(order.DeliveryReconstructionDTO{
		ID:      p.ID,
		Address: shared.NewAddress(p.City, p.Street, p.Zipcode),
		Status:  order.DeliveryStatus(p.Status),
	})
}

// ToDomain 持久化对象转订单项领域模型
// it may be nil when the item association is still unresolved.
func (p *OrderItemPO) ToDomain(it *item.Item) *order.OrderItem {
	return order.RebuildItemFromDTO(order.ItemReconstructionDTO{
		ID:         p.ID,
		ItemID:     p.ItemID,
		Item:       it,
		OrderPrice: p.OrderPrice,
		Count:      p.Count,
	})
}

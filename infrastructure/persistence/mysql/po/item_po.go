package po

import (
	"time"

	"shop/domain/item"
)

// ItemPO 商品持久化对象（单表继承）
// One table for all item kinds; Dtype is the discriminant column and the
// kind-specific columns stay NULL/zero for other kinds.
type ItemPO struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Dtype         string    `gorm:"column:dtype;size:20;index;not null"`
	Name          string    `gorm:"size:255;not null"`
	Price         int       `gorm:"not null"`
	StockQuantity int       `gorm:"not null"`
	Author        string    `gorm:"size:255"`
	ISBN          string    `gorm:"column:isbn;size:64"`
	Artist        string    `gorm:"size:255"`
	Etc           string    `gorm:"size:255"`
	Director      string    `gorm:"size:255"`
	Actor         string    `gorm:"size:255"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (ItemPO) TableName() string {
	return "items"
}

// FromItemDomain 领域模型转持久化对象
func FromItemDomain(it *item.Item) *ItemPO {
	return &ItemPO{
		ID:            it.ID(),
		Dtype:         string(it.Kind()),
		Name:          it.Name(),
		Price:         it.Price(),
		StockQuantity: it.StockQuantity(),
		Author:        it.Author(),
		ISBN:          it.ISBN(),
		Artist:        it.Artist(),
		Etc:           it.Etc(),
		Director:      it.Director(),
		Actor:         it.Actor(),
	}
}

// ToDomain 持久化对象转领域模型
func (p *ItemPO) ToDomain() *item.Item {
	return item.RebuildFromDTO(item.ReconstructionDTO{
		ID:            p.ID,
		Kind:          item.Kind(p.Dtype),
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Author:        p.Author,
		ISBN:          p.ISBN,
		Artist:        p.Artist,
		Etc:           p.Etc,
		Director:      p.Director,
		Actor:         p.Actor,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	})
}

// CategoryPO 商品分类持久化对象
// Present in the schema (many-to-many with items); the read strategies never
// touch it.
type CategoryPO struct {
	ID       string `gorm:"primaryKey;size:64"`
	Name     string `gorm:"size:100;not null"`
	ParentID string `gorm:"size:64;index"`
}

// TableName Specify table name
func (CategoryPO) TableName() string {
	return "categories"
}

// CategoryItemPO 分类与商品的关联表
type CategoryItemPO struct {
	CategoryID string `gorm:"primaryKey;size:64"`
	ItemID     string `gorm:"primaryKey;size:64"`
}

// TableName Specify table name
func (CategoryItemPO) TableName() string {
	return "category_items"
}

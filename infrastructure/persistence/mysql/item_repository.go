package mysql

import (
	"context"
	"errors"

	"shop/domain/item"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ItemRepository MySQL/GORM implementation of item repository
// All item variants share one table, discriminated by the dtype column.
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository Create item repository
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ItemRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save item (create or update)
func (r *ItemRepository) Save(ctx context.Context, it *item.Item) error {
	itemPO := po.FromItemDomain(it)
	return r.getDB(ctx).Save(itemPO).Error
}

// FindByID Find item by ID, returns (nil, nil) when absent
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*item.Item, error) {
	var itemPO po.ItemPO

	result := r.getDB(ctx).First(&itemPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return itemPO.ToDomain(), nil
}

// FindByIDs Find items whose IDs are in the given set, in one query
func (r *ItemRepository) FindByIDs(ctx context.Context, ids []string) ([]*item.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var itemPOs []po.ItemPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	items := make([]*item.Item, len(itemPOs))
	for i := range itemPOs {
		items[i] = itemPOs[i].ToDomain()
	}
	return items, nil
}

// FindAll Find all items
func (r *ItemRepository) FindAll(ctx context.Context) ([]*item.Item, error) {
	var itemPOs []po.ItemPO
	if err := r.getDB(ctx).Order("created_at").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	items := make([]*item.Item, len(itemPOs))
	for i := range itemPOs {
		items[i] = itemPOs[i].ToDomain()
	}
	return items, nil
}

// Compile-time interface implementation check
var _ item.Repository = (*ItemRepository)(nil)

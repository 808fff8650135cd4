package item

import (
	"context"
	"time"

	"shop/domain/item"
	"shop/infrastructure/persistence"

	"gorm.io/gorm"
)

// ApplicationService Item application service - coordinates catalog flows
type ApplicationService struct {
	itemRepo item.Repository
	db       *gorm.DB
}

// NewApplicationService Create item application service
func NewApplicationService(itemRepo item.Repository, db *gorm.DB) *ApplicationService {
	return &ApplicationService{itemRepo: itemRepo, db: db}
}

// CreateItemRequest Create item request DTO
// Kind selects the variant; only the matching variant fields are read.
type CreateItemRequest struct {
	Kind          string `json:"kind" binding:"required,oneof=BOOK ALBUM MOVIE"`
	Name          string `json:"name" binding:"required"`
	Price         int    `json:"price" binding:"min=0"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`

	Author string `json:"author"`
	ISBN   string `json:"isbn"`

	Artist string `json:"artist"`
	Etc    string `json:"etc"`

	Director string `json:"director"`
	Actor    string `json:"actor"`
}

// UpdateItemRequest Update item request DTO
type UpdateItemRequest struct {
	Name          string `json:"name" binding:"required"`
	Price         int    `json:"price" binding:"min=0"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`
}

// ItemResponse Item response DTO
type ItemResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Name          string    `json:"name"`
	Price         int       `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Author        string    `json:"author,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	Artist        string    `json:"artist,omitempty"`
	Etc           string    `json:"etc,omitempty"`
	Director      string    `json:"director,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateItem Create a catalog item of the requested kind
func (s *ApplicationService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	var it *item.Item
	var err error

	switch item.Kind(req.Kind) {
	case item.KindBook:
		it, err = item.NewBook(req.Name, req.Price, req.StockQuantity, req.Author, req.ISBN)
	case item.KindAlbum:
		it, err = item.NewAlbum(req.Name, req.Price, req.StockQuantity, req.Artist, req.Etc)
	case item.KindMovie:
		it, err = item.NewMovie(req.Name, req.Price, req.StockQuantity, req.Director, req.Actor)
	default:
		return nil, item.ErrUnknownKind
	}
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, it); err != nil {
		return nil, err
	}
	return convertToResponse(it), nil
}

// GetItem Get one item
func (s *ApplicationService) GetItem(ctx context.Context, id string) (*ItemResponse, error) {
	it, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, item.ErrItemNotFound
	}
	return convertToResponse(it), nil
}

// ListItems List the whole catalog
func (s *ApplicationService) ListItems(ctx context.Context) ([]*ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, len(items))
	for i, it := range items {
		responses[i] = convertToResponse(it)
	}
	return responses, nil
}

// UpdateItem Update mutable item fields.
// Load-then-update inside one transaction; the item keeps its kind and
// variant fields, only name, price and stock change.
func (s *ApplicationService) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*ItemResponse, error) {
	var it *item.Item

	err := persistence.RunInTx(ctx, s.db, func(ctx context.Context) error {
		var err error
		it, err = s.itemRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return item.ErrItemNotFound
		}
		if err := it.Update(req.Name, req.Price, req.StockQuantity); err != nil {
			return err
		}
		return s.itemRepo.Save(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	return convertToResponse(it), nil
}

func convertToResponse(it *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:            it.ID(),
		Kind:          string(it.Kind()),
		Name:          it.Name(),
		Price:         it.Price(),
		StockQuantity: it.StockQuantity(),
		Author:        it.Author(),
		ISBN:          it.ISBN(),
		Artist:        it.Artist(),
		Etc:           it.Etc(),
		Director:      it.Director(),
		Actor:         it.Actor(),
		CreatedAt:     it.CreatedAt(),
		UpdatedAt:     it.UpdatedAt(),
	}
}

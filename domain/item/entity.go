/*
Package item 商品子域

Item is a closed tagged variant over {BOOK, ALBUM, MOVIE}: one struct with a
discriminant Kind plus kind-specific fields, persisted single-table with a
dtype column. The shared capability set is {adjust price, adjust stock}.

Invariant: stockQuantity never goes negative. RemoveStock rejects any
decrement that would cross zero and leaves the quantity unchanged.
*/
package item

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind 商品类型判别值（封闭枚举）
type Kind string

const (
	KindBook  Kind = "BOOK"
	KindAlbum Kind = "ALBUM"
	KindMovie Kind = "MOVIE"
)

// Item 商品实体
type Item struct {
	id            string
	kind          Kind
	name          string
	price         int
	stockQuantity int

	// kind-specific fields, zero-valued for other kinds
	author   string // BOOK
	isbn     string // BOOK
	artist   string // ALBUM
	etc      string // ALBUM
	director string // MOVIE
	actor    string // MOVIE

	createdAt time.Time
	updatedAt time.Time
}

func newItem(kind Kind, name string, price, stockQuantity int) (*Item, error) {
	if name == "" {
		return nil, ErrInvalidItem
	}
	if price < 0 || stockQuantity < 0 {
		return nil, ErrInvalidItem
	}

	now := time.Now()
	return &Item{
		id:            "item-" + uuid.New().String(),
		kind:          kind,
		name:          name,
		price:         price,
		stockQuantity: stockQuantity,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// NewBook 创建图书商品
func NewBook(name string, price, stockQuantity int, author, isbn string) (*Item, error) {
	it, err := newItem(KindBook, name, price, stockQuantity)
	if err != nil {
		return nil, err
	}
	it.author = author
	it.isbn = isbn
	return it, nil
}

// NewAlbum 创建唱片商品
func NewAlbum(name string, price, stockQuantity int, artist, etc string) (*Item, error) {
	it, err := newItem(KindAlbum, name, price, stockQuantity)
	if err != nil {
		return nil, err
	}
	it.artist = artist
	it.etc = etc
	return it, nil
}

// NewMovie 创建影片商品
func NewMovie(name string, price, stockQuantity int, director, actor string) (*Item, error) {
	it, err := newItem(KindMovie, name, price, stockQuantity)
	if err != nil {
		return nil, err
	}
	it.director = director
	it.actor = actor
	return it, nil
}

// ReconstructionDTO 商品重建数据传输对象（仅供仓储层使用）
type ReconstructionDTO struct {
	ID            string
	Kind          Kind
	Name          string
	Price         int
	StockQuantity int
	Author        string
	ISBN          string
	Artist        string
	Etc           string
	Director      string
	Actor         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO 从DTO重建商品实体（仅供仓储层使用）
func RebuildFromDTO(dto ReconstructionDTO) *Item {
	return &Item{
		id:            dto.ID,
		kind:          dto.Kind,
		name:          dto.Name,
		price:         dto.Price,
		stockQuantity: dto.StockQuantity,
		author:        dto.Author,
		isbn:          dto.ISBN,
		artist:        dto.Artist,
		etc:           dto.Etc,
		director:      dto.Director,
		actor:         dto.Actor,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

// ============================================================================
// 业务行为方法
// ============================================================================

// AddStock 增加库存（取消订单时回补）
func (i *Item) AddStock(quantity int) {
	i.stockQuantity += quantity
	i.updatedAt = time.Now()
}

// RemoveStock 扣减库存
// Rejects the call that would first drive the quantity negative; the stock
// is unchanged by a rejected call.
func (i *Item) RemoveStock(quantity int) error {
	rest := i.stockQuantity - quantity
	if rest < 0 {
		return ErrInsufficientStock
	}
	i.stockQuantity = rest
	i.updatedAt = time.Now()
	return nil
}

// Update 更新商品基础信息（名称/价格/库存的绝对设置）
func (i *Item) Update(name string, price, stockQuantity int) error {
	if name == "" || price < 0 || stockQuantity < 0 {
		return ErrInvalidItem
	}
	i.name = name
	i.price = price
	i.stockQuantity = stockQuantity
	i.updatedAt = time.Now()
	return nil
}

func (i *Item) ID() string         { return i.id }
func (i *Item) Kind() Kind         { return i.kind }
func (i *Item) Name() string       { return i.name }
func (i *Item) Price() int         { return i.price }
func (i *Item) StockQuantity() int { return i.stockQuantity }
func (i *Item) Author() string     { return i.author }
func (i *Item) ISBN() string       { return i.isbn }
func (i *Item) Artist() string     { return i.artist }
func (i *Item) Etc() string        { return i.etc }
func (i *Item) Director() string   { return i.director }
func (i *Item) Actor() string      { return i.actor }

func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// MarshalJSON exposes the entity for the raw (v1) endpoints.
// Kind-specific fields are emitted only for the matching kind.
func (i *Item) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":             i.id,
		"kind":           string(i.kind),
		"name":           i.name,
		"price":          i.price,
		"stock_quantity": i.stockQuantity,
	}
	switch i.kind {
	case KindBook:
		out["author"] = i.author
		out["isbn"] = i.isbn
	case KindAlbum:
		out["artist"] = i.artist
		out["etc"] = i.etc
	case KindMovie:
		out["director"] = i.director
		out["actor"] = i.actor
	}
	return json.Marshal(out)
}

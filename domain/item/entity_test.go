package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	it, err := NewBook("Clean Architecture", 25000, 10, "Robert C. Martin", "978-0134494166")
	require.NoError(t, err)

	assert.Equal(t, KindBook, it.Kind())
	assert.Equal(t, "Clean Architecture", it.Name())
	assert.Equal(t, 25000, it.Price())
	assert.Equal(t, 10, it.StockQuantity())
	assert.Equal(t, "Robert C. Martin", it.Author())
	assert.NotEmpty(t, it.ID())
}

func TestNewItemValidation(t *testing.T) {
	_, err := NewBook("", 1000, 1, "a", "i")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = NewAlbum("album", -1, 1, "a", "e")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = NewMovie("movie", 1000, -1, "d", "a")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestStockLifecycle(t *testing.T) {
	it, err := NewBook("book", 1000, 10, "a", "i")
	require.NoError(t, err)

	require.NoError(t, it.RemoveStock(4))
	assert.Equal(t, 6, it.StockQuantity())

	it.AddStock(2)
	assert.Equal(t, 8, it.StockQuantity())

	// 超量扣减被拒绝且库存不变
	err = it.RemoveStock(9)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 8, it.StockQuantity())

	// 恰好扣到零是允许的
	require.NoError(t, it.RemoveStock(8))
	assert.Equal(t, 0, it.StockQuantity())

	err = it.RemoveStock(1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestUpdateKeepsVariantFields(t *testing.T) {
	it, err := NewAlbum("old", 5000, 3, "artist", "etc")
	require.NoError(t, err)

	require.NoError(t, it.Update("new", 6000, 5))

	assert.Equal(t, "new", it.Name())
	assert.Equal(t, 6000, it.Price())
	assert.Equal(t, 5, it.StockQuantity())
	assert.Equal(t, KindAlbum, it.Kind())
	assert.Equal(t, "artist", it.Artist())
}

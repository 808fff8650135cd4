package mysql

import (
	"testing"

	"shop/domain/order"
	"shop/infrastructure/persistence/mysql/po"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchClause(t *testing.T) {
	tests := []struct {
		name       string
		search     order.Search
		joinMember bool
		where      []string
		args       []interface{}
	}{
		{
			name:   "empty search",
			search: order.Search{},
		},
		{
			name:   "status only",
			search: order.Search{Status: order.StatusOrdered},
			where:  []string{"o.status = ?"},
			args:   []interface{}{"ORDERED"},
		},
		{
			name:       "member name only",
			search:     order.Search{MemberName: "kim"},
			joinMember: true,
			where:      []string{"m.name LIKE ?"},
			args:       []interface{}{"%kim%"},
		},
		{
			name:       "both filters",
			search:     order.Search{Status: order.StatusCanceled, MemberName: "kim"},
			joinMember: true,
			where:      []string{"o.status = ?", "m.name LIKE ?"},
			args:       []interface{}{"CANCELED", "%kim%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joinMember, where, args := buildSearchClause(tt.search)
			assert.Equal(t, tt.joinMember, joinMember)
			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestChunkStrings(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, chunkStrings(ids, 2))
	assert.Equal(t, [][]string{{"a", "b", "c", "d", "e"}}, chunkStrings(ids, 5))
	assert.Equal(t, [][]string{{"a", "b", "c", "d", "e"}}, chunkStrings(ids, 10))
	assert.Nil(t, chunkStrings(nil, 2))
}

func TestDistinctItemIDs(t *testing.T) {
	itemPOs := []po.OrderItemPO{
		{ID: "l1", ItemID: "item-2"},
		{ID: "l2", ItemID: "item-1"},
		{ID: "l3", ItemID: "item-2"},
	}

	// 去重并保持首次出现顺序
	assert.Equal(t, []string{"item-2", "item-1"}, distinctItemIDs(itemPOs))
	assert.Empty(t, distinctItemIDs(nil))
}

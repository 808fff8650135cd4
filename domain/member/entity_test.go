package member

import (
	"testing"

	"shop/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	m, err := NewMember("kim", shared.NewAddress("Seoul", "Teheran-ro 1", "06000"))
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID())
	assert.Equal(t, "kim", m.Name())
	assert.Equal(t, "Seoul", m.Address().City())
	assert.False(t, m.CreatedAt().IsZero())
}

func TestNewMemberRequiresName(t *testing.T) {
	_, err := NewMember("", shared.Address{})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestUpdateName(t *testing.T) {
	m, err := NewMember("kim", shared.Address{})
	require.NoError(t, err)

	require.NoError(t, m.UpdateName("lee"))
	assert.Equal(t, "lee", m.Name())

	assert.ErrorIs(t, m.UpdateName(""), ErrInvalidName)
	assert.Equal(t, "lee", m.Name())
}

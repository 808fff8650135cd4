package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressEquality(t *testing.T) {
	a := NewAddress("Seoul", "Teheran-ro 1", "06000")
	same := NewAddress("Seoul", "Teheran-ro 1", "06000")
	other := NewAddress("Seoul", "Teheran-ro 2", "06000")

	assert.True(t, a.Equals(same))
	assert.False(t, a.Equals(other))

	// 值对象必须可以直接用 == 比较（用作 map key）
	assert.True(t, a == same)
	assert.False(t, a == other)
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.True(t, NewAddress("", "", "").IsZero())
	assert.False(t, NewAddress("Seoul", "", "").IsZero())
}

func TestAddressMarshalJSON(t *testing.T) {
	a := NewAddress("Seoul", "Teheran-ro 1", "06000")

	payload, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "Seoul", decoded["city"])
	assert.Equal(t, "Teheran-ro 1", decoded["street"])
	assert.Equal(t, "06000", decoded["zipcode"])
}

// JSON 往返必须无损：订单 DTO 页缓存依赖它
func TestAddressJSONRoundTrip(t *testing.T) {
	a := NewAddress("Seoul", "Teheran-ro 1", "06000")

	payload, err := json.Marshal(a)
	require.NoError(t, err)

	var back Address
	require.NoError(t, json.Unmarshal(payload, &back))
	assert.Equal(t, a, back)
}

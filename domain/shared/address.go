package shared

import "encoding/json"

// Address 值对象 - 表示收货/居住地址
// Value object: identified by its attributes, immutable once constructed.
// Field-wise equality matters here: the flat-row regrouping in the order
// read path uses Address as part of a composite grouping key.
type Address struct {
	city    string
	street  string
	zipcode string
}

// NewAddress 创建新的Address值对象
func NewAddress(city, street, zipcode string) Address {
	return Address{
		city:    city,
		street:  street,
		zipcode: zipcode,
	}
}

// City 获取城市
func (a Address) City() string {
	return a.city
}

// Street 获取街道
func (a Address) Street() string {
	return a.street
}

// Zipcode 获取邮编
func (a Address) Zipcode() string {
	return a.zipcode
}

// Equals 比较两个Address值对象是否相等（逐字段比较）
func (a Address) Equals(other Address) bool {
	return a.city == other.city && a.street == other.street && a.zipcode == other.zipcode
}

// IsZero 地址是否为空值
func (a Address) IsZero() bool {
	return a == Address{}
}

// addressJSON is the wire shape shared by MarshalJSON and UnmarshalJSON.
type addressJSON struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// MarshalJSON 序列化为 {city, street, zipcode}
// Fields are private, so the default marshaler would emit an empty object.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		City:    a.city,
		Street:  a.street,
		Zipcode: a.zipcode,
	})
}

// UnmarshalJSON 反序列化
// The order DTO page cache stores responses as JSON; without this the hit
// path would rebuild every address as the zero value.
func (a *Address) UnmarshalJSON(data []byte) error {
	var raw addressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = NewAddress(raw.City, raw.Street, raw.Zipcode)
	return nil
}

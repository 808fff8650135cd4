/*
Package member 会员子域

Member is a simple aggregate root: identity, name and a home Address value
object. Unlike Order it owns no child entities. Orders reference the member
by ID only; the member side never holds the order list.
*/
package member

import (
	"encoding/json"
	"time"

	"shop/domain/shared"

	"github.com/google/uuid"
)

// Member 会员聚合根
// All fields are private, behavior exposed through methods.
type Member struct {
	id        string
	name      string
	address   shared.Address
	createdAt time.Time
	updatedAt time.Time
}

// NewMember 创建新会员
// Duplicate-name validation is a domain service concern (it needs the
// repository); see application/member.
func NewMember(name string, address shared.Address) (*Member, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	now := time.Now()
	return &Member{
		id:        "member-" + uuid.New().String(),
		name:      name,
		address:   address,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructionDTO 会员重建数据传输对象
// Limited to repository layer usage, for reconstructing the aggregate from
// the database without exposing setters.
type ReconstructionDTO struct {
	ID        string
	Name      string
	Address   shared.Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO 从DTO重建会员聚合根（仅供仓储层使用）
func RebuildFromDTO(dto ReconstructionDTO) *Member {
	return &Member{
		id:        dto.ID,
		name:      dto.Name,
		address:   dto.Address,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// UpdateName 更新会员名称
func (m *Member) UpdateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	m.name = name
	m.updatedAt = time.Now()
	return nil
}

func (m *Member) ID() string              { return m.id }
func (m *Member) Name() string            { return m.name }
func (m *Member) Address() shared.Address { return m.address }
func (m *Member) CreatedAt() time.Time    { return m.createdAt }
func (m *Member) UpdatedAt() time.Time    { return m.updatedAt }

// MarshalJSON exposes the entity as-is for the raw (v1) endpoints.
// The DTO endpoints deliberately bypass this and shape their own views.
func (m *Member) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string         `json:"id"`
		Name    string         `json:"name"`
		Address shared.Address `json:"address"`
	}{
		ID:      m.id,
		Name:    m.name,
		Address: m.address,
	})
}

package po

import (
	"time"

	"shop/domain/member"
	"shop/domain/shared"
)

// MemberPO 会员持久化对象
// Note: Only used for database mapping, does not contain any business logic.
// Defining GORM associations is prohibited here.
type MemberPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:100;uniqueIndex;not null"`
	City      string    `gorm:"size:100"`
	Street    string    `gorm:"size:255"`
	Zipcode   string    `gorm:"size:20"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (MemberPO) TableName() string {
	return "members"
}

// FromMemberDomain 领域模型转持久化对象
func FromMemberDomain(m *member.Member) *MemberPO {
	return &MemberPO{
		ID:        m.ID(),
		Name:      m.Name(),
		City:      m.Address().City(),
		Street:    m.Address().Street(),
		Zipcode:   m.Address().Zipcode(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

// ToDomain 持久化对象转领域模型
func (p *MemberPO) ToDomain() *member.Member {
	return member.RebuildFromDTO(member.ReconstructionDTO{
		ID:        p.ID,
		Name:      p.Name,
		Address:   shared.NewAddress(p.City, p.Street, p.Zipcode),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

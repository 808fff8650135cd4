package member

import (
	"context"
	"time"

	"shop/domain/member"
	"shop/domain/shared"
	"shop/infrastructure/persistence"

	"gorm.io/gorm"
)

// ApplicationService Member application service - coordinates member-related flows
type ApplicationService struct {
	memberRepo member.Repository
	db         *gorm.DB
}

// NewApplicationService Create member application service
func NewApplicationService(memberRepo member.Repository, db *gorm.DB) *ApplicationService {
	return &ApplicationService{memberRepo: memberRepo, db: db}
}

// RegisterMemberRequest Register member request DTO
type RegisterMemberRequest struct {
	Name    string `json:"name" binding:"required"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// UpdateMemberRequest Update member request DTO
type UpdateMemberRequest struct {
	Name string `json:"name" binding:"required"`
}

// MemberResponse Member response DTO
type MemberResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Address   shared.Address `json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RegisterMember Register a new member.
// The duplicate-name check and the insert run in one transaction; the unique
// index on members.name backs the check against races.
func (s *ApplicationService) RegisterMember(ctx context.Context, req RegisterMemberRequest) (*MemberResponse, error) {
	var m *member.Member

	err := persistence.RunInTx(ctx, s.db, func(ctx context.Context) error {
		existing, err := s.memberRepo.FindByName(ctx, req.Name)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return member.ErrDuplicateMember
		}

		m, err = member.NewMember(req.Name, shared.NewAddress(req.City, req.Street, req.Zipcode))
		if err != nil {
			return err
		}
		return s.memberRepo.Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	return s.convertToResponse(m), nil
}

// GetMember Get one member
func (s *ApplicationService) GetMember(ctx context.Context, id string) (*MemberResponse, error) {
	m, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, member.ErrMemberNotFound
	}
	return s.convertToResponse(m), nil
}

// ListMembers List all members
func (s *ApplicationService) ListMembers(ctx context.Context) ([]*MemberResponse, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*MemberResponse, len(members))
	for i, m := range members {
		responses[i] = s.convertToResponse(m)
	}
	return responses, nil
}

// UpdateMember Rename a member
func (s *ApplicationService) UpdateMember(ctx context.Context, id string, req UpdateMemberRequest) (*MemberResponse, error) {
	var m *member.Member

	err := persistence.RunInTx(ctx, s.db, func(ctx context.Context) error {
		var err error
		m, err = s.memberRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return member.ErrMemberNotFound
		}
		if err := m.UpdateName(req.Name); err != nil {
			return err
		}
		return s.memberRepo.Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	return s.convertToResponse(m), nil
}

func (s *ApplicationService) convertToResponse(m *member.Member) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID(),
		Name:      m.Name(),
		Address:   m.Address(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

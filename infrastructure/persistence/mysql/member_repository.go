package mysql

import (
	"context"
	"errors"
	"strings"

	"shop/domain/member"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// MemberRepository MySQL/GORM implementation of member repository
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository Create member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062")
}

// Save Save member (create or update)
func (r *MemberRepository) Save(ctx context.Context, m *member.Member) error {
	memberPO := po.FromMemberDomain(m)
	if err := r.getDB(ctx).Save(memberPO).Error; err != nil {
		if isDuplicateKeyError(err) {
			return member.ErrDuplicateMember
		}
		return err
	}
	return nil
}

// FindByID Find member by ID, returns (nil, nil) when absent
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*member.Member, error) {
	var memberPO po.MemberPO

	result := r.getDB(ctx).First(&memberPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return memberPO.ToDomain(), nil
}

// FindAll Find all members
func (r *MemberRepository) FindAll(ctx context.Context) ([]*member.Member, error) {
	var memberPOs []po.MemberPO
	if err := r.getDB(ctx).Order("created_at").Find(&memberPOs).Error; err != nil {
		return nil, err
	}

	members := make([]*member.Member, len(memberPOs))
	for i, memberPO := range memberPOs {
		members[i] = memberPO.ToDomain()
	}
	return members, nil
}

// FindByName Find members with the exact given name
func (r *MemberRepository) FindByName(ctx context.Context, name string) ([]*member.Member, error) {
	var memberPOs []po.MemberPO
	if err := r.getDB(ctx).Where("name = ?", name).Find(&memberPOs).Error; err != nil {
		return nil, err
	}

	members := make([]*member.Member, len(memberPOs))
	for i, memberPO := range memberPOs {
		members[i] = memberPO.ToDomain()
	}
	return members, nil
}

// Compile-time interface implementation check
var _ member.Repository = (*MemberRepository)(nil)

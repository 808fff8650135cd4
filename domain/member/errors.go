package member

import "errors"

// 会员领域哨兵错误 (sentinel errors)
// 用于 errors.Is() 判断
var (
	// ErrMemberNotFound 会员未找到
	ErrMemberNotFound = errors.New("member not found")

	// ErrDuplicateMember 会员名已存在（注册时名称冲突）
	ErrDuplicateMember = errors.New("member name already exists")

	// ErrInvalidName 无效的会员名称
	ErrInvalidName = errors.New("member name must not be empty")
)

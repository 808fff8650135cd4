package errors

import (
	"errors"
	"fmt"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// 业务错误码
	CodeMemberNotFound    ErrorCode = "MEMBER_NOT_FOUND"
	CodeDuplicateMember   ErrorCode = "DUPLICATE_MEMBER"
	CodeItemNotFound      ErrorCode = "ITEM_NOT_FOUND"
	CodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"
	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeCannotCancel      ErrorCode = "CANNOT_CANCEL_ORDER"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// 常用错误构造函数

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError 将领域哨兵错误映射为应用错误
// Read strategies define no error kinds of their own, so anything that does
// not match a sentinel is an unchanged store failure wrapped as internal.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		return Wrap(err, CodeMemberNotFound, "member not found")
	case errors.Is(err, member.ErrDuplicateMember):
		return Wrap(err, CodeDuplicateMember, "member name already exists")
	case errors.Is(err, member.ErrInvalidName):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, item.ErrItemNotFound):
		return Wrap(err, CodeItemNotFound, "item not found")
	case errors.Is(err, item.ErrInsufficientStock):
		return Wrap(err, CodeInsufficientStock, "insufficient stock")
	case errors.Is(err, item.ErrInvalidItem), errors.Is(err, item.ErrUnknownKind):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, "order not found")
	case errors.Is(err, order.ErrAlreadyDelivered), errors.Is(err, order.ErrAlreadyCanceled):
		return Wrap(err, CodeCannotCancel, err.Error())
	case errors.Is(err, order.ErrEmptyOrderItems),
		errors.Is(err, order.ErrInvalidOrder),
		errors.Is(err, order.ErrInvalidQuantity):
		return Wrap(err, CodeValidation, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}

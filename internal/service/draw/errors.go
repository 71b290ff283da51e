package draw

import (
	"errors"
	"fmt"

	"github.com/gzydong/go-lottery/internal/entity"
)

// Error 流水线业务错误
// Code 是对外稳定的业务码，内部原因只进日志不出网
type Error struct {
	Code    string
	Message string
	cause   error
}

func NewError(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError 包装底层错误并附加业务码
func WrapError(code string, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// AsError 将任意错误规整为流水线错误
// 未分类的错误一律按内部错误处理，避免泄露实现细节
func AsError(err error) *Error {
	var stageErr *Error
	if errors.As(err, &stageErr) {
		return stageErr
	}
	return WrapError(entity.ErrInternal, entity.ErrCodeText[entity.ErrInternal], err)
}

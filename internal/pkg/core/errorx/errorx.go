package errorx

import (
	"errors"
	"fmt"
)

// Error 业务错误，Code 用于接口响应
type Error struct {
	Code    int
	Message string
}

func New(code int, message string, args ...any) *Error {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// FromError 提取业务错误，普通错误统一按 500 处理
func FromError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{Code: 500, Message: err.Error()}
}

package serverutils

type BaseResponse[T any] struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
}

func ErrorResponseWithCode(code int, errorCode, message string) *BaseResponse[any] {
	return &BaseResponse[any]{
		Success:   false,
		Code:      code,
		ErrorCode: errorCode,
		Message:   message,
	}
}

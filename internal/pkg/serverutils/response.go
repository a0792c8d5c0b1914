package serverutils

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func Ok[T any](data T, message string) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    "SUCCESS",
		Message: message,
		Data:    data,
	}
}

package serverutils

import "github.com/gofiber/fiber/v2"

// ErrorKind classifies application errors for clients. The HTTP status is
// derived from the kind, so handlers only pick a kind and a message.
type ErrorKind string

const (
	KindInvalidToken   ErrorKind = "INVALID_TOKEN"
	KindSessionInvalid ErrorKind = "SESSION_INVALID"
	KindSessionExpired ErrorKind = "SESSION_EXPIRED"
	KindUnauthorized   ErrorKind = "UNAUTHORIZED"
	KindForbidden      ErrorKind = "FORBIDDEN"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindValidation     ErrorKind = "VALIDATION"
	KindInternal       ErrorKind = "INTERNAL"
)

type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Authentication sentinels. Distinct kinds let clients tell a garbage token
// apart from a revoked or timed-out session.
var (
	ErrInvalidToken   = &AppError{Kind: KindInvalidToken, Status: fiber.StatusUnauthorized, Message: "invalid or malformed token"}
	ErrSessionInvalid = &AppError{Kind: KindSessionInvalid, Status: fiber.StatusUnauthorized, Message: "session not found or revoked"}
	ErrSessionExpired = &AppError{Kind: KindSessionExpired, Status: fiber.StatusUnauthorized, Message: "session expired"}
)

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Status: fiber.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Status: fiber.StatusForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Status: fiber.StatusNotFound, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Status: fiber.StatusUnprocessableEntity, Message: message}
}

package apperrors

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventClosed        = errors.New("event is closed")
	ErrDuplicateEventName = errors.New("event already exists")
	ErrNotEventOwner      = errors.New("caller is not the event owner")
	ErrAlreadyHasEvent    = errors.New("user already has an event")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAlreadyHasUsername = errors.New("user already has a username")
	ErrNotOwner           = errors.New("caller is not the owner")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrInvalidString 供 errors.Is 比對任何 ValidationError
	ErrInvalidString = errors.New("invalid string")
)

// ValidationError 帶有驗證失敗原因的錯誤，訊息原樣回傳給呼叫端
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidString
}

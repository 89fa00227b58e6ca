package domain

import "errors"

// Ошибки уровня хранилища. Репозитории оборачивают ими ошибки драйвера.
var (
	ErrRecordNotFound   = errors.New("запись не найдена")
	ErrUniqueViolation  = errors.New("нарушение ограничения уникальности")
	ErrInvalidReference = errors.New("ссылка на несуществующую запись")
	ErrInvalidValue     = errors.New("значение вне допустимого диапазона")
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is the outcome every service operation reports on failure.
// Message is safe to show to API clients.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches another *Error of the same kind, so callers can write
// errors.Is(err, &domain.Error{Kind: domain.KindNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(message string) error {
	return &Error{Kind: KindInternal, Message: message}
}

// KindOf returns KindInternal for errors that are not *Error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

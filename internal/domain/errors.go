package domain

import (
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindInvalidRequestData  ErrorKind = "INVALID_REQUEST_DATA"
	KindRecordNotFound      ErrorKind = "RECORD_NOT_FOUND"
	KindDuplicateRoom       ErrorKind = "DUPLICATE_ROOM"
	KindRoomNotAvailable    ErrorKind = "ROOM_NOT_AVAILABLE"
	KindDateNotAvailable    ErrorKind = "DATE_NOT_AVAILABLE"
	KindAssociatedResources ErrorKind = "ASSOCIATED_RESOURCES"
	KindDatabaseError       ErrorKind = "DATABASE_ERROR"
)

// Error — закрытый набор доменных ошибок с привязанным статусом/заголовком.
// Граница (HTTP) транслирует Status и Title/Detail в ответ без switch по видам.
type Error struct {
	Kind   ErrorKind
	Status int
	Title  string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// Is — ошибки одного Kind считаются эквивалентными для errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// WithDetail — копия ошибки с уточнённым detail; Kind и статус сохраняются.
func (e *Error) WithDetail(format string, args ...any) *Error {
	clone := *e
	clone.Detail = fmt.Sprintf(format, args...)
	return &clone
}

var (
	ErrInvalidRequestData = &Error{
		Kind:   KindInvalidRequestData,
		Status: http.StatusBadRequest,
		Title:  "Invalid Data",
		Detail: "Request data contains invalid values or incorrect format.",
	}
	ErrRecordNotFound = &Error{
		Kind:   KindRecordNotFound,
		Status: http.StatusNotFound,
		Title:  "Resource Not Found",
		Detail: "The requested resource does not exist.",
	}
	ErrDuplicateRoom = &Error{
		Kind:   KindDuplicateRoom,
		Status: http.StatusConflict,
		Title:  "Duplicate Room",
		Detail: "Room already registered.",
	}
	ErrRoomNotAvailable = &Error{
		Kind:   KindRoomNotAvailable,
		Status: http.StatusConflict,
		Title:  "Room Not Available",
		Detail: "Room is not available for reservation.",
	}
	ErrDateNotAvailable = &Error{
		Kind:   KindDateNotAvailable,
		Status: http.StatusConflict,
		Title:  "Date Not Available",
		Detail: "Date is not available for reservation, because it is already reserved.",
	}
	ErrAssociatedResources = &Error{
		Kind:   KindAssociatedResources,
		Status: http.StatusConflict,
		Title:  "Associated Resources",
		Detail: "Cannot modify resource with existing dependencies.",
	}
	ErrDatabase = &Error{
		Kind:   KindDatabaseError,
		Status: http.StatusInternalServerError,
		Title:  "Database Error",
		Detail: "Failed to complete database operation.",
	}
)

package api

import (
	"errors"
	"net/http"
)

// Kind — класс ошибки, которую видит вызывающий код.
type Kind int

const (
	KindNoConnectivity Kind = iota + 1
	KindTimeout
	KindNetworkUnavailable
	KindServerUnreachable
	KindBadRequest
	KindForbidden
	KindNotFoundForRegion
	KindRateLimited
	KindServerError
	KindUnknownServerError
	KindSessionExpired
	KindCanceled
)

var kindNames = map[Kind]string{
	KindNoConnectivity:     "no_connectivity",
	KindTimeout:            "timeout",
	KindNetworkUnavailable: "network_unavailable",
	KindServerUnreachable:  "server_unreachable",
	KindBadRequest:         "bad_request",
	KindForbidden:          "forbidden",
	KindNotFoundForRegion:  "not_found_for_region",
	KindRateLimited:        "rate_limited",
	KindServerError:        "server_error",
	KindUnknownServerError: "unknown_server_error",
	KindSessionExpired:     "session_expired",
	KindCanceled:           "canceled",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Сообщения по умолчанию; сообщение сервера имеет приоритет для HTTP-ошибок.
var defaultMessages = map[Kind]string{
	KindNoConnectivity:     "No internet connection. Please check your network and try again.",
	KindTimeout:            "The request timed out. Please try again.",
	KindNetworkUnavailable: "Network is unavailable. Please check your connection.",
	KindServerUnreachable:  "Unable to reach the server. Please try again later.",
	KindBadRequest:         "Invalid request. Please check the details and try again.",
	KindForbidden:          "You are not allowed to perform this action.",
	KindNotFoundForRegion:  "This service is not available in your region yet.",
	KindRateLimited:        "Too many requests. Please wait a moment and try again.",
	KindServerError:        "Server error. Please try again later.",
	KindUnknownServerError: "Something went wrong. Please try again.",
	KindSessionExpired:     "Your session has expired. Please log in again.",
	KindCanceled:           "The request was cancelled.",
}

// Error — единый тип ошибки API-клиента. Message безопасно показывать пользователю.
type Error struct {
	Kind    Kind
	Status  int    // HTTP-статус, 0 если ответа не было
	Message string // человекочитаемое сообщение

	cause error // исходная ошибка, только для логов
}

func (e *Error) Error() string { return e.Message }

// Cause возвращает исходную ошибку транспорта/разбора для логирования.
func (e *Error) Cause() error { return e.cause }

// Is сравнивает ошибки по классу: errors.Is(err, api.ErrTimeout).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel-значения для errors.Is.
var (
	ErrNoConnectivity     = &Error{Kind: KindNoConnectivity, Message: defaultMessages[KindNoConnectivity]}
	ErrTimeout            = &Error{Kind: KindTimeout, Message: defaultMessages[KindTimeout]}
	ErrNetworkUnavailable = &Error{Kind: KindNetworkUnavailable, Message: defaultMessages[KindNetworkUnavailable]}
	ErrServerUnreachable  = &Error{Kind: KindServerUnreachable, Message: defaultMessages[KindServerUnreachable]}
	ErrBadRequest         = &Error{Kind: KindBadRequest, Message: defaultMessages[KindBadRequest]}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: defaultMessages[KindForbidden]}
	ErrNotFoundForRegion  = &Error{Kind: KindNotFoundForRegion, Message: defaultMessages[KindNotFoundForRegion]}
	ErrRateLimited        = &Error{Kind: KindRateLimited, Message: defaultMessages[KindRateLimited]}
	ErrServerError        = &Error{Kind: KindServerError, Message: defaultMessages[KindServerError]}
	ErrUnknownServerError = &Error{Kind: KindUnknownServerError, Message: defaultMessages[KindUnknownServerError]}
	ErrSessionExpired     = &Error{Kind: KindSessionExpired, Message: defaultMessages[KindSessionExpired]}
	ErrCanceled           = &Error{Kind: KindCanceled, Message: defaultMessages[KindCanceled]}
)

func newError(kind Kind, status int, message string, cause error) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	return &Error{Kind: kind, Status: status, Message: message, cause: cause}
}

// kindForStatus маппит HTTP-статус (кроме 2xx и 401) в класс ошибки.
func kindForStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFoundForRegion
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusInternalServerError:
		return KindServerError
	default:
		return KindUnknownServerError
	}
}

// KindOf возвращает класс ошибки или 0, если err не *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

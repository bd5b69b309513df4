package typecast

import "fmt"

// ErrorKind discriminates the failure modes of the SDK so callers can
// branch programmatically instead of matching message text.
type ErrorKind string

const (
	// KindValidation is a client-side field constraint violation, detected
	// before any network call.
	KindValidation ErrorKind = "validation"
	// KindDecode is a malformed body on an otherwise successful response.
	KindDecode ErrorKind = "decode"
	// KindTransport is a collaborator-level fault (DNS, connection refused,
	// timeout, cancellation). The underlying error is wrapped.
	KindTransport ErrorKind = "transport"

	KindBadRequest          ErrorKind = "bad_request"           // 400
	KindUnauthorized        ErrorKind = "unauthorized"          // 401
	KindPaymentRequired     ErrorKind = "payment_required"      // 402
	KindForbidden           ErrorKind = "forbidden"             // 403
	KindNotFound            ErrorKind = "not_found"             // 404
	KindUnprocessableEntity ErrorKind = "unprocessable_entity"  // 422
	KindTooManyRequests     ErrorKind = "too_many_requests"     // 429
	KindInternalServerError ErrorKind = "internal_server_error" // 500
	// KindService covers any other non-2xx status.
	KindService ErrorKind = "service"
)

// Error is the single error type returned by the SDK. StatusCode is zero
// for client-side kinds (validation, decode, transport).
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// Message is a fixed per-kind description.
	Message string
	// Detail is the response body text, when the service provided one.
	Detail string

	err error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s - %s", e.Message, e.Detail)
	}
	return e.Message
}

// Unwrap exposes the underlying cause of transport and decode errors, so
// errors.Is(err, context.Canceled) works across the SDK boundary.
func (e *Error) Unwrap() error { return e.err }

// IsBadRequest reports whether the error is a 400 Bad Request.
func (e *Error) IsBadRequest() bool { return e.Kind == KindBadRequest }

// IsUnauthorized reports whether the error is a 401 Unauthorized.
func (e *Error) IsUnauthorized() bool { return e.Kind == KindUnauthorized }

// IsPaymentRequired reports whether the error is a 402 Payment Required.
func (e *Error) IsPaymentRequired() bool { return e.Kind == KindPaymentRequired }

// IsForbidden reports whether the error is a 403 Forbidden.
func (e *Error) IsForbidden() bool { return e.Kind == KindForbidden }

// IsNotFound reports whether the error is a 404 Not Found.
func (e *Error) IsNotFound() bool { return e.Kind == KindNotFound }

// IsUnprocessableEntity reports whether the error is a 422 Unprocessable Entity.
func (e *Error) IsUnprocessableEntity() bool { return e.Kind == KindUnprocessableEntity }

// IsRateLimited reports whether the error is a 429 Too Many Requests.
func (e *Error) IsRateLimited() bool { return e.Kind == KindTooManyRequests }

// IsServerError reports whether the error carries a 5xx status.
func (e *Error) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// IsValidation reports whether the error is a client-side validation failure.
func (e *Error) IsValidation() bool { return e.Kind == KindValidation }

func newValidationError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func newDecodeError(what string, cause error) *Error {
	return &Error{
		Kind:    KindDecode,
		Message: fmt.Sprintf("failed to decode %s response", what),
		Detail:  cause.Error(),
		err:     cause,
	}
}

func newTransportError(cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: cause.Error(),
		err:     cause,
	}
}

// kindForStatus maps a non-2xx HTTP status to an error kind and its fixed
// description. The mapping is total: unmapped codes fall to KindService.
func kindForStatus(status int) (ErrorKind, string) {
	switch status {
	case 400:
		return KindBadRequest, "Bad Request - The request was invalid or cannot be served"
	case 401:
		return KindUnauthorized, "Unauthorized - Invalid or missing API key"
	case 402:
		return KindPaymentRequired, "Payment Required - Insufficient credits to complete the request"
	case 403:
		return KindForbidden, "Forbidden - Access denied, check your API key"
	case 404:
		return KindNotFound, "Not Found - The requested resource does not exist"
	case 422:
		return KindUnprocessableEntity, "Unprocessable Entity - The request data failed validation"
	case 429:
		return KindTooManyRequests, "Too Many Requests - Rate limit exceeded"
	case 500:
		return KindInternalServerError, "Internal Server Error - Something went wrong on the server"
	default:
		return KindService, fmt.Sprintf("API request failed with status %d", status)
	}
}

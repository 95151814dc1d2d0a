package apperr

import "net/http"

var statuses = map[Kind]int{
	KindValidation:         http.StatusBadRequest,
	KindConflict:           http.StatusConflict,
	KindNotFound:           http.StatusNotFound,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindInvalidToken:       http.StatusUnauthorized,
	KindExpired:            http.StatusUnauthorized,
	KindUnavailable:        http.StatusServiceUnavailable,
	KindInternal:           http.StatusInternalServerError,
}

// HTTPStatus is the response status for a failure of kind k.
func HTTPStatus(k Kind) int {
	if status, ok := statuses[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// PublicMessage is the text safe to show a client. Store and internal
// failures are reduced to a generic line so driver details never leak.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindUnavailable:
		return "service temporarily unavailable"
	case KindInternal:
		return "internal server error"
	default:
		return err.Error()
	}
}

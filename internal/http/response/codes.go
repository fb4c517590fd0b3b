package response

import "net/http"

const (
	StatusBadRequest      = http.StatusBadRequest
	StatusUnauthorized    = http.StatusUnauthorized
	StatusForbidden       = http.StatusForbidden
	StatusNotFound        = http.StatusNotFound
	StatusUnprocessable   = http.StatusUnprocessableEntity
	StatusTooManyRequests = http.StatusTooManyRequests
	StatusInternal        = http.StatusInternalServerError
)

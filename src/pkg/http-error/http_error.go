package httperror

import "net/http"

// CommonError is the typed error carried through usecase results. CodeName is
// the machine-readable taxonomy value clients switch on (EXCLUSIVE, EXISTED,
// UNKNOWN, ...), Code the HTTP status it maps to.
type CommonError struct {
	Code     int    `json:"code"`
	CodeName string `json:"codeName"`
	Message  string `json:"message"`
}

func (e *CommonError) Error() string {
	return e.Message
}

func NewBadRequest() *CommonError {
	return &CommonError{
		Code:     http.StatusBadRequest,
		CodeName: "BAD_REQUEST",
		Message:  "bad request",
	}
}

func NewUnauthorized() *CommonError {
	return &CommonError{
		Code:     http.StatusUnauthorized,
		CodeName: "UNAUTHORIZED",
		Message:  "unauthorized",
	}
}

func NewNotFound() *CommonError {
	return &CommonError{
		Code:     http.StatusNotFound,
		CodeName: "NOT_FOUND",
		Message:  "not found",
	}
}

func NewConflict() *CommonError {
	return &CommonError{
		Code:     http.StatusConflict,
		CodeName: "CONFLICT",
		Message:  "conflict",
	}
}

// NewExclusive marks an optimistic-concurrency conflict: the row changed since
// the client last read it. Recoverable by re-fetch and retry.
func NewExclusive() *CommonError {
	return &CommonError{
		Code:     http.StatusConflict,
		CodeName: "EXCLUSIVE",
		Message:  "data has been modified by another user, please refresh and retry",
	}
}

// NewExisted marks a uniqueness violation on caller-supplied input.
func NewExisted() *CommonError {
	return &CommonError{
		Code:     http.StatusBadRequest,
		CodeName: "EXISTED",
		Message:  "value already exists",
	}
}

func NewInternalServerError() *CommonError {
	return &CommonError{
		Code:     http.StatusInternalServerError,
		CodeName: "UNKNOWN",
		Message:  "internal server error",
	}
}

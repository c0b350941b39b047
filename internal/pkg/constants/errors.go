package constants

import "net/http"

// CodedError carries the HTTP status the api layer answers with.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrUnknownView    = NewCodedError(http.StatusNotFound, "unknown view")
	ErrUnknownDataset = NewCodedError(http.StatusNotFound, "unknown dataset")
	ErrUnknownRound   = NewCodedError(http.StatusBadRequest, "unknown grant round")
	ErrBadRequest     = NewCodedError(http.StatusBadRequest, "bad request")
	ErrNoChart        = NewCodedError(http.StatusNotFound, "view has no chart")
	// ErrNotLoaded is returned when a view needs a dataset that was not configured.
	ErrNotLoaded = NewCodedError(http.StatusNotFound, "dataset not loaded")
)

package collection

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/catalog-console/pkg/docstore"
)

// Operation errors surfaced through State.ErrorKind.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("record not found")
	ErrUploadFailed     = errors.New("upload failed")
	ErrValidationFailed = errors.New("validation failed")
	ErrReadOnly         = errors.New("collection is read-only")
)

// Transport errors answered with a 4xx status instead of a state.
var (
	ErrInvalidBody  = errors.New("invalid request body")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
)

// Kind classifies the error held by a view-model.
type Kind string

const (
	KindNone             Kind = ""
	KindStoreUnavailable Kind = "store_unavailable"
	KindNotFound         Kind = "not_found"
	KindUploadFailed     Kind = "upload_failed"
	KindValidationFailed Kind = "validation_failed"
	KindReadOnly         Kind = "read_only"
)

// Classify maps an operation error onto the error taxonomy. Unrecognized
// errors, including timeouts, are treated as the store being unavailable.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUploadFailed):
		return KindUploadFailed
	case errors.Is(err, ErrValidationFailed):
		return KindValidationFailed
	case errors.Is(err, ErrReadOnly):
		return KindReadOnly
	case errors.Is(err, ErrNotFound), errors.Is(err, docstore.ErrNotFound):
		return KindNotFound
	default:
		return KindStoreUnavailable
	}
}

// MapHTTPStatus maps transport and gateway errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNotAnImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrNotFound), errors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, docstore.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Storage errors. Write failures that survive the store's copy fallback mean
// on-disk integrity can no longer be guaranteed, so they surface as 500s.
var (
	ErrStorageRead  = errors.New("board read failed")
	ErrStorageWrite = errors.New("board write failed")
)

func NewStorageReadError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageRead,
		Details:    "Failed to load board document",
		Cause:      cause,
	}
}

func NewStorageWriteError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageWrite,
		Details:    fmt.Sprintf("Failed to persist board during %s", operation),
		Cause:      cause,
	}
}

func IsStorageRead(err error) bool {
	return errors.Is(err, ErrStorageRead)
}

func IsStorageWrite(err error) bool {
	return errors.Is(err, ErrStorageWrite)
}

package deepface

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDeepFaceUnavailable = errors.New("deepface service unavailable")
	ErrInvalidResponse     = errors.New("invalid response from deepface")
	ErrDimensionMismatch   = errors.New("deepface returned an embedding of unexpected size")
	ErrUnknownModel        = errors.New("unknown deepface model")
)

// StatusError is returned when deepface answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("deepface returned status %d: %s", e.StatusCode, e.Body)
}

// IsClientError reports whether the request itself was rejected (4xx).
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// isNoFaceError recognises deepface's enforce_detection rejection, which is
// a normal "zero faces" answer rather than a failure.
func isNoFaceError(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || !statusErr.IsClientError() {
		return false
	}
	return strings.Contains(strings.ToLower(statusErr.Body), "could not be detected")
}

// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrUnavailable indicates a transient storage fault worth retrying.
	ErrUnavailable = errors.New("storage unavailable")
)

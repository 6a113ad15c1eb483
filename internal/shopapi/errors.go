package shopapi

import "errors"

// ErrRejected is the sentinel wrapped by every application-level purchase
// rejection. Use errors.Is() to check against it.
var ErrRejected = errors.New("purchase rejected")

// RejectionError carries the server-supplied rejection reason, when the
// backend provided one.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return "purchase rejected"
	}
	return "purchase rejected: " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}

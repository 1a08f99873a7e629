package upstream

import "fmt"

// AuthError carries the server-supplied rejection message from /login. The
// message is surfaced to the user verbatim.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StatusError is any non-success response outside the auth path. Callers
// show a generic message and discard the detail.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

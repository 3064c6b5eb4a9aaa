package request

import "errors"

var (
	// ErrRequestNotFound indicates the request doesn't exist.
	ErrRequestNotFound = errors.New("request not found")
	// ErrInvalidTarget indicates the receiver is the sender or not a known actor.
	ErrInvalidTarget = errors.New("invalid request target")
	// ErrDuplicateActive indicates a pending or accepted request of the same kind
	// toward the same receiver already exists.
	ErrDuplicateActive = errors.New("an active request toward this receiver already exists")
	// ErrNotAuthorized indicates the acting actor is not the request receiver.
	ErrNotAuthorized = errors.New("actor is not authorized to decide this request")
	// ErrInvalidTransition indicates the request is no longer pending.
	ErrInvalidTransition = errors.New("invalid request status transition")
	// ErrEmptyMessage indicates the request message is blank.
	ErrEmptyMessage = errors.New("request message must not be empty")
	// ErrInvalidInput indicates invalid input for request operations.
	ErrInvalidInput = errors.New("invalid request input")
)

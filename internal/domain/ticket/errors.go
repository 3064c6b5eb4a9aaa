package ticket

import "errors"

var (
	// ErrTicketNotFound indicates the ticket doesn't exist.
	ErrTicketNotFound = errors.New("support ticket not found")
	// ErrNotAuthorized indicates the acting actor is not the required party.
	ErrNotAuthorized = errors.New("actor is not authorized for this ticket operation")
	// ErrInvalidTransition indicates a workflow violation.
	ErrInvalidTransition = errors.New("invalid ticket status transition")
	// ErrInvalidTarget indicates the requester tried to become their own helper.
	ErrInvalidTarget = errors.New("requester cannot help their own ticket")
	// ErrEmptyContent indicates a blank comment.
	ErrEmptyContent = errors.New("comment content must not be empty")
	// ErrInvalidInput indicates invalid input for ticket operations.
	ErrInvalidInput = errors.New("invalid ticket input")
)

package relationship

import "errors"

var (
	// ErrRelationshipNotFound indicates the relationship doesn't exist.
	ErrRelationshipNotFound = errors.New("relationship not found")
	// ErrNotAuthorized indicates the acting actor is not a party to the relationship.
	ErrNotAuthorized = errors.New("actor is not a party to this relationship")
	// ErrInvalidTransition indicates the relationship is already in the target state.
	ErrInvalidTransition = errors.New("invalid relationship status transition")
	// ErrInvalidInput indicates invalid input for relationship operations.
	ErrInvalidInput = errors.New("invalid relationship input")
)

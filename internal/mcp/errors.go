package mcp

import (
	"errors"
	"fmt"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// mapError maps domain errors to MCP error codes.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, request.ErrInvalidTarget), errors.Is(err, ticket.ErrInvalidTarget):
		return &APIError{Code: "INVALID_TARGET", Message: err.Error(), RecoveryHint: "Pick a different counterpart"}
	case errors.Is(err, request.ErrDuplicateActive):
		return &APIError{Code: "DUPLICATE_ACTIVE", Message: err.Error(), RecoveryHint: "Wait for the open request to be decided"}
	case errors.Is(err, request.ErrNotAuthorized), errors.Is(err, relationship.ErrNotAuthorized), errors.Is(err, ticket.ErrNotAuthorized):
		return &APIError{Code: "NOT_AUTHORIZED", Message: err.Error()}
	case errors.Is(err, request.ErrInvalidTransition), errors.Is(err, relationship.ErrInvalidTransition), errors.Is(err, ticket.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Re-fetch current state before retrying"}
	case errors.Is(err, request.ErrEmptyMessage), errors.Is(err, ticket.ErrEmptyContent):
		return &APIError{Code: "EMPTY_CONTENT", Message: err.Error()}
	case errors.Is(err, request.ErrRequestNotFound),
		errors.Is(err, relationship.ErrRelationshipNotFound),
		errors.Is(err, ticket.ErrTicketNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the ID"}
	case errors.Is(err, request.ErrInvalidInput), errors.Is(err, ticket.ErrInvalidInput), errors.Is(err, engagement.ErrInvalidDecision):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, candidate.ErrRankerUnavailable):
		return &APIError{Code: "REMOTE_FAILURE", Message: err.Error(), RecoveryHint: "Retry later"}
	default:
		return &APIError{Code: "REMOTE_FAILURE", Message: err.Error()}
	}
}

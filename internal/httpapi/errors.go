package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusware/peerlink/internal/domain/candidate"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// writeDomainError maps domain sentinels onto the wire taxonomy. Validation
// and state-machine failures are recoverable by the caller; remote failures
// are surfaced without any partial apply.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, request.ErrInvalidTarget) || errors.Is(err, ticket.ErrInvalidTarget):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_TARGET", err.Error())
	case errors.Is(err, request.ErrDuplicateActive):
		writeError(w, http.StatusConflict, "DUPLICATE_ACTIVE", err.Error())
	case errors.Is(err, request.ErrNotAuthorized) ||
		errors.Is(err, relationship.ErrNotAuthorized) ||
		errors.Is(err, ticket.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "NOT_AUTHORIZED", err.Error())
	case errors.Is(err, request.ErrInvalidTransition) ||
		errors.Is(err, relationship.ErrInvalidTransition) ||
		errors.Is(err, ticket.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, request.ErrEmptyMessage) || errors.Is(err, ticket.ErrEmptyContent):
		writeError(w, http.StatusUnprocessableEntity, "EMPTY_CONTENT", err.Error())
	case errors.Is(err, request.ErrRequestNotFound) ||
		errors.Is(err, relationship.ErrRelationshipNotFound) ||
		errors.Is(err, ticket.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, request.ErrInvalidInput) ||
		errors.Is(err, relationship.ErrInvalidInput) ||
		errors.Is(err, ticket.ErrInvalidInput) ||
		errors.Is(err, engagement.ErrInvalidDecision):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, candidate.ErrRankerUnavailable):
		writeError(w, http.StatusBadGateway, "REMOTE_FAILURE", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "REMOTE_FAILURE", err.Error())
	}
}

package request

import "strings"

// ValidateCreateInput validates fields required to create a request.
func ValidateCreateInput(req CreateRequest) error {
	if _, err := ParseKind(string(req.Kind)); err != nil {
		return err
	}
	if req.SenderID == req.ReceiverID {
		return ErrInvalidTarget
	}
	if strings.TrimSpace(req.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// ValidateTransition validates a requested status transition. Pending is the
// only non-terminal state; nothing re-enters it.
func ValidateTransition(from, to Status) error {
	if from != StatusPending {
		return ErrInvalidTransition
	}
	if to != StatusAccepted && to != StatusRejected {
		return ErrInvalidTransition
	}
	return nil
}

package request

import "time"

// Kind distinguishes the engagement domains that share the request contract.
type Kind string

const (
	KindSkillSwap Kind = "skill-swap"
	KindMentoring Kind = "mentoring"
)

// ParseKind validates a wire-level kind value.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSkillSwap, KindMentoring:
		return Kind(s), nil
	}
	return "", ErrInvalidInput
}

// Status represents the lifecycle state of a request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is allowed out of the status.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Request is a two-party engagement proposal awaiting the receiver's decision.
type Request struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"type"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Message    string    `json:"message"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

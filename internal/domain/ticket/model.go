package ticket

import "time"

// Status represents the workflow state of a support ticket. The capitalized
// wire values match the original support-request contract.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Terminal reports whether the status admits no further transition.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// SupportTicket is a single-initiator help request tied to a competence.
type SupportTicket struct {
	ID             string    `json:"id"`
	RequesterID    int64     `json:"requester_id"`
	HelperID       *int64    `json:"helper_id,omitempty"`
	CompetenceID   int64     `json:"competence_id"`
	CompetenceName string    `json:"competence_name,omitempty"`
	Status         Status    `json:"status"`
	DateRequested  time.Time `json:"date_requested"`
}

// Comment is an append-only note on a ticket, open to any authenticated actor.
type Comment struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketDetail bundles a ticket with its comment thread for board views.
type TicketDetail struct {
	SupportTicket
	Comments []Comment `json:"comments"`
}

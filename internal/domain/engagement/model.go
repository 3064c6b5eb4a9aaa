package engagement

import (
	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
)

// Decision is the receiver's verdict on a pending request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// View is the actor's consistent engagement snapshot, rebuilt from the store
// after every mutation. Derived counts feed presentation badges.
type View struct {
	SentRequests     []request.Request           `json:"sent_requests"`
	ReceivedRequests []request.Request           `json:"received_requests"`
	Mentors          []relationship.Relationship `json:"mentors"`
	Mentees          []relationship.Relationship `json:"mentees"`
	SwapPartners     []relationship.Relationship `json:"swap_partners"`
	PendingSent      int                         `json:"pending_sent"`
	PendingReceived  int                         `json:"pending_received"`
}

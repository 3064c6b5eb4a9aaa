package relationship

import "time"

// Status represents the lifecycle state of a relationship. Removal is a hard
// delete, not a third status.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// Relationship is a durable peer link created from an accepted request.
// Directionality follows the originating request: the initiator is the
// request sender, the counterpart the receiver. For mentoring that makes the
// counterpart the mentor and the initiator the mentee.
type Relationship struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	InitiatorID   int64     `json:"initiator_id"`
	CounterpartID int64     `json:"counterpart_id"`
	Status        Status    `json:"status"`
	DateAdded     time.Time `json:"date_added"`
}

// Involves reports whether the actor is one of the two parties.
func (r *Relationship) Involves(actorID int64) bool {
	return r.InitiatorID == actorID || r.CounterpartID == actorID
}

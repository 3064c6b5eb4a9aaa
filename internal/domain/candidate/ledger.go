package candidate

import "github.com/campusware/peerlink/internal/domain/request"

// Ledger answers "has this candidate already been contacted?" for the current
// actor. It is a pure projection over the actor's outbound requests, indexed
// by receiver, and must be rebuilt whenever the sent-request list is
// refreshed. It is never the system of record.
type Ledger struct {
	contacted map[ledgerKey]struct{}
}

type ledgerKey struct {
	receiverID int64
	kind       request.Kind
}

// NewLedger builds a ledger from the actor's current outbound requests.
// Rejected requests do not count as contact; a new attempt is allowed.
func NewLedger(sent []request.Request) *Ledger {
	contacted := make(map[ledgerKey]struct{}, len(sent))
	for _, req := range sent {
		if req.Status == request.StatusRejected {
			continue
		}
		contacted[ledgerKey{receiverID: req.ReceiverID, kind: req.Kind}] = struct{}{}
	}
	return &Ledger{contacted: contacted}
}

// Contacted reports whether an active request of the kind exists toward the
// receiver.
func (l *Ledger) Contacted(receiverID int64, kind request.Kind) bool {
	_, ok := l.contacted[ledgerKey{receiverID: receiverID, kind: kind}]
	return ok
}

// Annotate joins ranked candidates with the ledger's verdict.
func (l *Ledger) Annotate(scores []Score, kind request.Kind) []Ranked {
	ranked := make([]Ranked, 0, len(scores))
	for _, sc := range scores {
		ranked = append(ranked, Ranked{
			Score:            sc,
			AlreadyContacted: l.Contacted(sc.CandidateID, kind),
		})
	}
	return ranked
}

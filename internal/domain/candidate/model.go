package candidate

// RationaleItem is one structured "why" entry attached to a ranked candidate.
type RationaleItem struct {
	SkillOrArea string `json:"skill"`
	TheirLevel  *int   `json:"their_level,omitempty"`
	YourLevel   *int   `json:"your_level,omitempty"`
	BenefitText string `json:"benefit"`
}

// Score is a ranked candidate peer as produced by the external ranker.
// Immutable per fetch; never persisted by the core.
type Score struct {
	CandidateID int64           `json:"candidate_id"`
	Score       float64         `json:"score"`
	Rationale   []RationaleItem `json:"rationale,omitempty"`
}

// Ranked is a candidate annotated with the contact ledger's verdict so the
// presentation layer can suppress duplicate outreach while still showing the
// candidate.
type Ranked struct {
	Score
	AlreadyContacted bool `json:"already_contacted"`
}

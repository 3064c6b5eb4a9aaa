package candidate

import (
	"context"

	"github.com/campusware/peerlink/internal/domain/request"
)

// Ranker produces an ordered list of candidate peers for an actor. The
// scoring algorithm itself is an external collaborator.
type Ranker interface {
	Rank(ctx context.Context, actorID int64, kind request.Kind, limit int) ([]Score, error)
}

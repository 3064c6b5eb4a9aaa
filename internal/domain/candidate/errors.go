package candidate

import "errors"

// ErrRankerUnavailable indicates the external ranking collaborator could not
// be reached or answered with an unexpected status.
var ErrRankerUnavailable = errors.New("candidate ranker unavailable")

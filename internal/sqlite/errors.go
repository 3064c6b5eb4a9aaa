package sqlite

import (
	"strings"

	"github.com/campusware/peerlink/internal/repository"
)

// constraintError translates sqlite constraint failures into repository
// sentinels. modernc.org/sqlite exposes the violated constraint only through
// the error text, so the match is on the message. Returns nil for errors that
// are not constraint violations.
func constraintError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return repository.ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return repository.ErrForeignKeyViolation
	}
	return nil
}

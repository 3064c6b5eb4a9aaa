package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// insertActor seeds an actor row so request and relationship foreign keys hold.
func insertActor(t *testing.T, db *DB, id int64, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO actors (id, display_name) VALUES (?, ?)`, id, name)
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	// Verify all tables were created
	tables := []string{
		"actors",
		"api_tokens",
		"requests",
		"relationships",
		"support_tickets",
		"ticket_comments",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestRequestsTableConstraints verifies the CHECK constraints on requests
func TestRequestsTableConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insertActor(t, db, 1, "alice")
	insertActor(t, db, 2, "bob")

	_, err := db.ExecContext(ctx,
		`INSERT INTO requests (id, kind, sender_id, receiver_id, message, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"r1", "skill-swap", 1, 2, "hello", "pending")
	require.NoError(t, err)

	// Unknown kind rejected
	_, err = db.ExecContext(ctx,
		`INSERT INTO requests (id, kind, sender_id, receiver_id, message, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"r2", "tutoring", 1, 2, "hello", "pending")
	require.Error(t, err, "should fail with unknown kind")

	// Self-send rejected at the schema level too
	_, err = db.ExecContext(ctx,
		`INSERT INTO requests (id, kind, sender_id, receiver_id, message, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"r3", "skill-swap", 1, 1, "hello", "pending")
	require.Error(t, err, "should fail when sender equals receiver")

	// Unknown sender rejected by the foreign key
	_, err = db.ExecContext(ctx,
		`INSERT INTO requests (id, kind, sender_id, receiver_id, message, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"r4", "skill-swap", 99, 2, "hello", "pending")
	require.Error(t, err, "should fail with unknown sender")
}

// TestCommentsCascade verifies ticket comments are deleted with their ticket
func TestCommentsCascade(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insertActor(t, db, 1, "alice")

	_, err := db.ExecContext(ctx,
		`INSERT INTO support_tickets (id, requester_id, competence_id, status)
		 VALUES (?, ?, ?, ?)`,
		"t1", 1, 7, "Pending")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO ticket_comments (id, ticket_id, author_id, content)
		 VALUES (?, ?, ?, ?)`,
		"c1", "t1", 1, "a comment")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM support_tickets WHERE id = ?`, "t1")
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ticket_comments WHERE ticket_id = ?`, "t1").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "comments should cascade with ticket deletion")
}

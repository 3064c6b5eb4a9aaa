package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campusware/peerlink/internal/domain/ticket"
	"github.com/campusware/peerlink/internal/repository"
)

// TicketRepository implements ticket.Repository for SQLite
type TicketRepository struct {
	db *DB
}

var _ ticket.Repository = (*TicketRepository)(nil)

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create inserts a new support ticket
func (r *TicketRepository) Create(ctx context.Context, tk *ticket.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (id, requester_id, helper_id, competence_id, competence_name, status, date_requested)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		tk.ID,
		tk.RequesterID,
		helperValue(tk.HelperID),
		tk.CompetenceID,
		nullString(tk.CompetenceName),
		tk.Status,
		tk.DateRequested,
	)

	if err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// Get retrieves a ticket by ID
func (r *TicketRepository) Get(ctx context.Context, id string) (*ticket.SupportTicket, error) {
	query := `
		SELECT id, requester_id, helper_id, competence_id, competence_name, status, date_requested
		FROM support_tickets
		WHERE id = ?
	`

	tk, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return tk, nil
}

// Update writes the ticket's mutable fields (helper, status) as a
// compare-and-set keyed on the expected prior status.
func (r *TicketRepository) Update(ctx context.Context, tk *ticket.SupportTicket, from ticket.Status) error {
	query := `
		UPDATE support_tickets
		SET helper_id = ?, status = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, helperValue(tk.HelperID), tk.Status, tk.ID, from)
	if err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM support_tickets WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, checkQuery, tk.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check ticket existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		// Ticket exists but its status already moved - conflict.
		return repository.ErrConflict
	}
	return nil
}

// Delete removes a ticket; comments cascade.
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM support_tickets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByRequester returns the actor's tickets, newest first.
func (r *TicketRepository) ListByRequester(ctx context.Context, requesterID int64) ([]ticket.SupportTicket, error) {
	return r.list(ctx,
		`SELECT id, requester_id, helper_id, competence_id, competence_name, status, date_requested
		 FROM support_tickets WHERE requester_id = ?
		 ORDER BY date_requested DESC, id`,
		requesterID)
}

// ListByStatus returns tickets in a given status, newest first.
func (r *TicketRepository) ListByStatus(ctx context.Context, status ticket.Status) ([]ticket.SupportTicket, error) {
	return r.list(ctx,
		`SELECT id, requester_id, helper_id, competence_id, competence_name, status, date_requested
		 FROM support_tickets WHERE status = ?
		 ORDER BY date_requested DESC, id`,
		status)
}

// ListAll returns every ticket, newest first.
func (r *TicketRepository) ListAll(ctx context.Context) ([]ticket.SupportTicket, error) {
	return r.list(ctx,
		`SELECT id, requester_id, helper_id, competence_id, competence_name, status, date_requested
		 FROM support_tickets
		 ORDER BY date_requested DESC, id`)
}

// AddComment appends a comment to a ticket's thread.
func (r *TicketRepository) AddComment(ctx context.Context, cm *ticket.Comment) error {
	query := `
		INSERT INTO ticket_comments (id, ticket_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, cm.ID, cm.TicketID, cm.AuthorID, cm.Content, cm.CreatedAt)
	if err != nil {
		if sentinel := constraintError(err); sentinel != nil {
			return sentinel
		}
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// ListComments returns a ticket's comments in insertion order.
func (r *TicketRepository) ListComments(ctx context.Context, ticketID string) ([]ticket.Comment, error) {
	query := `
		SELECT id, ticket_id, author_id, content, created_at
		FROM ticket_comments
		WHERE ticket_id = ?
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []ticket.Comment
	for rows.Next() {
		var cm ticket.Comment
		if err := rows.Scan(&cm.ID, &cm.TicketID, &cm.AuthorID, &cm.Content, &cm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

func (r *TicketRepository) list(ctx context.Context, query string, args ...any) ([]ticket.SupportTicket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []ticket.SupportTicket
	for rows.Next() {
		tk, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, *tk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}
	return tickets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*ticket.SupportTicket, error) {
	var (
		tk     ticket.SupportTicket
		helper sql.NullInt64
		name   sql.NullString
	)
	if err := row.Scan(
		&tk.ID,
		&tk.RequesterID,
		&helper,
		&tk.CompetenceID,
		&name,
		&tk.Status,
		&tk.DateRequested,
	); err != nil {
		return nil, err
	}
	if helper.Valid {
		tk.HelperID = &helper.Int64
	}
	tk.CompetenceName = name.String
	return &tk, nil
}

func helperValue(helperID *int64) any {
	if helperID == nil {
		return nil
	}
	return *helperID
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

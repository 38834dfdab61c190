package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact request sources.
const (
	SourceTUI = "tui"
	SourceWeb = "web"
)

// ContactRequest is one accepted contact form submission.
type ContactRequest struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// Inbox stores contact requests. It is safe for concurrent use.
type Inbox struct {
	db *sql.DB
}

func (in *Inbox) Close() error {
	if in == nil || in.db == nil {
		return nil
	}
	return in.db.Close()
}

// Add records a request and returns it with its id and timestamp filled in.
func (in *Inbox) Add(ctx context.Context, email, source string, now time.Time) (ContactRequest, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return ContactRequest{}, errors.New("inbox: empty email")
	}
	if strings.TrimSpace(source) == "" {
		source = SourceTUI
	}
	req := ContactRequest{
		ID:        "req-" + uuid.NewString(),
		Email:     email,
		Source:    source,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
	_, err := in.db.ExecContext(ctx,
		`INSERT INTO contact_requests(id, email, source, created_at_unixms) VALUES(?, ?, ?, ?)`,
		req.ID, req.Email, req.Source, req.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return ContactRequest{}, fmt.Errorf("inbox: add: %w", err)
	}
	return req, nil
}

// List returns the newest requests first. A limit <= 0 returns everything.
func (in *Inbox) List(ctx context.Context, limit int) ([]ContactRequest, error) {
	q := `SELECT id, email, source, created_at_unixms FROM contact_requests ORDER BY created_at_unixms DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := in.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("inbox: list: %w", err)
	}
	defer rows.Close()

	out := []ContactRequest{}
	for rows.Next() {
		var r ContactRequest
		var ms int64
		if err := rows.Scan(&r.ID, &r.Email, &r.Source, &ms); err != nil {
			return nil, fmt.Errorf("inbox: scan: %w", err)
		}
		r.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored requests.
func (in *Inbox) Count(ctx context.Context) (int, error) {
	var n int
	if err := in.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("inbox: count: %w", err)
	}
	return n, nil
}

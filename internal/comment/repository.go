package comment

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository provides data access for comments.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = "SELECT id, name, email, message, rating, created_at FROM comments"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Add stores a new comment. The caller is responsible for validation;
// the table constraint still rejects out-of-range ratings.
func (r *Repository) Add(ctx context.Context, in Input) (*Comment, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (name, email, message, rating, remote_addr) VALUES (?, ?, ?, ?, ?)",
		in.Name, in.Email, in.Message, in.Rating, in.RemoteAddr,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	c, err := scanComment(r.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("reading back comment: %w", err)
	}

	return c, nil
}

// Snapshot returns all comments in insertion order and the mean of the
// non-null ratings (0 when there are none), read in a single transaction.
func (r *Repository) Snapshot(ctx context.Context) (*Listing, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	comments, err := list(ctx, tx)
	if err != nil {
		return nil, err
	}

	avg, err := average(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}

	if comments == nil {
		comments = make([]*Comment, 0)
	}
	return &Listing{Comments: comments, AverageRating: avg}, nil
}

// Delete removes a comment by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	return nil
}

func list(ctx context.Context, q querier) (comments []*Comment, err error) {
	rows, err := q.QueryContext(ctx, selectColumns+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

func average(ctx context.Context, q querier) (float64, error) {
	var avg float64
	if err := q.QueryRowContext(ctx, "SELECT COALESCE(AVG(rating), 0.0) FROM comments").Scan(&avg); err != nil {
		return 0, fmt.Errorf("averaging ratings: %w", err)
	}
	return avg, nil
}

func scanComment(row interface{ Scan(...interface{}) error }) (*Comment, error) {
	var c Comment
	var rating sql.NullInt64
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &rating, &c.CreatedAt); err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		c.Rating = &v
	}
	return &c, nil
}

// README: Quote history store backed by PostgreSQL.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, q *Quote) error {
	req, err := json.Marshal(q.Request)
	if err != nil {
		return fmt.Errorf("quote store: marshal request: %w", err)
	}
	routes, err := json.Marshal(q.Routes)
	if err != nil {
		return fmt.Errorf("quote store: marshal routes: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO quotes (id, request, routes, created_at)
		VALUES ($1, $2, $3, $4)`,
		q.ID, req, routes, q.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Quote, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, request, routes, created_at
		FROM quotes
		WHERE id = $1`, id,
	)
	q, err := scanQuote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return q, err
}

// ListRecent returns up to limit quotes, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Quote, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, request, routes, created_at
		FROM quotes
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		q           Quote
		req, routes []byte
	)
	if err := row.Scan(&q.ID, &req, &routes, &q.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(req, &q.Request); err != nil {
		return nil, fmt.Errorf("quote store: decode request: %w", err)
	}
	if err := json.Unmarshal(routes, &q.Routes); err != nil {
		return nil, fmt.Errorf("quote store: decode routes: %w", err)
	}
	return &q, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/port"
)

func (s *Store) CreateClient(ctx context.Context, c *domain.Client) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (id, key_hash, revoked, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.KeyHash, c.Revoked, formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (s *Store) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	var (
		c         domain.Client
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, key_hash, revoked, created_at FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.KeyHash, &c.Revoked, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) RevokeClient(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE clients SET revoked = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("revoke client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke client: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ port.ClientStore = (*Store)(nil)

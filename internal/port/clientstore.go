package port

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
)

type ClientStore interface {
	CreateClient(ctx context.Context, c *domain.Client) error
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	RevokeClient(ctx context.Context, id string) error
}

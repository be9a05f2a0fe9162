package port

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
)

type Compressor interface {
	Compress(ctx context.Context, params domain.CompressionParams) error
}

package port

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
)

type StatisticsStore interface {
	StatisticsReport(ctx context.Context) (domain.StatisticsReport, error)
}

package service

import (
	"context"
	"fmt"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
	"github.com/bnema/vcomp/internal/port"
)

type StatisticsService struct {
	store port.StatisticsStore
}

func NewStatisticsService(store port.StatisticsStore) *StatisticsService {
	return &StatisticsService{store: store}
}

// Report aggregates every recorded compression. A store failure is returned,
// never replaced by an all-zero report.
func (s *StatisticsService) Report(ctx context.Context) (domain.StatisticsReport, error) {
	report, err := s.store.StatisticsReport(ctx)
	if err != nil {
		logger.Error.Printf("statistics report: %v", err)
		return domain.StatisticsReport{}, fmt.Errorf("statistics report: %w", err)
	}
	return report, nil
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/port"
)

const statisticsReportQuery = `
SELECT
	COALESCE(AVG(1.0 * original_size_bytes / final_size_bytes), 0),
	COALESCE(MAX(1.0 * original_size_bytes / final_size_bytes), 0),
	COALESCE(MIN(1.0 * original_size_bytes / final_size_bytes), 0),
	COALESCE(SUM(original_size_bytes - final_size_bytes), 0),
	COALESCE(MAX(original_size_bytes), 0),
	COALESCE(MIN(original_size_bytes), 0),
	COALESCE(MIN(end_timestamp - start_timestamp), 0),
	COALESCE(MAX(end_timestamp - start_timestamp), 0),
	COALESCE(AVG(end_timestamp - start_timestamp), 0),
	COALESCE(MIN(1.0 * final_size_bytes / (end_timestamp - start_timestamp)), 0),
	COALESCE(AVG(1.0 * final_size_bytes / (end_timestamp - start_timestamp)), 0),
	COALESCE(MAX(1.0 * final_size_bytes / (end_timestamp - start_timestamp)), 0)
FROM compression_statistics`

func (s *Store) StatisticsReport(ctx context.Context) (domain.StatisticsReport, error) {
	var r domain.StatisticsReport
	err := s.db.QueryRowContext(ctx, statisticsReportQuery).Scan(
		&r.AverageReductionRate,
		&r.MaxReductionRate,
		&r.MinReductionRate,
		&r.AllTimeSavedBytes,
		&r.LargestVideoCompressedSize,
		&r.SmallestVideoCompressedSize,
		&r.MinCompressionTime,
		&r.MaxCompressionTime,
		&r.AverageCompressionTime,
		&r.MinCompressedBytesPerSecond,
		&r.AverageCompressedBytesPerSecond,
		&r.MaxCompressedBytesPerSecond,
	)
	if err != nil {
		return domain.StatisticsReport{}, fmt.Errorf("compute statistics: %w", err)
	}
	return r, nil
}

var _ port.StatisticsStore = (*Store)(nil)

package domain

import "time"

// CompressionStatistics is written once per successfully completed compression job.
type CompressionStatistics struct {
	JobID             string
	OriginalSizeBytes int64
	FinalSizeBytes    int64
	StartTimestamp    int64
	EndTimestamp      int64
}

// NewCompressionStatistics truncates start/end to unix seconds. A run that
// finishes within the same second is recorded as lasting one second.
func NewCompressionStatistics(jobID string, originalSize, finalSize int64, start, end time.Time) CompressionStatistics {
	startTS := start.Unix()
	endTS := end.Unix()
	if endTS <= startTS {
		endTS = startTS + 1
	}

	return CompressionStatistics{
		JobID:             jobID,
		OriginalSizeBytes: originalSize,
		FinalSizeBytes:    finalSize,
		StartTimestamp:    startTS,
		EndTimestamp:      endTS,
	}
}

func (s CompressionStatistics) DurationSeconds() int64 {
	return s.EndTimestamp - s.StartTimestamp
}

type StatisticsReport struct {
	AverageReductionRate            float64 `json:"averageReductionRate"`
	MaxReductionRate                float64 `json:"maxReductionRate"`
	MinReductionRate                float64 `json:"minReductionRate"`
	AllTimeSavedBytes               int64   `json:"allTimeSavedBytes"`
	LargestVideoCompressedSize      int64   `json:"largestVideoCompressedSize"`
	SmallestVideoCompressedSize     int64   `json:"smallestVideoCompressedSize"`
	MinCompressionTime              float64 `json:"minCompressionTime"`
	MaxCompressionTime              float64 `json:"maxCompressionTime"`
	AverageCompressionTime          float64 `json:"averageCompressionTime"`
	MinCompressedBytesPerSecond     float64 `json:"minCompressedBytesPerSecond"`
	AverageCompressedBytesPerSecond float64 `json:"averageCompressedBytesPerSecond"`
	MaxCompressedBytesPerSecond     float64 `json:"maxCompressedBytesPerSecond"`
}

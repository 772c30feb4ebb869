package report

import (
	"time"

	"github.com/meetup/ecr-insights/internal/models"
)

// image builds a record pushed at the given time; a zero time leaves PushedAt unset
func image(digest string, pushed time.Time, size int64) models.ImageRecord {
	rec := models.ImageRecord{Digest: digest, SizeBytes: &size}
	if !pushed.IsZero() {
		rec.PushedAt = &pushed
	}
	return rec
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 10, 0, 0, 0, time.UTC)
}

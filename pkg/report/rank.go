package report

import (
	"sort"
	"time"

	"github.com/meetup/ecr-insights/internal/models"
)

// RankImages returns the images pushed strictly before cutoff, most recent
// first. Images without a push time count as pushed at the Unix epoch. The
// input slice is left untouched.
func RankImages(images []models.ImageRecord, cutoff time.Time) []models.ImageRecord {
	ranked := make([]models.ImageRecord, 0, len(images))
	for _, image := range images {
		if image.PushTime().Before(cutoff) {
			ranked = append(ranked, image)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PushTime().After(ranked[j].PushTime())
	})

	return ranked
}

package report

import (
	"time"

	"github.com/meetup/ecr-insights/internal/models"
)

// DefaultCap is the number of recent images kept in the capped cost forecast
const DefaultCap = 2

// Summarize builds the summary of one repository from its full image list.
// Only images pushed before cutoff are counted. The recent size covers the
// first window images of that set, newest first.
func Summarize(name string, images []models.ImageRecord, cutoff time.Time, window int) models.RepoSummary {
	ranked := RankImages(images, cutoff)

	summary := models.RepoSummary{
		Name:         name,
		HostedImages: len(ranked),
	}
	if len(ranked) == 0 {
		return summary
	}

	summary.LastPushed = ranked[0].PushedAt
	summary.LatestImageSize = ranked[0].Size()
	summary.LatestDigest = ranked[0].Digest
	summary.LatestTags = ranked[0].Tags

	for i, image := range ranked {
		size := image.Size()
		summary.AggregateImageSize += size
		if i < window {
			summary.RecentImageSize += size
		}
	}

	return summary
}

package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/meetup/ecr-insights/internal/models"
	"github.com/meetup/ecr-insights/pkg/logger"
	"github.com/meetup/ecr-insights/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of repositories scanned at the same time
const DefaultConcurrency = 4

// Registry lists repositories and their images
type Registry interface {
	AllRepositories(ctx context.Context) ([]string, error)
	AllImages(ctx context.Context, repository string) ([]models.ImageRecord, error)
}

// ProgressFunc is called after each repository has been summarized
type ProgressFunc func(done, total int, repository string)

// Collector fetches every repository of a registry and summarizes it
type Collector struct {
	Registry    Registry
	Cap         int
	Concurrency int
	Now         func() time.Time
	Progress    ProgressFunc
}

// NewCollector returns a collector with default settings
func NewCollector(registry Registry) *Collector {
	return &Collector{
		Registry:    registry,
		Cap:         DefaultCap,
		Concurrency: DefaultConcurrency,
		Now:         time.Now,
	}
}

// Collect returns one summary per repository, in the order the registry
// listed them. The first failure cancels the remaining work and is returned
// without any partial result.
func (c *Collector) Collect(ctx context.Context) ([]models.RepoSummary, error) {
	if c.Cap < 1 {
		return nil, fmt.Errorf("cap must be a positive integer, got %d", c.Cap)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	cutoff := utils.StartOfMonth(now())

	names, err := c.Registry.AllRepositories(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Repositories found", "count", len(names), "cutoff", cutoff.Format(utils.DisplayTimeFormat))

	summaries := make([]models.RepoSummary, len(names))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Concurrency, 1))

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			images, err := c.Registry.AllImages(gctx, name)
			if err != nil {
				return err
			}

			summaries[i] = Summarize(name, images, cutoff, c.Cap)
			logger.Debug("Repository summarized",
				"repository", name,
				"images", len(images),
				"counted", summaries[i].HostedImages,
				"latest", summaries[i].LatestDigest,
				"tags", summaries[i].LatestTags,
				"size", humanize.IBytes(uint64(summaries[i].AggregateImageSize)))

			if c.Progress != nil {
				mu.Lock()
				done++
				c.Progress(done, len(names), name)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}

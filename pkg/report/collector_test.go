package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/meetup/ecr-insights/internal/models"
	"github.com/meetup/ecr-insights/pkg/logger"
	"github.com/meetup/ecr-insights/pkg/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	repos    []string
	images   map[string][]models.ImageRecord
	listErr  error
	imageErr map[string]error

	mu     sync.Mutex
	called []string
}

func (f *fakeRegistry) AllRepositories(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.repos, nil
}

func (f *fakeRegistry) AllImages(_ context.Context, repository string) ([]models.ImageRecord, error) {
	f.mu.Lock()
	f.called = append(f.called, repository)
	f.mu.Unlock()

	if err := f.imageErr[repository]; err != nil {
		return nil, err
	}
	return f.images[repository], nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
}

func newTestCollector(registry Registry, concurrency int) *Collector {
	c := NewCollector(registry)
	c.Concurrency = concurrency
	c.Now = fixedNow
	return c
}

func TestCollectEmptyRepository(t *testing.T) {
	registry := &fakeRegistry{repos: []string{"empty"}}

	summaries, err := newTestCollector(registry, 1).Collect(context.Background())
	require.NoError(t, err)

	r := Build(summaries, pricing.DefaultModel())
	require.Len(t, r.Rows, 1)
	row := r.Rows[0]
	assert.Equal(t, "empty", row.Name)
	assert.Zero(t, row.LatestImageSize)
	assert.Zero(t, row.HostedImages)
	assert.Equal(t, "0.00", fmt.Sprintf("%.2f", row.MonthlyCost))
	assert.Equal(t, "0.00", fmt.Sprintf("%.2f", row.MonthlyCappedCost))
}

func TestCollectThreeImages(t *testing.T) {
	registry := &fakeRegistry{
		repos: []string{"api"},
		images: map[string][]models.ImageRecord{
			"api": {
				image("half", day(time.February, 10), 536870912),
				image("quarter", day(time.January, 10), 268435456),
				image("full", day(time.February, 20), 1073741824),
			},
		},
	}

	summaries, err := newTestCollector(registry, 1).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, int64(1879048192), s.AggregateImageSize)
	assert.Equal(t, int64(1610612736), s.RecentImageSize)

	r := Build(summaries, pricing.DefaultModel())
	assert.Equal(t, "0.11", fmt.Sprintf("%.2f", r.Rows[0].MonthlyCost))
	assert.Equal(t, "0.10", fmt.Sprintf("%.2f", r.Rows[0].MonthlyCappedCost))
}

func TestCollectTwoRepositories(t *testing.T) {
	registry := &fakeRegistry{
		repos: []string{"small", "large"},
		images: map[string][]models.ImageRecord{
			"small": {image("s1", day(time.January, 1), 1<<20)},
			"large": {
				image("l1", day(time.January, 1), 1<<30),
				image("l2", day(time.February, 1), 2<<30),
			},
		},
	}

	summaries, err := newTestCollector(registry, 2).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "small", summaries[0].Name, "summaries keep listing order")

	r := Build(summaries, pricing.DefaultModel())
	require.Len(t, r.Rows, 2)
	assert.Equal(t, "large", r.Rows[0].Name)
	assert.Equal(t, "small", r.Rows[1].Name)
	assert.InEpsilon(t, r.Rows[0].MonthlyCost+r.Rows[1].MonthlyCost, r.TotalMonthlyCost, 1e-9)
}

func TestCollectConcurrencyKeepsOrder(t *testing.T) {
	registry := &fakeRegistry{images: map[string][]models.ImageRecord{}}
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("repo-%02d", i)
		registry.repos = append(registry.repos, name)
		registry.images[name] = []models.ImageRecord{image(name, day(time.January, 1+i%28), int64(i))}
	}

	var progress []int
	c := newTestCollector(registry, 8)
	c.Progress = func(done, total int, _ string) {
		assert.Equal(t, 40, total)
		progress = append(progress, done)
	}

	summaries, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 40)
	for i, s := range summaries {
		assert.Equal(t, registry.repos[i], s.Name)
		assert.Equal(t, int64(i), s.LatestImageSize)
	}
	require.Len(t, progress, 40)
	assert.Equal(t, 40, progress[39])
}

func TestCollectFailsFast(t *testing.T) {
	boom := errors.New("throttling")
	registry := &fakeRegistry{
		repos:    []string{"a", "b", "c"},
		imageErr: map[string]error{"b": boom},
	}

	summaries, err := newTestCollector(registry, 1).Collect(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, summaries)
	assert.NotContains(t, registry.called, "c", "sequential scan stops at the first failure")
}

func TestCollectListFailure(t *testing.T) {
	boom := errors.New("access denied")
	summaries, err := newTestCollector(&fakeRegistry{listErr: boom}, 1).Collect(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Nil(t, summaries)
}

func TestCollectRejectsInvalidCap(t *testing.T) {
	c := newTestCollector(&fakeRegistry{}, 1)
	c.Cap = 0

	_, err := c.Collect(context.Background())
	assert.ErrorContains(t, err, "cap must be a positive integer")
}

func TestCollectLogsLatestImage(t *testing.T) {
	var buf bytes.Buffer
	l := logger.GetLogger()
	previous := l.GetLevel()
	l.SetLevel(log.DebugLevel)
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		l.SetLevel(previous)
		logger.SetOutput(os.Stderr)
	})

	newest := image("newest", day(time.February, 20), 10)
	newest.Tags = []string{"v3"}
	registry := &fakeRegistry{
		repos: []string{"api"},
		images: map[string][]models.ImageRecord{
			"api": {image("older", day(time.January, 2), 10), newest},
		},
	}

	summaries, err := newTestCollector(registry, 1).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "newest", summaries[0].LatestDigest)
	assert.Equal(t, []string{"v3"}, summaries[0].LatestTags)

	out := buf.String()
	assert.Contains(t, out, "Repository summarized")
	assert.Contains(t, out, "latest=newest")
	assert.Contains(t, out, "v3")
}

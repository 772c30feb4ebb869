package models

import "time"

// ImageRecord holds the metadata of a single image in an ECR repository
type ImageRecord struct {
	Digest    string
	Tags      []string
	PushedAt  *time.Time // nil when the registry did not report a push time
	SizeBytes *int64     // nil when the registry did not report a size
}

// PushTime returns the push time, or the Unix epoch when it is absent
func (r ImageRecord) PushTime() time.Time {
	if r.PushedAt == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.PushedAt
}

// Size returns the image size in bytes, or 0 when it is absent or negative
func (r ImageRecord) Size() int64 {
	if r.SizeBytes == nil || *r.SizeBytes < 0 {
		return 0
	}
	return *r.SizeBytes
}

// RepoSummary is the per-repository aggregate used for cost estimation
type RepoSummary struct {
	Name               string
	LastPushed         *time.Time // Push time of the most recent image, nil if none
	LatestImageSize    int64
	AggregateImageSize int64 // Sum over every image pushed before the cutoff
	RecentImageSize    int64 // Sum over the capped window of most recent images
	HostedImages       int

	LatestDigest string
	LatestTags   []string
}

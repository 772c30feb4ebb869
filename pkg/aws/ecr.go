package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/meetup/ecr-insights/internal/models"
)

// ECRAPI is the subset of the ECR client used by ECRClient
type ECRAPI interface {
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	DescribeImages(ctx context.Context, params *ecr.DescribeImagesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error)
}

// ECRClient wraps the ECR API calls
type ECRClient struct {
	client ECRAPI
	region string
}

// NewECRClient creates a new ECR client from a loaded AWS configuration
func NewECRClient(cfg aws.Config) *ECRClient {
	return &ECRClient{
		client: ecr.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// NewECRClientWithAPI creates an ECR client over an existing API implementation
func NewECRClientWithAPI(api ECRAPI, region string) *ECRClient {
	return &ECRClient{client: api, region: region}
}

// Region returns the region the client talks to
func (c *ECRClient) Region() string {
	return c.region
}

// ListRepositories returns one page of repository names
func (c *ECRClient) ListRepositories(ctx context.Context, token *string) ([]string, *string, error) {
	output, err := c.client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		MaxResults: aws.Int32(MaxPageSize),
		NextToken:  token,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to describe ECR repositories in region %s: %w", c.region, err)
	}

	names := make([]string, 0, len(output.Repositories))
	for _, repo := range output.Repositories {
		names = append(names, aws.ToString(repo.RepositoryName))
	}
	return names, output.NextToken, nil
}

// ListImages returns one page of image records for a repository
func (c *ECRClient) ListImages(ctx context.Context, repository string, token *string) ([]models.ImageRecord, *string, error) {
	output, err := c.client.DescribeImages(ctx, &ecr.DescribeImagesInput{
		RepositoryName: aws.String(repository),
		MaxResults:     aws.Int32(MaxPageSize),
		NextToken:      token,
	})
	if err != nil {
		var notFound *types.RepositoryNotFoundException
		if errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("repository %s not found during image description: %w", repository, err)
		}
		return nil, nil, fmt.Errorf("failed to describe images for repository %s: %w", repository, err)
	}

	records := make([]models.ImageRecord, 0, len(output.ImageDetails))
	for _, detail := range output.ImageDetails {
		records = append(records, toImageRecord(detail))
	}
	return records, output.NextToken, nil
}

// AllRepositories returns the names of every repository in the registry
func (c *ECRClient) AllRepositories(ctx context.Context) ([]string, error) {
	names, err := CollectPages(ctx, c.ListRepositories)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return names, nil
}

// AllImages returns every image record in a repository
func (c *ECRClient) AllImages(ctx context.Context, repository string) ([]models.ImageRecord, error) {
	images, err := CollectPages(ctx, func(ctx context.Context, token *string) ([]models.ImageRecord, *string, error) {
		return c.ListImages(ctx, repository, token)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list images for %s: %w", repository, err)
	}
	return images, nil
}

func toImageRecord(detail types.ImageDetail) models.ImageRecord {
	return models.ImageRecord{
		Digest:    aws.ToString(detail.ImageDigest),
		Tags:      detail.ImageTags,
		PushedAt:  detail.ImagePushedAt,
		SizeBytes: detail.ImageSizeInBytes,
	}
}

package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/meetup/ecr-insights/pkg/logger"
	"github.com/meetup/ecr-insights/pkg/utils"
)

// imdsTimeout bounds the metadata lookup when not running on EC2
const imdsTimeout = 2 * time.Second

// LoadConfig loads the default AWS configuration. The region is taken from the
// argument when set, then from the SDK default chain, then from EC2 instance
// metadata, and finally falls back to utils.GetDefaultRegion.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithEC2IMDSClientEnableState(imds.ClientEnabled),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Region == "" {
		cfg.Region = regionFromIMDS(ctx, cfg)
	}
	if cfg.Region == "" {
		cfg.Region = utils.GetDefaultRegion()
		logger.Debug("No region configured, using default", "region", cfg.Region)
	}

	return cfg, nil
}

// regionFromIMDS asks the instance metadata service for the current region
func regionFromIMDS(ctx context.Context, cfg aws.Config) string {
	ctx, cancel := context.WithTimeout(ctx, imdsTimeout)
	defer cancel()

	out, err := imds.NewFromConfig(cfg).GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		logger.Debug("Instance metadata region lookup failed", "error", err)
		return ""
	}
	logger.Debug("Region resolved from instance metadata", "region", out.Region)
	return out.Region
}

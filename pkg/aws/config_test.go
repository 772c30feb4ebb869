package aws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigExplicitRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "us-west-2")

	cfg, err := LoadConfig(context.Background(), "eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestLoadConfigRegionFromEnvironment(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-northeast-2")

	cfg, err := LoadConfig(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ap-northeast-2", cfg.Region)
}

func TestNewECRClientRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-central-1")

	cfg, err := LoadConfig(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", NewECRClient(cfg).Region())
}

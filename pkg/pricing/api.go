package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	awsclient "github.com/meetup/ecr-insights/pkg/aws"
	"github.com/meetup/ecr-insights/pkg/logger"
)

// ProductsAPI is the subset of the Pricing client used here
type ProductsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// AWS pricing client implementation
var (
	// PricingClient is the AWS Pricing API client
	PricingClient ProductsAPI

	// PricingInitOnce ensures the client is initialized only once
	PricingInitOnce sync.Once
)

// pricingRegion hosts the Price List API endpoint
const pricingRegion = "us-east-1"

// InitPricingClient initializes the AWS pricing client
// The AWS Pricing API is only available in us-east-1 and ap-south-1 regions
func InitPricingClient() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(pricingRegion))
	if err != nil {
		logger.Warn("Error loading AWS config for pricing API, using fallback pricing", "error", err)
		return
	}

	PricingClient = pricing.NewFromConfig(cfg)
	logger.Debug("AWS Pricing API initialized", "endpoint", fmt.Sprintf("https://api.pricing.%s.amazonaws.com", pricingRegion))
}

// maxPricingResults is the largest page GetProducts accepts
const maxPricingResults int32 = 100

// GetPricingProducts returns every product matching filters, following all result pages
func GetPricingProducts(ctx context.Context, serviceCode string, filters []types.Filter, resourceType, region string) ([]string, error) {
	PricingInitOnce.Do(InitPricingClient)

	if PricingClient == nil {
		return nil, fmt.Errorf("AWS pricing client not initialized")
	}

	products, err := awsclient.CollectPages(ctx, func(ctx context.Context, token *string) ([]string, *string, error) {
		resp, err := PricingClient.GetProducts(ctx, &pricing.GetProductsInput{
			ServiceCode: aws.String(serviceCode),
			Filters:     filters,
			MaxResults:  aws.Int32(maxPricingResults),
			NextToken:   token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("error calling AWS Pricing API: %w", err)
		}
		return resp.PriceList, resp.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no pricing found for %s in region %s", resourceType, region)
	}

	return products, nil
}

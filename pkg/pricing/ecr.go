package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/meetup/ecr-insights/pkg/logger"
	"github.com/meetup/ecr-insights/pkg/utils"
)

// statsService is the service label used in pricing API statistics
const statsService = "ECR"

// GetECRStoragePriceWithSource returns the ECR storage price per GB-month for a
// region and the source of the price. Lookup failures never surface as errors:
// the published default price is used instead.
func GetECRStoragePriceWithSource(ctx context.Context, region string) (float64, PricingSource) {
	ECRPricingCacheLock.RLock()
	if price, found := ECRPricingCache[region]; found {
		ECRPricingCacheLock.RUnlock()

		RecordLookup(statsService, region, PricingSourceCache)

		return price, PricingSourceCache
	}
	ECRPricingCacheLock.RUnlock()

	price, err := getECRPriceFromAPI(ctx, region)
	if err != nil {
		logger.Warn("Error getting ECR storage price from API, using default pricing",
			"region", region, "error", err, "price", DefaultStoragePricePerGBMonth)

		RecordLookup(statsService, region, PricingSourceDefault)

		return DefaultStoragePricePerGBMonth, PricingSourceDefault
	}

	RecordLookup(statsService, region, PricingSourceAPI)

	ECRPricingCacheLock.Lock()
	ECRPricingCache[region] = price
	ECRPricingCacheLock.Unlock()

	logger.Debug("ECR storage price retrieved", "region", region, "price", price)
	return price, PricingSourceAPI
}

// getECRPriceFromAPI retrieves the ECR storage price from the AWS Pricing API
func getECRPriceFromAPI(ctx context.Context, region string) (float64, error) {
	location, ok := utils.GetRegionDescriptiveName(region)
	if !ok {
		return 0, fmt.Errorf("no Price List location known for region %s", region)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("location"),
			Value: aws.String(location),
		},
	}

	products, err := GetPricingProducts(ctx, ServiceCodeECR, filters, "storage", region)
	if err != nil {
		return 0, err
	}

	for _, product := range products {
		priceData, err := utils.ParseJSON(product)
		if err != nil {
			continue
		}

		usageType, err := utils.GetNestedString(priceData, "product", "attributes", "usagetype")
		if err != nil || !strings.HasSuffix(usageType, storageUsageType) {
			continue
		}

		return ExtractOnDemandPrice(product)
	}

	return 0, fmt.Errorf("no storage product found for ECR in region %s", region)
}

// ResetCache clears the cached ECR prices
func ResetCache() {
	ECRPricingCacheLock.Lock()
	defer ECRPricingCacheLock.Unlock()

	ECRPricingCache = make(map[string]float64)
}

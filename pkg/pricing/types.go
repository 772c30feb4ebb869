package pricing

import (
	"sync"
)

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceDefault indicates pricing data came from hardcoded defaults
	PricingSourceDefault PricingSource = "Default"
)

const (
	// ServiceCodeECR is the Price List service code for Amazon ECR
	ServiceCodeECR = "AmazonECR"

	// DefaultStoragePricePerGBMonth is the published ECR storage price in USD
	// https://aws.amazon.com/ecr/pricing/
	DefaultStoragePricePerGBMonth = 0.10

	// DefaultCompressionFactor approximates stored size relative to the size ECR reports
	DefaultCompressionFactor = 0.65

	// BytesPerGB is the number of bytes in the GB unit ECR bills by
	BytesPerGB = 1 << 30

	// storageUsageType is the usagetype suffix of the storage product
	storageUsageType = "TimedStorage-ByteHrs"
)

// LookupStats counts price lookups by the source that answered them
type LookupStats map[PricingSource]int

// Stats tracking for pricing API calls
var (
	// PricingAPIStats tracks lookups by service and region
	PricingAPIStats = make(map[string]map[string]LookupStats)

	// PricingAPIStatsLock protects the stats map from concurrent access
	PricingAPIStatsLock sync.RWMutex
)

// ECR storage cache
var (
	// ECRPricingCache caches the storage price per region
	ECRPricingCache = make(map[string]float64)

	// ECRPricingCacheLock protects the ECR cache from concurrent access
	ECRPricingCacheLock sync.RWMutex
)

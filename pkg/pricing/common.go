package pricing

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// storageUnit is the billing unit of the ECR storage price dimension
const storageUnit = "GB-Mo"

// RecordLookup counts one price lookup for service and region under the
// source the price was taken from. A Default source marks a failed API call.
func RecordLookup(service, region string, source PricingSource) {
	PricingAPIStatsLock.Lock()
	defer PricingAPIStatsLock.Unlock()

	regions, ok := PricingAPIStats[service]
	if !ok {
		regions = make(map[string]LookupStats)
		PricingAPIStats[service] = regions
	}

	counts, ok := regions[region]
	if !ok {
		counts = make(LookupStats)
		regions[region] = counts
	}
	counts[source]++
}

// onDemandTerms is the part of a Price List product holding on-demand prices
type onDemandTerms struct {
	Terms struct {
		OnDemand map[string]struct {
			PriceDimensions map[string]struct {
				Unit         string            `json:"unit"`
				PricePerUnit map[string]string `json:"pricePerUnit"`
			} `json:"priceDimensions"`
		} `json:"OnDemand"`
	} `json:"terms"`
}

// ExtractOnDemandPrice returns the USD on-demand price per GB-month of a
// Price List product. Offers and dimensions are visited in key order so the
// same document always yields the same price.
func ExtractOnDemandPrice(priceJSON string) (float64, error) {
	var product onDemandTerms
	if err := json.Unmarshal([]byte(priceJSON), &product); err != nil {
		return 0, fmt.Errorf("error parsing pricing data: %w", err)
	}

	offers := product.Terms.OnDemand
	if len(offers) == 0 {
		return 0, fmt.Errorf("no on-demand offer found")
	}

	for _, sku := range slices.Sorted(maps.Keys(offers)) {
		dimensions := offers[sku].PriceDimensions
		for _, key := range slices.Sorted(maps.Keys(dimensions)) {
			dimension := dimensions[key]
			if dimension.Unit != storageUnit {
				continue
			}

			usd, ok := dimension.PricePerUnit["USD"]
			if !ok {
				return 0, fmt.Errorf("USD price not found in dimension %s", key)
			}

			price, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return 0, fmt.Errorf("error parsing price %q: %w", usd, err)
			}
			return price, nil
		}
	}

	return 0, fmt.Errorf("no %s price dimension found", storageUnit)
}

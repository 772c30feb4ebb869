package pricing

import "maps"

// GetAPIStats returns a copy of the current pricing API statistics
func GetAPIStats() map[string]map[string]LookupStats {
	PricingAPIStatsLock.RLock()
	defer PricingAPIStatsLock.RUnlock()

	statsCopy := make(map[string]map[string]LookupStats, len(PricingAPIStats))
	for service, regions := range PricingAPIStats {
		statsCopy[service] = make(map[string]LookupStats, len(regions))
		for region, counts := range regions {
			statsCopy[service][region] = maps.Clone(counts)
		}
	}

	return statsCopy
}

// ResetAPIStats clears all recorded pricing API statistics
func ResetAPIStats() {
	PricingAPIStatsLock.Lock()
	defer PricingAPIStatsLock.Unlock()

	PricingAPIStats = make(map[string]map[string]LookupStats)
}

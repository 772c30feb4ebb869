package pricing

import "github.com/meetup/ecr-insights/internal/models"

// Model turns stored image bytes into a monthly dollar estimate. The result is
// a best-effort approximation, not a billing-accurate figure.
type Model struct {
	PricePerGBMonth   float64
	CompressionFactor float64
	Source            PricingSource
}

// DefaultModel returns the model built from the published default price
func DefaultModel() Model {
	return NewModel(DefaultStoragePricePerGBMonth, PricingSourceDefault)
}

// NewModel returns a model using the given price and the default compression factor
func NewModel(pricePerGBMonth float64, source PricingSource) Model {
	return Model{
		PricePerGBMonth:   pricePerGBMonth,
		CompressionFactor: DefaultCompressionFactor,
		Source:            source,
	}
}

// CostForBytes returns the monthly cost of storing size bytes
func (m Model) CostForBytes(size int64) float64 {
	if size <= 0 {
		return 0
	}
	return float64(size) / BytesPerGB * m.CompressionFactor * m.PricePerGBMonth
}

// MonthlyCost estimates the cost of keeping every image in the summary
func (m Model) MonthlyCost(s models.RepoSummary) float64 {
	return m.CostForBytes(s.AggregateImageSize)
}

// MonthlyCappedCost estimates the cost of keeping only the capped window of recent images
func (m Model) MonthlyCappedCost(s models.RepoSummary) float64 {
	return m.CostForBytes(s.RecentImageSize)
}

package report

import (
	"sort"

	"github.com/meetup/ecr-insights/internal/models"
	"github.com/meetup/ecr-insights/pkg/pricing"
	"github.com/meetup/ecr-insights/pkg/utils"
)

// Row is one repository line of the report
type Row struct {
	Name              string
	LastPushed        string // Empty when the repository has no counted images
	LatestImageSize   int64
	HostedImages      int
	MonthlyCost       float64
	MonthlyCappedCost float64
}

// Report holds the ordered repository rows and their totals
type Report struct {
	Rows             []Row
	TotalMonthlyCost float64
	TotalCappedCost  float64
	PricingSource    pricing.PricingSource
}

// Build orders the summaries by latest image size, largest first, keeping
// input order for ties, and prices each one with model. Totals are
// accumulated in row order.
func Build(summaries []models.RepoSummary, model pricing.Model) Report {
	sorted := make([]models.RepoSummary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LatestImageSize > sorted[j].LatestImageSize
	})

	r := Report{
		Rows:          make([]Row, 0, len(sorted)),
		PricingSource: model.Source,
	}
	for _, s := range sorted {
		row := Row{
			Name:              s.Name,
			LastPushed:        utils.FormatTimestamp(s.LastPushed),
			LatestImageSize:   s.LatestImageSize,
			HostedImages:      s.HostedImages,
			MonthlyCost:       model.MonthlyCost(s),
			MonthlyCappedCost: model.MonthlyCappedCost(s),
		}
		r.TotalMonthlyCost += row.MonthlyCost
		r.TotalCappedCost += row.MonthlyCappedCost
		r.Rows = append(r.Rows, row)
	}

	return r
}

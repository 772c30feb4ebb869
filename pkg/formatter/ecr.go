package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/meetup/ecr-insights/pkg/report"
)

// Format selects how the report is rendered
type Format string

const (
	// FormatTSV renders tab-aligned columns with a totals line
	FormatTSV Format = "tsv"

	// FormatCSV renders comma-separated lines without totals
	FormatCSV Format = "csv"
)

// Formats lists the supported output formats
var Formats = []Format{FormatTSV, FormatCSV}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, supported := range Formats {
		if f == supported {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (supported: tsv, csv)", name)
}

// Options controls report rendering
type Options struct {
	Format        Format
	HumanReadable bool
	NoHeaders     bool
}

var header = []string{"NAME", "LAST PUSHED", "LATEST SIZE", "IMAGES", "MONTHLY COST", "CAPPED COST"}

// WriteReport renders the report to out in the requested format
func WriteReport(out io.Writer, r report.Report, opts Options) error {
	switch opts.Format {
	case FormatTSV, "":
		return writeTable(out, r, opts)
	case FormatCSV:
		return writeCSV(out, r, opts)
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}
}

func rowCells(row report.Row, humanReadable bool) []string {
	return []string{
		row.Name,
		row.LastPushed,
		formatSize(row.LatestImageSize, humanReadable),
		strconv.Itoa(row.HostedImages),
		formatDollars(row.MonthlyCost),
		formatDollars(row.MonthlyCappedCost),
	}
}

// writeTable prints aligned columns followed by a single totals line
func writeTable(out io.Writer, r report.Report, opts Options) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	if !opts.NoHeaders {
		if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, row := range r.Rows {
		if _, err := fmt.Fprintln(w, strings.Join(rowCells(row, opts.HumanReadable), "\t")); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Name, err)
		}
	}

	if _, err := fmt.Fprintf(w, "Total:\t\t\t\t%s\t%s\n",
		formatDollars(r.TotalMonthlyCost),
		formatDollars(r.TotalCappedCost),
	); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

// writeCSV prints one comma-separated line per repository
func writeCSV(out io.Writer, r report.Report, opts Options) error {
	w := csv.NewWriter(out)

	if !opts.NoHeaders {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, row := range r.Rows {
		if err := w.Write(rowCells(row, opts.HumanReadable)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

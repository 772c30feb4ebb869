package formatter

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ScanCompletedMessage returns the line shown when a scan finishes
func ScanCompletedMessage(repositories int, totalBytes int64, scanDuration time.Duration) string {
	return fmt.Sprintf("✓ [%d repositories, %s counted] ECR resources analyzed - Completed in %.2f seconds\n",
		repositories, humanize.IBytes(uint64(max(totalBytes, 0))), scanDuration.Seconds())
}

// formatDollars formats a cost with two decimal places
func formatDollars(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatSize formats a byte count either raw or in IEC units
func formatSize(size int64, humanReadable bool) string {
	if humanReadable {
		return humanize.IBytes(uint64(max(size, 0)))
	}
	return fmt.Sprintf("%d", size)
}

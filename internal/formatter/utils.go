package formatter

import (
	"fmt"

	"github.com/yildizm/EmbedScope/internal/projection"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// formatRange renders a data range with two decimals, like the axis ticks
func formatRange(r projection.Range) string {
	return fmt.Sprintf("%.2f .. %.2f", r.Min, r.Max)
}

// formatPercent renders a fraction as a percentage
func formatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

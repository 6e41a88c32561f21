package formatter

import (
	"fmt"
	"strings"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Hotspot Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, report)

	if len(report.Hotspots) > 0 {
		f.writeHotspotTable(&b, report)
		f.writeHotspotSections(&b, report)
	} else {
		b.WriteString("_No hotspots found._\n")
	}

	return []byte(b.String()), nil
}

// writeSummaryTable writes the run parameters
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	if report.Source != "" {
		fmt.Fprintf(b, "| Source | `%s` |\n", report.Source)
	}
	fmt.Fprintf(b, "| Points | %s |\n", formatNumber(report.Points))
	fmt.Fprintf(b, "| Axes | %s × %s |\n", escapeMarkdown(report.XDim), escapeMarkdown(report.YDim))
	fmt.Fprintf(b, "| %s range | %s |\n", escapeMarkdown(report.XDim), formatRange(report.Bounds.X))
	fmt.Fprintf(b, "| %s range | %s |\n", escapeMarkdown(report.YDim), formatRange(report.Bounds.Y))
	fmt.Fprintf(b, "| Threshold | %.0fpx |\n", report.Threshold)
	fmt.Fprintf(b, "| Min cluster size | %d |\n", report.MinClusterSize)
	fmt.Fprintf(b, "| Hotspots | %d |\n", len(report.Hotspots))
	fmt.Fprintf(b, "| Clustered points | %s (%s) |\n\n", formatNumber(report.Clustered), formatPercent(report.ClusteredShare()))
}

// writeHotspotTable writes one row per hotspot in detection order
func (f *markdownFormatter) writeHotspotTable(b *strings.Builder, report *Report) {
	b.WriteString("## Hotspots\n\n")
	fmt.Fprintf(b, "| # | Size | Share | %s | %s | Seed |\n", escapeMarkdown(report.XDim), escapeMarkdown(report.YDim))
	b.WriteString("|---|------|-------|----|----|------|\n")
	for _, h := range report.Hotspots {
		fmt.Fprintf(b, "| %d | %d | %s | %s | %s | `%s` |\n",
			h.Rank, h.Size, formatPercent(h.Share),
			formatRange(h.DataBounds.X), formatRange(h.DataBounds.Y), h.SeedID)
	}
	b.WriteString("\n")
}

// writeHotspotSections lists sample members per hotspot
func (f *markdownFormatter) writeHotspotSections(b *strings.Builder, report *Report) {
	for _, h := range report.Hotspots {
		if len(h.SampleTitles) == 0 {
			continue
		}
		fmt.Fprintf(b, "### Hotspot %d\n\n", h.Rank)
		for _, title := range h.SampleTitles {
			fmt.Fprintf(b, "- %s\n", escapeMarkdown(title))
		}
		if more := h.Size - len(h.SampleTitles); more > 0 {
			fmt.Fprintf(b, "- _and %d more_\n", more)
		}
		b.WriteString("\n")
	}
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

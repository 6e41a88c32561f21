package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/EmbedScope/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// maxTextHotspots limits the hotspots listed in text output
const maxTextHotspots = 5

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeOverview(&b, report)

	if len(report.Hotspots) > 0 {
		f.writeTopHotspots(&b, report)
	} else {
		fmt.Fprintf(&b, "%s No hotspots at threshold %.0fpx with at least %d points\n",
			emoji.GetEmoji("info"), report.Threshold, report.MinClusterSize)
	}

	return []byte(b.String()), nil
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Embedding Hotspots"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeOverview writes the run parameters as a tree
func (f *terminalFormatter) writeOverview(b *strings.Builder, report *Report) {
	b.WriteString(emoji.GetEmoji("statistics") + " Overview\n")

	items := []termfmt.TreeItem{
		{Label: "Points", Value: formatNumber(report.Points)},
		{Label: "Axes", Value: fmt.Sprintf("%s × %s", report.XDim, report.YDim)},
		{Label: report.XDim, Value: formatRange(report.Bounds.X)},
		{Label: report.YDim, Value: formatRange(report.Bounds.Y)},
		{Label: "Threshold", Value: fmt.Sprintf("%.0fpx (min %d points)", report.Threshold, report.MinClusterSize)},
		{Label: "Clustered", Value: fmt.Sprintf("%s (%s)", formatNumber(report.Clustered), formatPercent(report.ClusteredShare())), Last: true},
	}
	if report.Source != "" {
		items = append([]termfmt.TreeItem{{Label: "Source", Value: report.Source}}, items...)
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeTopHotspots writes the largest hotspots with share bars
func (f *terminalFormatter) writeTopHotspots(b *strings.Builder, report *Report) {
	fmt.Fprintf(b, "%s Top Hotspots (%d found)\n", emoji.GetEmoji("hotspot"), len(report.Hotspots))

	sorted := report.BySize()
	if len(sorted) > maxTextHotspots {
		sorted = sorted[:maxTextHotspots]
	}

	items := make([]termfmt.TreeItem, 0, len(sorted))
	for i, h := range sorted {
		children := []termfmt.TreeItem{
			{Label: "Share", Value: termfmt.CreateConfidenceBar(h.Share, f.opts) + " " + formatPercent(h.Share)},
			{Label: report.XDim, Value: formatRange(h.DataBounds.X)},
			{Label: report.YDim, Value: formatRange(h.DataBounds.Y)},
			{Label: "Center", Value: fmt.Sprintf("(%.0f, %.0f)", h.CenterX, h.CenterY)},
		}
		if len(h.SampleTitles) > 0 {
			children = append(children, termfmt.TreeItem{Label: "Samples", Value: strings.Join(h.SampleTitles, "; ")})
		}
		children[len(children)-1].Last = true

		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("#%d", h.Rank),
			Value:    fmt.Sprintf("%s points, seed %s", formatNumber(h.Size), h.SeedID),
			Children: children,
			Last:     i == len(sorted)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/formatter"
	"github.com/yildizm/EmbedScope/internal/session"
)

var (
	hotspotsFormat     string
	hotspotsOutputFile string
	hotspotsView       viewFlags
)

func newHotspotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotspots [file]",
		Short: "Report the hotspots of one dimension pair",
		Long: `Detect hotspots for a pair of dimensions without opening the explorer and
print them as text, JSON, CSV, Markdown or an SVG image of the plot.

Examples:
  embedscope hotspots points.csv
  embedscope hotspots --x d3 --y d7 --threshold 30 points.csv
  embedscope hotspots -f svg -o plot.svg points.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHotspots,
	}

	hotspotsView = viewFlags{}
	hotspotsView.register(cmd)
	cmd.Flags().StringVarP(&hotspotsFormat, "format", "f", "", "output format (text, json, csv, markdown, svg; default: from config)")
	cmd.Flags().StringVarP(&hotspotsOutputFile, "output-file", "o", "", "save output to file instead of stdout")

	return cmd
}

func runHotspots(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	path, err := resolveDataPath(args, cfg)
	if err != nil {
		return err
	}

	data, err := dataset.LoadFile(path, loadOptions(cfg))
	if err != nil {
		return err
	}

	log := newLogger("session", cfg)
	s, err := session.New(data, nil, hotspotsView.sessionOptions(cfg), log)
	if err != nil {
		return fmt.Errorf("invalid session options: %w", err)
	}
	if err := hotspotsView.applyAxes(s); err != nil {
		return err
	}

	format := hotspotsFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	// files never get terminal colors
	f, err := formatter.New(format, hotspotsOutputFile == "" && useColor(cfg))
	if err != nil {
		return err
	}

	report := formatter.NewReport(s, path)
	report.PointSize = cfg.Plot.PointSize

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), output, hotspotsOutputFile)
}

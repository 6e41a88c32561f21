package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yildizm/EmbedScope/internal/config"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/logger"
	"github.com/yildizm/EmbedScope/internal/ui"
)

var (
	exploreWatch bool
	exploreTheme string
	exploreView  viewFlags
)

func newExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Open the interactive scatterplot",
		Long: `Open the terminal explorer: the scatterplot of two dimensions with its
hotspots on the left, the point grid on the right.

Move the mouse over the plot to hover points; the grid follows. Click a
hotspot to zoom into it and click outside the plot area to zoom out.

Keys:
  x / X    next / previous x dimension
  y / Y    next / previous y dimension
  + / -    grow / shrink the hotspot distance
  ↑ / ↓    move through the grid
  esc      zoom out
  q        quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExplore,
	}

	exploreView = viewFlags{}
	exploreView.register(cmd)
	cmd.Flags().BoolVarP(&exploreWatch, "watch", "w", false, "reload the data file when it changes (default: data.watch)")
	cmd.Flags().StringVar(&exploreTheme, "theme", "", "color theme (default, high-contrast, minimal)")

	return cmd
}

func runExplore(cmd *cobra.Command, args []string) error {
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

	theme := cfg.UI.Theme
	if exploreTheme != "" {
		theme = exploreTheme
	}
	if !ui.SetThemeByName(theme) {
		return fmt.Errorf("unknown theme %q (available: %v)", theme, ui.GetAvailableThemes())
	}

	log, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	model, err := ui.NewModel(data, exploreView.sessionOptions(cfg), ui.Options{
		Source:     filepath.Base(path),
		CellWidth:  cfg.UI.CellWidth,
		CellHeight: cfg.UI.CellHeight,
		TextLines:  cfg.UI.GridTextLines,
		Color:      !noColor && !ui.IsColorDisabled() && cfg.Output.ColorMode != "never",
	}, log)
	if err != nil {
		return fmt.Errorf("failed to start explorer: %w", err)
	}
	if err := exploreView.applyAxes(model.Session()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watch := exploreWatch || (!cmd.Flag("watch").Changed && cfg.Data.Watch)
	var setup func(p *tea.Program)
	if watch {
		watcher, err := dataset.NewWatcher(path, loadOptions(cfg), log.WithComponent("dataset"))
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()

		setup = func(p *tea.Program) {
			go func() {
				if err := watcher.Run(ctx, func(d *dataset.Dataset) {
					p.Send(ui.DataReloadedMsg{Data: d})
				}); err != nil {
					log.Error("watcher stopped: %v", err)
				}
			}()
		}
	}

	return ui.Run(model, setup)
}

// tuiLogger sends log lines to output.log_file so they never reach the
// screen the explorer draws on.
func tuiLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	if cfg.Output.LogFile == "" {
		return logger.Discard(), func() {}, nil
	}
	// #nosec G304 - log path comes from the user's own configuration
	f, err := os.OpenFile(filepath.Clean(cfg.Output.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger("ui", cfg).WithWriter(f), func() { _ = f.Close() }, nil
}

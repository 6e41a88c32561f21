package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/EmbedScope/internal/config"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/logger"
	"github.com/yildizm/EmbedScope/internal/session"
)

// viewFlags are the axis and clustering overrides shared by the commands
type viewFlags struct {
	x         string
	y         string
	threshold float64
	minSize   int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.x, "x", "", "x axis dimension (default: first dimension)")
	cmd.Flags().StringVar(&f.y, "y", "", "y axis dimension (default: second dimension)")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "hotspot distance in screen units (default: from config)")
	cmd.Flags().IntVar(&f.minSize, "min-size", 0, "smallest hotspot size (default: from config)")
}

// sessionOptions applies the clustering flags over the config
func (f *viewFlags) sessionOptions(cfg *config.Config) session.Options {
	opts := cfg.SessionOptions()
	if f.threshold != 0 {
		opts.Threshold = f.threshold
	}
	if f.minSize != 0 {
		opts.MinClusterSize = f.minSize
	}
	return opts
}

// applyAxes selects the flagged axes, keeping the default for unset ones
func (f *viewFlags) applyAxes(s *session.Session) error {
	if f.x == "" && f.y == "" {
		return nil
	}
	dims := s.Data().Dimensions
	x, y := s.Dimensions()
	xName, yName := dims[x], dims[y]
	if f.x != "" {
		xName = f.x
	}
	if f.y != "" {
		yName = f.y
	}
	return s.SetDimensionsByName(xName, yName)
}

// resolveDataPath picks the positional argument over data.path
func resolveDataPath(args []string, cfg *config.Config) (string, error) {
	path := cfg.Data.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return "", fmt.Errorf("no data file given (pass a path or set data.path)")
	}
	if err := validateFilePath(path); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

func loadOptions(cfg *config.Config) dataset.LoadOptions {
	return dataset.LoadOptions{DimensionPrefix: cfg.Data.DimensionPrefix}
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// newLogger creates a component logger writing to stderr
func newLogger(component string, cfg *config.Config) *logger.Logger {
	return logger.New(component, cfg)
}

// useColor resolves output.color_mode against --no-color and NO_COLOR
func useColor(cfg *config.Config) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch cfg.Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTerminal(os.Stdout)
	}
}

// isTerminal reports whether f is a character device
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// writeOutput writes output to path, or to w when path is empty
func writeOutput(w io.Writer, output []byte, path string) error {
	if path == "" {
		_, err := w.Write(output)
		return err
	}

	cleanPath := filepath.Clean(path)
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", cleanPath)
	}
	return nil
}

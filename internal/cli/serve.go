package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/emoji"
	"github.com/yildizm/EmbedScope/internal/server"
)

var (
	serveAddr  string
	serveWatch bool
	serveView  viewFlags
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the explorer session over HTTP",
		Long: `Serve one explorer session as a JSON API so a browser front end can drive
the plot: pick dimensions, change the hotspot distance, send pointer and
grid hover events and read back the view.

Endpoints:
  GET  /health
  GET  /api/v1/dimensions
  GET  /api/v1/hotspots?format=json|text|csv|markdown|svg
  GET  /api/v1/view
  PUT  /api/v1/view/dimensions   {"x": "d1", "y": "d2"}
  PUT  /api/v1/view/threshold    {"threshold": 40, "min_cluster_size": 10}
  POST /api/v1/view/pointer      {"x": 400, "y": 400, "action": "move|press|leave"}
  POST /api/v1/view/grid-hover   {"id": "42"}`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServe,
	}

	serveView = viewFlags{}
	serveView.register(cmd)
	cmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default: server.address)")
	cmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload the data file when it changes (default: data.watch)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
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

	if !isVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := newLogger("server", cfg)
	srv, err := server.New(data, serveView.sessionOptions(cfg), path, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if serveView.x != "" || serveView.y != "" {
		if err := srv.SetAxes(serveView.x, serveView.y); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watch := serveWatch || (!cmd.Flag("watch").Changed && cfg.Data.Watch)
	if watch {
		watcher, err := dataset.NewWatcher(path, loadOptions(cfg), log.WithComponent("dataset"))
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()

		go func() {
			if err := watcher.Run(ctx, func(d *dataset.Dataset) {
				if err := srv.SetData(d); err != nil {
					log.Error("reload rejected: %v", err)
				}
			}); err != nil {
				log.Error("watcher stopped: %v", err)
			}
		}()
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Address
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Serving %s (%d points) on %s\n", emoji.GetEmoji("server"), path, data.Len(), addr)

	return srv.ListenAndServe(ctx, addr)
}

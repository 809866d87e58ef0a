package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/nmcr/internal/catalog"
	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/logfields"
	"git.home.luguber.info/inful/nmcr/internal/metrics"
	"git.home.luguber.info/inful/nmcr/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	MetricsAddr string        `name:"metrics-addr" help:"Serve /status and /metrics on this address (e.g. :9464)"`
	Debounce    time.Duration `default:"300ms" help:"Quiet period before a rebuild"`
	SkipInvalid bool          `name:"skip-invalid" help:"Keep invalid documents out of the catalog instead of failing the reload"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	p, err := loadProject(root)
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	load := func(ctx context.Context) (*catalog.Catalog, error) {
		// Rediscover so new documents join the catalog.
		fresh, err := loadProject(root)
		if err != nil {
			return nil, err
		}
		return fresh.load(ctx, w.SkipInvalid, rec)
	}

	watcher := watch.New(p.cfg.Dir(), load, watch.Options{
		Debounce: w.Debounce,
		OnReload: func(cat *catalog.Catalog, err error) {
			if err != nil {
				_, _ = fmt.Fprintf(g.Out, "reload failed: %s\n", ferrors.NewCLIErrorAdapter(root.Verbose, nil).FormatError(err))
				return
			}
			_, _ = fmt.Fprintf(g.Out, "catalog ready: %d files, %d trees\n", len(cat.StandaloneFiles()), len(cat.TreeTemplates()))
		},
	})

	if w.MetricsAddr != "" {
		srv := &http.Server{Addr: w.MetricsAddr, Handler: watcher.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("Serving status and metrics", slog.String("addr", w.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Status server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	return watcher.Run(ctx)
}

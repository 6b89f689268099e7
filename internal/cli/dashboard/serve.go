package dashboard

import (
	"fmt"

	"github.com/danieljhkim/homelab/internal/config"
	dashboardpkg "github.com/danieljhkim/homelab/internal/dashboard"
	"github.com/danieljhkim/homelab/internal/oplog"
	"github.com/danieljhkim/homelab/internal/probe"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(pathsGetter PathsGetter) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := pathsGetter()
			settings, err := config.NewSettingsManager(paths).LoadOrDefault()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			cat, err := loadCatalog(paths.CatalogFile())
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			logger := oplog.Console(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()

			timeout := settings.Timeout()
			if t, _ := cmd.Flags().GetDuration("timeout"); t > 0 {
				timeout = t
			}

			h := &dashboardpkg.Handler{
				Catalog: cat,
				Prober:  probe.New(settings.Host, timeout),
			}
			if lister, err := newContainerLister(); err != nil {
				logger.Warn("docker engine unavailable, /api/containers disabled", zap.Error(err))
			} else {
				h.Containers = lister
			}

			logger.Info("starting dashboard",
				zap.String("addr", addr),
				zap.String("host", settings.Host),
				zap.Duration("probe_timeout", timeout),
				zap.Int("services", len(cat.Services)),
			)
			return dashboardpkg.Serve(cmd.Context(), addr, dashboardpkg.NewRouter(h, logger), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", dashboardpkg.DefaultAddr, "Listen address")
	return cmd
}

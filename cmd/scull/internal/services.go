package common

import (
	"time"

	"github.com/nspcc-dev/scull/cmd/scull/config"
	metricsconfig "github.com/nspcc-dev/scull/cmd/scull/config/metrics"
	pprofconfig "github.com/nspcc-dev/scull/cmd/scull/config/pprof"
	httputil "github.com/nspcc-dev/scull/pkg/util/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services is a set of optional HTTP services running alongside a command.
type Services struct {
	log     *zap.Logger
	servers map[string]*httputil.Server
}

// StartServices starts metrics and profiler services enabled in c. Metrics
// are served from g.
func StartServices(c *config.Config, log *zap.Logger, g prometheus.Gatherer) *Services {
	s := &Services{
		log:     log,
		servers: make(map[string]*httputil.Server),
	}

	if metricsconfig.Enabled(c) {
		s.start("metrics", httputil.Prm{
			Address: metricsconfig.Address(c),
			Handler: promhttp.HandlerFor(g, promhttp.HandlerOpts{}),
		}, metricsconfig.ShutdownTimeout(c))
	}

	if pprofconfig.Enabled(c) {
		s.start("pprof", httputil.Prm{
			Address: pprofconfig.Address(c),
			Handler: httputil.Handler(),
		}, pprofconfig.ShutdownTimeout(c))
	}

	return s
}

func (s *Services) start(name string, prm httputil.Prm, timeout time.Duration) {
	srv := httputil.New(prm, httputil.WithShutdownTimeout(timeout))
	s.servers[name] = srv

	go func() {
		s.log.Info("service is running", zap.String("service", name), zap.String("endpoint", prm.Address))

		if err := srv.Serve(); err != nil {
			s.log.Error("service failed", zap.String("service", name), zap.Error(err))
		}
	}()
}

// Stop gracefully shuts every started service down.
func (s *Services) Stop() {
	for name, srv := range s.servers {
		s.log.Debug("shutting down service", zap.String("service", name))

		if err := srv.Shutdown(); err != nil {
			s.log.Debug("could not shutdown service",
				zap.String("service", name),
				zap.Error(err),
			)
		}
	}
}

package coremain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pmkol/linkx/mlog"
	"github.com/pmkol/linkx/pkg/script"
	"github.com/pmkol/linkx/pkg/store"
	"github.com/pmkol/linkx/pkg/store/mem_store"
	"github.com/pmkol/linkx/pkg/store/redis_store"
)

const defaultStoreSize = 64

type Linkx struct {
	logger   *zap.Logger
	closeLog func()

	store   store.Backend
	metrics *script.Metrics

	httpAPIMux *http.ServeMux
	metricsReg *prometheus.Registry
}

// NewLinkx builds the logger, metrics and snapshot store described by cfg.
// They are kept across re-runs of a watched script.
func NewLinkx(cfg *Config) (*Linkx, error) {
	lg, closeLog, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	mlog.SetLevel(lg.Level())

	m := &Linkx{
		logger:     lg,
		closeLog:   closeLog,
		httpAPIMux: http.NewServeMux(),
		metricsReg: newMetricsReg(),
	}

	m.httpAPIMux.Handle("/metrics", promhttp.HandlerFor(m.metricsReg, promhttp.HandlerOpts{}))
	m.httpAPIMux.HandleFunc("/debug/pprof/", pprof.Index)
	m.httpAPIMux.HandleFunc("/debug/pprof/profile", pprof.Profile)

	m.metrics, err = script.NewMetrics(m.GetMetricsReg())
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	m.store, err = newStore(&cfg.Store, lg)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to init store: %w", err)
	}
	return m, nil
}

func newStore(sc *StoreConfig, lg *zap.Logger) (store.Backend, error) {
	if len(sc.Redis) > 0 {
		lg.Info("using redis snapshot store")
		return redis_store.NewRedisStoreFromURL(sc.Redis, sc.Timeout, lg.Named("redis"))
	}
	size := sc.Size
	if size <= 0 {
		size = defaultStoreSize
	}
	return mem_store.NewMemStore(size), nil
}

// RunScript defines the lists of cfg on a fresh runner and executes its ops.
func (m *Linkx) RunScript(ctx context.Context, cfg *Config, out io.Writer) error {
	r := script.NewRunner(script.RunnerOpts{
		Out:     out,
		Store:   m.store,
		Metrics: m.metrics,
		Logger:  m.logger.Named("script"),
	})
	r.DefineAll(cfg.Lists)

	m.logger.Info("running script", zap.Int("lists", len(cfg.Lists)), zap.Int("ops", len(cfg.Ops)))
	if err := r.Run(ctx, cfg.Ops); err != nil {
		return fmt.Errorf("script failed, %w", err)
	}
	return nil
}

// Watch runs the script and re-runs it whenever file changes, until ctx
// is done. The api http server, if configured, runs alongside.
func (m *Linkx) Watch(ctx context.Context, file string, cfg *Config, out io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)

	if httpAddr := cfg.API.HTTP; len(httpAddr) > 0 {
		httpServer := &http.Server{
			Addr:    httpAddr,
			Handler: m.httpAPIMux,
		}
		g.Go(func() error {
			errChan := make(chan error, 1)
			go func() {
				m.logger.Info("starting api http server", zap.String("addr", httpAddr))
				errChan <- httpServer.ListenAndServe()
			}()
			select {
			case err := <-errChan:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				return httpServer.Close()
			}
		})
	}

	g.Go(func() error {
		run := func(cfg *Config) {
			if err := m.RunScript(ctx, cfg, out); err != nil {
				m.logger.Error("script failed", zap.Error(err))
			}
		}
		run(cfg)
		return watchFile(ctx, m.logger, file, reloadDelay, func() {
			cfg, _, err := loadFullConfig(file)
			if err != nil {
				m.logger.Error("failed to reload script", zap.String("file", file), zap.Error(err))
				return
			}
			run(cfg)
		})
	})
	return g.Wait()
}

func (m *Linkx) GetMetricsReg() prometheus.Registerer {
	return prometheus.WrapRegistererWithPrefix("linkx_", m.metricsReg)
}

// Close closes the snapshot store and the log file.
func (m *Linkx) Close() error {
	err := m.store.Close()
	m.closeLog()
	return err
}

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

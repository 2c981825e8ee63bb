package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"talent-desk/internal/api"
	"talent-desk/internal/filter"
	"talent-desk/internal/intake"
	"talent-desk/internal/model"
	"talent-desk/internal/notifier"
	"talent-desk/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// appDeps 汇总运行期依赖。
type appDeps struct {
	store   *storage.Store
	handler http.Handler
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	deps, cleanup, err := buildApp(cfg, logger)
	if err != nil {
		logger.Error("init app failed", zap.Error(err))
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.addr(), Handler: deps.handler, ReadHeaderTimeout: 10 * time.Second}
	logger.Info("listening", zap.String("addr", cfg.addr()))
	if err := runServer(ctx, srv, cfg.shutdownTimeout()); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// runServer 启动服务并在 ctx 取消后优雅关闭。
func runServer(ctx context.Context, srv httpServer, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func buildApp(cfg AppConfig, logger *zap.Logger) (appDeps, func(), error) {
	store, err := storage.NewStore(cfg.dbPath())
	if err != nil {
		return appDeps{}, func() {}, fmt.Errorf("init store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}

	filters := filter.NewStore(cfg.Filters.ResolvedDomains())
	clients := intake.NewService(store, buildNotifier(cfg.Email, logger), logger.Named("intake"), cfg.Intake)

	handler := api.NewHandler(api.Deps{
		Candidates: storeAdapter{store},
		Clients:    clients,
		Filters:    filters,
		Catalog:    cfg.Filters.Catalog.WithDefaults(),
		OnApply:    logApplied(logger.Named("filters"), filters),
		Logger:     logger.Named("http"),
	})

	return appDeps{store: store, handler: handler}, cleanup, nil
}

func buildNotifier(cfg notifier.EmailConfig, logger *zap.Logger) intake.Notifier {
	logNotifier := notifier.NewLogNotifier(logger)
	if !cfg.Enabled() {
		logger.Info("email notifier disabled: missing host/port/from/to")
		return logNotifier
	}
	return notifier.Fanout{logNotifier, notifier.NewEmailNotifier(cfg, nil)}
}

// logApplied 记录提交的筛选条件，真正的列表过滤由前端完成。
func logApplied(logger *zap.Logger, filters *filter.Store) api.ApplyHook {
	return func(_ context.Context, st filter.State, resultCount int) {
		logger.Debug("filter state committed",
			zap.String("search", st.Search),
			zap.Strings("skills", st.Skills),
			zap.Strings("location", st.Location),
			zap.String("verification_status", st.VerificationStatus),
			zap.String("last_activity", st.LastActivity),
			zap.Int("active_count", filters.ActiveFacetCount(st)),
			zap.Int("result_count", resultCount))
	}
}

// 适配 API 所需接口。
type storeAdapter struct {
	store *storage.Store
}

func (s storeAdapter) ListCandidates(ctx context.Context, limit, offset int) ([]model.Candidate, error) {
	return s.store.ListCandidates(ctx, storage.CandidateQuery{Limit: limit, Offset: offset})
}

func (s storeAdapter) CountCandidates(ctx context.Context) (int64, error) {
	return s.store.CountCandidates(ctx)
}

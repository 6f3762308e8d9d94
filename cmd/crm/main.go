package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"log/slog"

	"printer-crm/internal/config"
	"printer-crm/internal/service/company"
	"printer-crm/internal/service/report"
	"printer-crm/internal/storage"
	"printer-crm/internal/storage/csvfile"
	"printer-crm/internal/storage/excel"
	"printer-crm/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	store, err := newTableStore(cfg)
	if err != nil {
		log.Error("failed to open table store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := storage.NewOrderRepository(store, cfg.Store.Table, cfg.Store.CacheTTL)

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := repo.Initialize(initCtx); err != nil {
		// The repository stays usable with the counter at 1.
		log.Warn("store initialization incomplete", slog.String("error", err.Error()))
	}
	cancel()

	companyService := company.New(company.Profile{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		CUI:     cfg.Company.CUI,
		RegCom:  cfg.Company.RegCom,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
	})
	reportService := report.New(repo)

	log.Info("server started",
		slog.String("address", cfg.Address),
		slog.String("store", cfg.Store.Backend))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, repo, reportService, companyService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped")
}

func newTableStore(cfg *config.Config) (storage.TableStore, error) {
	switch cfg.Store.Backend {
	case "excel":
		return excel.New(cfg.Store.WorkbookPath), nil
	case "csv":
		return csvfile.New(cfg.Store.CSVDir), nil
	case "mysql":
		return mysql.New(cfg.Store.DSN)
	default:
		return nil, errors.New("unknown store backend: " + cfg.Store.Backend)
	}
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// Errors additionally go to the file.
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		cloned := r.Clone()
		_ = h.errorHandler.Handle(ctx, cloned)
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}

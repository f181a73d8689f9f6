package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dgarciab/retention-portal/internal/config"
	"github.com/dgarciab/retention-portal/internal/repository/postgres"
	"github.com/dgarciab/retention-portal/internal/service"
	myhttp "github.com/dgarciab/retention-portal/internal/transport/http"

	"github.com/dgarciab/retention-portal/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting retention-portal", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		err = db.DB().Close()
		if err != nil {
			errChan <- fmt.Errorf("db close failed: %v", err)
		}
	}()

	catalogRepo := postgres.NewCatalogRepository(db.DB(), log)
	clientRepo := postgres.NewClientRepository(db.DB(), log)
	staffRepo := postgres.NewStaffRepository(db.DB(), log)
	requestRepo := postgres.NewRequestRepository(db.DB(), log)
	reportRepo := postgres.NewReportRepository(db.DB(), log)

	allocator := service.NewAllocatorService(log, staffRepo)
	requestService := service.NewRequestService(
		db.DB(), log, allocator, catalogRepo, clientRepo, staffRepo, requestRepo, requestRepo,
	)
	staffService := service.NewStaffService(db.DB(), log, staffRepo)
	dashboardService := service.NewDashboardService(db.DB(), log, reportRepo)
	clientService := service.NewClientService(db.DB(), log, clientRepo)

	srv := myhttp.NewServer(log, requestService, staffService, dashboardService, clientService)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shuting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}

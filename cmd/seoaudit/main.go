// Package main wires together the SEO audit service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/api"
	"github.com/auditkit/seo-audit/internal/audit"
	"github.com/auditkit/seo-audit/internal/collector"
	"github.com/auditkit/seo-audit/internal/collector/headless"
	"github.com/auditkit/seo-audit/internal/config"
	collyfetcher "github.com/auditkit/seo-audit/internal/fetcher/colly"
	"github.com/auditkit/seo-audit/internal/inspect"
	"github.com/auditkit/seo-audit/internal/logging"
	"github.com/auditkit/seo-audit/internal/metrics"
	"github.com/auditkit/seo-audit/internal/suggest"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})
	inspector := inspect.New(nil, logger.Named("inspect"))
	rank := collector.NewRankClient(cfg.Rank.BaseURL, cfg.Rank.APIKey, logger.Named("rank"))
	serp := collector.NewSERPClient(cfg.SERP.BaseURL, cfg.SERP.APIKey, logger.Named("serp"))
	robots := collector.NewRobotsProber(nil, logger.Named("robots"))
	sitemap := collector.NewSitemapProber(nil, logger.Named("sitemap"))
	links := collector.NewLinkChecker(nil, logger.Named("links"))
	suggester := suggest.New(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, logger.Named("suggest"))

	var perf audit.PerfAuditor = headless.NewNoop()
	if cfg.Headless.Enabled {
		prober, err := headless.New(headless.Config{
			MaxParallel:       cfg.Headless.MaxParallel,
			UserAgent:         cfg.Fetch.UserAgent,
			NavigationTimeout: cfg.NavTimeout(),
		}, logger.Named("headless"))
		if err != nil {
			logger.Warn("headless prober init failed, performance audit disabled", zap.Error(err))
		} else {
			defer prober.Close()
			perf = prober
		}
	}

	auditor := audit.New(
		fetcher,
		inspector,
		rank,
		perf,
		serp,
		robots,
		sitemap,
		links,
		suggester,
		metrics.Observer{},
		logger.Named("audit"),
		audit.Config{FetchTimeout: cfg.FetchTimeout()},
	)

	apiServer := api.NewServer(auditor, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
}

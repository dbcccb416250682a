package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tinytelemetry/logsheet/internal/httpserver"
	"github.com/tinytelemetry/logsheet/internal/lifecycle"
	"github.com/tinytelemetry/logsheet/internal/logging"
	"github.com/tinytelemetry/logsheet/internal/logsource"
	"github.com/tinytelemetry/logsheet/internal/relocate"
	"github.com/tinytelemetry/logsheet/internal/report"
	"github.com/tinytelemetry/logsheet/internal/sampler"
	"golang.org/x/sync/errgroup"
)

// run loads the corpus and drives the report loop until interrupted.
func run(cfg appConfig) error {
	logger, cleanupLogger, err := logging.Setup(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer cleanupLogger()

	records, err := logsource.LoadFile(cfg.InputPath, logsource.FileConfig{MaxLineSize: cfg.MaxLineSize})
	if err != nil {
		return fmt.Errorf("failed to load log records: %w", err)
	}

	smp, err := sampler.New(records, cfg.Keywords, sampler.Options{
		Seed:           cfg.Seed,
		RetainPerLevel: cfg.RetainPerLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sampler: %w", err)
	}

	writer, err := report.NewWriter(report.WriterConfig{
		Path:    cfg.ReportPath,
		Retries: retriesOrDisabled(cfg.WriteRetries),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize report writer: %w", err)
	}

	mover, err := relocate.New(relocate.Config{
		Destination:    cfg.Destination,
		S3Endpoint:     cfg.S3Endpoint,
		S3Region:       cfg.S3Region,
		S3AccessKey:    cfg.S3AccessKey,
		S3SecretKey:    cfg.S3SecretKey,
		S3SessionToken: cfg.S3SessionToken,
		S3UseSSL:       cfg.S3UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize destination: %w", err)
	}

	controller, err := lifecycle.New(smp, writer, mover, lifecycle.Config{
		Interval: cfg.Interval,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	var apiServer *httpserver.Server
	if cfg.APIEnabled {
		apiServer = httpserver.NewServer(cfg.APIAddr, controller)
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-sigCh:
		case <-done:
			return
		}
		cancel()

		// A second signal while the report is being moved aborts immediately.
		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
			os.Exit(1)
		case <-done:
		}
	}()

	printStartupBanner(cfg, len(records), mover.Destination())
	log.Printf("logsheet: loaded %d records from %s", len(records), cfg.InputPath)

	// The controller ends the run: on cancellation after moving the report,
	// or on the first failed cycle. Either way the API goes down with it.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return controller.Run(gctx)
	})
	if apiServer != nil {
		g.Go(func() error {
			<-ctx.Done()
			return apiServer.Stop()
		})
	}
	return g.Wait()
}

// retriesOrDisabled maps the config's "0 = no retries" onto the writer's negative sentinel.
func retriesOrDisabled(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

// Command library is the interactive Smart Library catalog.
//
// It loads books and users from the configured storage at start, runs the menu on stdin/stdout,
// and saves everything again on exit or on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/library/circulation"
	"github.com/AntonStoeckl/smart-library-go/library/reports"
	"github.com/AntonStoeckl/smart-library-go/library/shell/config"
)

const saveTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("library stopped with an error", "error", err)
		stop()
		os.Exit(1)
	}
}

// run wires everything from cfg and serves the menu until the user exits, the input ends or ctx is canceled.
func run(ctx context.Context, cfg config.FileConfig, logger *slog.Logger, in io.Reader, out io.Writer) error {
	persister, closePersister, err := buildPersister(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("set up storage: %w", err)
	}
	defer closePersister()

	j, closeJournal, err := buildJournal(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("set up journal: %w", err)
	}
	defer closeJournal()

	snapshot, err := persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	store := catalog.NewStore(catalog.WithLogger(logger))
	store.Restore(snapshot)

	serviceOptions := []circulation.Option{circulation.WithLogger(logger)}
	reportOptions := make([]reports.Option, 0, 1)

	if j != nil {
		serviceOptions = append(serviceOptions, circulation.WithJournal(j))
		reportOptions = append(reportOptions, reports.WithJournal(j))
	}

	service, err := circulation.NewService(store, serviceOptions...)
	if err != nil {
		return err
	}

	engine, err := reports.NewEngine(store, reportOptions...)
	if err != nil {
		return err
	}

	logger.Info("library started",
		"books", store.BookCount(),
		"users", store.UserCount(),
		"storage", cfg.Storage.Backend,
		"journal", cfg.Journal.Backend,
	)

	m := newMenu(in, out, store, service, engine)

	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	var menuErr error
	select {
	case menuErr = <-done:
	case <-ctx.Done():
		fmt.Fprintln(out, "\nInterrupted. Saving data...")
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := persister.Save(saveCtx, store.Snapshot()); err != nil {
		return errors.Join(menuErr, fmt.Errorf("save catalog: %w", err))
	}

	fmt.Fprintln(out, "Data saved. Thank you!")

	return menuErr
}

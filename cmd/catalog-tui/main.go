package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/app"
	"github.com/xenking/product-drawer/internal/catalog"
	"github.com/xenking/product-drawer/internal/screen"
	"github.com/xenking/product-drawer/internal/tui"
)

func main() {
	var logFile string
	flag.StringVar(&logFile, "log-file", "catalog-tui.log", "file the log is written to")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, logFile); err != nil {
		fmt.Fprintln(os.Stderr, "catalog-tui:", err)
		os.Exit(1)
	}
}

// newFileLogger keeps log output off the terminal the program draws on.
func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func run(ctx context.Context, logFile string) error {
	lg, err := newFileLogger(logFile)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer func() { _ = lg.Sync() }()

	cfg, err := app.LoadEnvConfig()
	if err != nil {
		return err
	}

	records, err := app.OpenRecordStore(ctx, lg, cfg.Store)
	if err != nil {
		return errors.Wrap(err, "open record store")
	}
	defer records.Close()

	blobs, err := app.OpenBlobStore(ctx, lg, cfg.Blob)
	if err != nil {
		return errors.Wrap(err, "open object store")
	}
	defer blobs.Close()

	store, err := catalog.NewStore(records.Store, catalog.WithLogger(lg.Named("catalog")))
	if err != nil {
		return errors.Wrap(err, "create catalog store")
	}

	m := tui.New(ctx, store, screen.NewUploader(blobs.Store), lg)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "run program")
	}
	return nil
}

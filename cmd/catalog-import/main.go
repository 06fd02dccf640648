package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/app"
	"github.com/xenking/product-drawer/internal/catalog"
	"github.com/xenking/product-drawer/internal/importer"
	"github.com/xenking/product-drawer/internal/screen"
)

func main() {
	var (
		rowsFile    string
		concurrency int
	)
	flag.StringVar(&rowsFile, "rows", "products.ndjson.gz", "NDJSON file of {name, price, offeredPrice, image} rows, optionally gzipped")
	flag.IntVar(&concurrency, "concurrency", runtime.GOMAXPROCS(0), "rows imported in parallel")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, rowsFile, concurrency); err != nil {
		lg.Error("Import failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, lg *zap.Logger, rowsFile string, concurrency int) error {
	cfg, err := app.LoadEnvConfig()
	if err != nil {
		return err
	}

	rows, err := importer.OpenRows(rowsFile)
	if err != nil {
		return err
	}
	lg.Info("Rows loaded", zap.String("path", rowsFile), zap.Int("count", len(rows)))

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

	im := importer.New(screen.NewUploader(blobs.Store), store, lg, concurrency)
	res, err := im.Import(ctx, rows)
	lg.Info("Import finished",
		zap.Int("imported", res.Imported),
		zap.Int("failed", res.Failed),
		zap.Strings("collisions", res.Collisions),
		zap.Int("products", len(store.Products())),
	)
	return err
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/app"
	"github.com/xenking/product-drawer/internal/importer"
)

func main() {
	var productsFile string
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.Parse()

	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, productsFile); err != nil {
		lg.Error("Seed failed", zap.Error(err))
		os.Exit(1)
	}

	lg.Info("Seed completed successfully")
}

func run(ctx context.Context, lg *zap.Logger, productsFile string) error {
	cfg, err := app.LoadEnvConfig()
	if err != nil {
		return err
	}

	records, err := app.OpenRecordStore(ctx, lg, cfg.Store)
	if err != nil {
		return errors.Wrap(err, "open record store")
	}
	defer records.Close()

	lg.Info("Reading products file", zap.String("path", productsFile))
	f, err := os.Open(productsFile)
	if err != nil {
		return errors.Wrap(err, "open products file")
	}
	defer func() { _ = f.Close() }()

	rows, err := importer.ReadSeed(f)
	if err != nil {
		return err
	}

	res, err := importer.Seed(ctx, records.Store, rows)
	if err != nil {
		return errors.Wrapf(err, "seeded %d of %d", res.Created, len(rows))
	}
	lg.Info("Products seeded",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
	)
	return nil
}

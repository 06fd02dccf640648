package importer

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/product-drawer/internal/catalog"
	"github.com/xenking/product-drawer/internal/domain/product"
	"github.com/xenking/product-drawer/internal/screen"
)

const (
	bloomFPR         = 0.001
	minBloomCapacity = 1024
)

// Result summarises an import.
type Result struct {
	Imported int
	Failed   int
	// Collisions lists object names shared by more than one row. Those rows
	// end up pointing at whichever upload finished last.
	Collisions []string
}

// Importer uploads row images and creates products through the catalog
// store, the same way the screen's add flow does.
type Importer struct {
	uploader    *screen.Uploader
	dispatch    screen.Dispatcher
	lg          *zap.Logger
	concurrency int
}

// New returns an Importer running at most concurrency rows at once.
func New(u *screen.Uploader, d screen.Dispatcher, lg *zap.Logger, concurrency int) *Importer {
	if concurrency < 1 {
		concurrency = 1
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Importer{
		uploader:    u,
		dispatch:    d,
		lg:          lg,
		concurrency: concurrency,
	}
}

// Import uploads and creates every row, then reloads the product list.
// Failed rows are logged and counted; only cancellation aborts the run.
func (im *Importer) Import(ctx context.Context, rows []Row) (Result, error) {
	res := Result{Collisions: Collisions(rows)}
	for _, name := range res.Collisions {
		im.lg.Warn("Image name shared by several rows", zap.String("object", name))
	}

	var imported, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)
	for i, row := range rows {
		g.Go(func() error {
			if err := im.importRow(gctx, row); err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				im.lg.Error("Row failed", zap.Int("row", i), zap.String("name", row.Name), zap.Error(err))
				return nil
			}
			imported.Add(1)
			return nil
		})
	}
	err := g.Wait()

	res.Imported = int(imported.Load())
	res.Failed = int(failed.Load())
	if err != nil {
		return res, errors.Wrap(err, "import")
	}

	if err := im.dispatch.Dispatch(ctx, catalog.FetchProducts{}); err != nil {
		return res, errors.Wrap(err, "refresh")
	}
	return res, nil
}

func (im *Importer) importRow(ctx context.Context, row Row) error {
	if row.Image == "" {
		return screen.ErrImageRequired
	}
	p := row.Product()
	url, err := im.uploader.Upload(ctx, screen.LocalImage(row.Image))
	if err != nil {
		return errors.Wrap(err, "upload image")
	}
	p.ImageURL = url
	return im.dispatch.Dispatch(ctx, catalog.AddProduct{Product: p})
}

// Collisions returns the sorted object names used by more than one row. A
// bloom filter narrows the candidates before they are counted exactly.
func Collisions(rows []Row) []string {
	capacity := max(uint(len(rows)), minBloomCapacity)
	filter := bloom.NewWithEstimates(capacity, bloomFPR)

	candidates := make(map[string]int)
	for _, row := range rows {
		if row.Image == "" {
			continue
		}
		if name := screen.ObjectName(row.Image); filter.TestAndAddString(name) {
			candidates[name] = 0
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	for _, row := range rows {
		name := screen.ObjectName(row.Image)
		if _, ok := candidates[name]; ok {
			candidates[name]++
		}
	}

	var out []string
	for name, n := range candidates {
		if n > 1 {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// SeedResult summarises a seed run.
type SeedResult struct {
	Created int
	// Skipped counts rows whose name is already in the catalog.
	Skipped int
}

// Seed creates one product per row with Image used as the download URL.
// Rows whose name already exists are skipped, so seeding again adds nothing.
func Seed(ctx context.Context, repo product.Repository, rows []Row) (SeedResult, error) {
	var res SeedResult

	existing, err := repo.List(ctx)
	if err != nil {
		return res, errors.Wrap(err, "list products")
	}
	names := make(map[string]struct{}, len(existing)+len(rows))
	for _, p := range existing {
		names[p.Name] = struct{}{}
	}

	for _, row := range rows {
		if _, ok := names[row.Name]; ok {
			res.Skipped++
			continue
		}
		p := row.Product()
		p.ImageURL = row.Image
		if err := repo.Create(ctx, &p); err != nil {
			return res, errors.Wrapf(err, "create %q", row.Name)
		}
		names[row.Name] = struct{}{}
		res.Created++
	}
	return res, nil
}

package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/domain/blob"
	"github.com/xenking/product-drawer/internal/domain/product"
	"github.com/xenking/product-drawer/internal/storage/localfs"
	"github.com/xenking/product-drawer/internal/storage/memory"
	"github.com/xenking/product-drawer/internal/storage/postgres"
	"github.com/xenking/product-drawer/internal/storage/redis"
	"github.com/xenking/product-drawer/internal/storage/s3"
	"github.com/xenking/product-drawer/pkg/health"
)

// Backend is an opened store together with its readiness check and cleanup.
type Backend[T any] struct {
	Store T
	// Check is nil for backends without a remote dependency.
	Check health.CheckFunc
	// MediaDir is set when objects are files the server has to serve.
	MediaDir string
	Close    func()
}

func nop() {}

// OpenRecordStore connects the product record store selected by cfg.
func OpenRecordStore(ctx context.Context, lg *zap.Logger, cfg StoreConfig) (*Backend[product.Repository], error) {
	switch cfg.Driver {
	case StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "run migrations")
		}
		lg.Info("Record store ready", zap.String("driver", cfg.Driver))
		return &Backend[product.Repository]{
			Store: postgres.NewProductRepository(pool),
			Check: health.PingCheck(pool),
			Close: pool.Close,
		}, nil
	case StoreRedis:
		rdb, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		lg.Info("Record store ready", zap.String("driver", cfg.Driver), zap.String("prefix", cfg.RedisPrefix))
		return &Backend[product.Repository]{
			Store: redis.NewProductRepository(rdb, redis.WithPrefix(cfg.RedisPrefix)),
			Check: redisCheck(rdb),
			Close: closer(lg, "redis", rdb),
		}, nil
	case StoreMemory:
		lg.Warn("Using in-memory record store, data is lost on restart")
		return &Backend[product.Repository]{
			Store: memory.NewProductRepository(),
			Close: nop,
		}, nil
	default:
		return nil, errors.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// OpenBlobStore opens the image object store selected by cfg.
func OpenBlobStore(ctx context.Context, lg *zap.Logger, cfg BlobConfig) (*Backend[blob.Store], error) {
	switch cfg.Driver {
	case BlobLocal:
		fs, err := localfs.New(cfg.Dir, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		lg.Info("Object store ready", zap.String("driver", cfg.Driver), zap.String("dir", fs.Dir()))
		return &Backend[blob.Store]{
			Store:    fs,
			Check:    health.PingCheck(fs),
			MediaDir: fs.Dir(),
			Close:    nop,
		}, nil
	case BlobS3:
		st, err := s3.New(ctx, s3.Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			PublicBaseURL:   s3BaseURL(cfg),
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, errors.Wrap(err, "create s3 store")
		}
		lg.Info("Object store ready", zap.String("driver", cfg.Driver), zap.String("bucket", cfg.S3.Bucket))
		return &Backend[blob.Store]{
			Store: st,
			Check: health.PingCheck(st),
			Close: nop,
		}, nil
	case BlobMemory:
		lg.Warn("Using in-memory object store, images are lost on restart")
		return &Backend[blob.Store]{
			Store: memory.NewBlobStore(cfg.PublicBaseURL),
			Close: nop,
		}, nil
	default:
		return nil, errors.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

// s3BaseURL ignores the local driver's default "/media" base.
func s3BaseURL(cfg BlobConfig) string {
	if cfg.PublicBaseURL == "/media" {
		return ""
	}
	return cfg.PublicBaseURL
}

func redisCheck(rdb goredis.UniversalClient) health.CheckFunc {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

func closer(lg *zap.Logger, name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			lg.Warn("Close failed", zap.String("backend", name), zap.Error(err))
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/api"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/config"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed/cache"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed/store"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/pagecache"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/upload"
	http "github.com/brian-wastle/PWA-Microblog-Back-End/internal/server"
)

func main() {
	cfg := config.FromEnv()
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// durable store
	pg, err := store.New(ctx, cfg.BuildDSN())
	if err != nil {
		logger.Error("postgres init", "error", err)
		os.Exit(1)
	}
	defer pg.Close()

	// aws-backed adapters only when configured, so local runs need no cloud
	var recents feed.CachePort
	var uploads *upload.Service
	if cfg.CacheTable != "" || cfg.UploadBucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("aws config", "error", err)
			os.Exit(1)
		}
		if cfg.CacheTable != "" {
			recents = cache.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg.CacheTable)
			logger.Info("recency cache: dynamodb", "table", cfg.CacheTable)
		}
		if cfg.UploadBucket != "" {
			uploads = upload.New(upload.NewS3Presigner(s3.NewFromConfig(awsCfg), cfg.UploadBucket), nil, logger)
			logger.Info("uploads: s3 presign", "bucket", cfg.UploadBucket)
		}
	}
	if recents == nil {
		recents = cache.NewMemory()
		logger.Info("recency cache: in-memory")
	}

	// services
	sync := feed.NewSynchronizer(recents, cfg.CacheCapacity, logger)
	posts := feed.New(pg, sync, logger)
	reader := feed.NewReader(pg, recents, logger)

	// optional first-page response cache
	var pages pagecache.PageCache
	if cfg.PageCacheTTL > 0 {
		if cfg.RedisAddr != "" {
			pages = pagecache.NewRedis(cfg.RedisAddr, cfg.PageCacheTTL, logger)
			logger.Info("page cache: redis", "addr", cfg.RedisAddr, "ttl", cfg.PageCacheTTL)
		} else {
			pages = pagecache.NewMemory(cfg.PageCacheTTL)
			logger.Info("page cache: in-process", "ttl", cfg.PageCacheTTL)
		}
	}

	// api facade and http server
	app := api.New(posts, reader, uploads)
	s := http.New(app, cfg.AllowedOrigin, pages, cfg.RequestTimeout)

	logger.Info("listening", "addr", cfg.ListenAddr)
	if err := s.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Intex catalog server.
//
// Usage:
//
//	intex [serve]                start the API server (default)
//	intex migrate                apply database migrations and exit
//	intex seed                   migrate, insert the demo catalog if empty and exit
//	intex upload <prefix> <file> upload a file to object storage and print its URL
//	intex remove <url>           delete an uploaded object by its public URL or key
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"intex/internal/cache"
	"intex/internal/catalog"
	"intex/internal/config"
	"intex/internal/database"
	"intex/internal/events"
	"intex/internal/gateway"
	"intex/internal/handlers"
	"intex/internal/middleware"
	"intex/internal/router"
	"intex/internal/sitecache"
	"intex/internal/storage"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		err = serve(cfg)
	case "migrate":
		err = migrate(cfg, false)
	case "seed":
		err = migrate(cfg, true)
	case "upload":
		if len(os.Args) != 4 {
			err = errors.New("usage: intex upload <prefix> <file>")
			break
		}
		err = upload(cfg, os.Args[2], os.Args[3])
	case "remove":
		if len(os.Args) != 3 {
			err = errors.New("usage: intex remove <url>")
			break
		}
		err = remove(cfg, os.Args[2])
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		slog.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

// newLogger outputs text in development and JSON elsewhere.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func openDatabase(cfg *config.Config, seed bool) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	if seed {
		if err := database.Seed(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

func migrate(cfg *config.Config, seed bool) error {
	db, err := openDatabase(cfg, seed)
	if err != nil {
		return err
	}
	return db.Close()
}

// newGateway selects the data backend. The caller closes the returned
// closer on shutdown.
func newGateway(cfg *config.Config) (gateway.Gateway, func() error, error) {
	if cfg.Backend == config.BackendMemory {
		slog.Info("using in-memory demo catalog")
		return gateway.NewDemoMemory(time.Now().In(cfg.TimeZone)), func() error { return nil }, nil
	}

	db, err := openDatabase(cfg, cfg.SeedDemo)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("postgres connected", "host", cfg.DBHost, "db", cfg.DBName)
	return gateway.NewPostgres(db, cfg.GatewayTimeout), db.Close, nil
}

func newStorage(cfg *config.Config) (*storage.Client, error) {
	client, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	if client == nil {
		slog.Warn("s3 storage not configured, image references are served as stored")
		return nil, nil
	}
	slog.Info("s3 storage configured", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	return client, nil
}

func serve(cfg *config.Config) error {
	gw, closeGateway, err := newGateway(cfg)
	if err != nil {
		return err
	}
	defer closeGateway()

	notices := sitecache.NewNotices(sitecache.DefaultNoticeCapacity)
	opts := []catalog.Option{
		catalog.WithLocation(cfg.TimeZone),
		catalog.WithNotifier(notices),
	}

	store, err := newStorage(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		opts = append(opts, catalog.WithImageResolver(store))
	}

	if cfg.NATSURL != "" {
		pub, err := events.NewNatsPublisher(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts = append(opts, catalog.WithPublisher(pub))
		slog.Info("nats connected", "url", cfg.NATSURL)
	}

	siteOpts := []sitecache.Option{sitecache.WithNotices(notices)}

	// The view cache is optional; the API works without Valkey.
	var valkey *redis.Client
	if cfg.ViewCacheTTL > 0 {
		valkey, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, detail views are not cached", "error", err)
		} else {
			defer valkey.Close()
			siteOpts = append(siteOpts, sitecache.WithViewStore(cache.NewViewCache(valkey, cfg.ViewCacheTTL)))
		}
	}

	svc := catalog.New(gw, opts...)
	site := sitecache.New(svc, siteOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := site.Load(ctx)
	slog.Info("catalog ready",
		"state", site.State().String(),
		"categories", len(snap.Categories),
		"courses", len(snap.Courses),
	)
	go site.Run(ctx, cfg.RefreshInterval)

	limiter := middleware.NewRateLimiter(cfg.RegistrationRateLimit, time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(handlers.New(site), limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// upload stores a course image or brochure and prints the public URL to use
// as its reference.
func upload(cfg *config.Config, prefix, path string) error {
	store, err := newStorage(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("upload: S3_ENDPOINT and credentials are not set")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	url, err := store.Upload(ctx, prefix, filepath.Base(path), contentType, f, info.Size())
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func remove(cfg *config.Config, ref string) error {
	store, err := newStorage(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("remove: S3_ENDPOINT and credentials are not set")
	}

	key, ok := store.ExtractKey(ref)
	if !ok {
		if strings.Contains(ref, "://") {
			return fmt.Errorf("remove: %s is not in bucket %s", ref, cfg.S3Bucket)
		}
		key = strings.TrimLeft(ref, "/")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := store.Delete(ctx, key); err != nil {
		return err
	}
	slog.Info("object removed", "key", key)
	return nil
}

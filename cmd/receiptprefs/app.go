package main

import (
	"fmt"
	"io"

	"github.com/CreativeUnicorns/receiptprefs"
	"github.com/CreativeUnicorns/receiptprefs/cache"
	"github.com/CreativeUnicorns/receiptprefs/encryption"
	"github.com/CreativeUnicorns/receiptprefs/internal/config"
	"github.com/CreativeUnicorns/receiptprefs/storage"
)

var _ receiptprefs.Encryptor = (*encryption.Cipher)(nil)

// app holds the components built from a Config.
type app struct {
	cfg     config.Config
	logger  receiptprefs.LeveledLogger
	manager *receiptprefs.Manager
}

type syncer interface {
	Sync() error
}

func loadApp(configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, logOut)
}

func newApp(cfg config.Config, logOut io.Writer) (*app, error) {
	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	opts := []receiptprefs.Option{
		receiptprefs.WithStorage(store),
		receiptprefs.WithLogger(logger),
		receiptprefs.WithCacheTTL(cfg.Cache.TTL),
		receiptprefs.WithDefinitions(receiptprefs.Catalog()...),
	}

	c, err := newCache(cfg.Cache)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if c != nil {
		opts = append(opts, receiptprefs.WithCache(c))
	}

	if cfg.Encryption.Enabled {
		cipher, err := encryption.NewCipherFromEnv()
		if err != nil {
			_ = store.Close()
			if c != nil {
				_ = c.Close()
			}
			return nil, fmt.Errorf("encryption: %w", err)
		}
		opts = append(opts, receiptprefs.WithEncryptor(cipher))
	}

	logger.Debug("Components configured",
		"storage", cfg.Storage.Driver,
		"cache", cfg.Cache.Driver,
		"encryption", cfg.Encryption.Enabled,
	)
	return &app{cfg: cfg, logger: logger, manager: receiptprefs.New(opts...)}, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) (receiptprefs.LeveledLogger, error) {
	level, err := receiptprefs.ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Format == config.LogFormatZap {
		return receiptprefs.NewZapLoggerTo(w, level), nil
	}
	return receiptprefs.NewSlogLogger(w, level, false), nil
}

func newCache(cfg config.CacheConfig) (receiptprefs.Cache, error) {
	switch cfg.Driver {
	case config.CacheMemory:
		return cache.NewMemoryCache(), nil
	case config.CacheRedis:
		c, err := cache.NewRedisCache(cache.RedisOptions{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, nil
}

func (a *app) Close() error {
	err := a.manager.Close()
	if s, ok := a.logger.(syncer); ok {
		// zap returns EINVAL when syncing stderr on some platforms.
		_ = s.Sync()
	}
	return err
}

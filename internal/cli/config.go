package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/typeset-go/typeset/pkg/buildinfo"
	"github.com/typeset-go/typeset/pkg/cache"
	"github.com/typeset-go/typeset/pkg/errors"
	"github.com/typeset-go/typeset/pkg/pipeline"
)

// configFilename is looked up in the working directory when no
// explicit --config path is given.
const configFilename = "typeset.toml"

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the CLI configuration, read from an optional TOML file.
// Command-line flags override individual fields.
type Config struct {
	// Width is the target buffer width in columns.
	Width int `toml:"width"`

	// Indent is the column offset per nest level.
	Indent int `toml:"indent"`

	// Depth is the compiler recursion budget.
	Depth int `toml:"depth"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory; empty means the user cache dir.
	Dir string `toml:"dir"`

	// Redis is the address of the redis backend ("host:port").
	Redis string `toml:"redis"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Width:  pipeline.DefaultBufferWidth,
		Indent: pipeline.DefaultIndentWidth,
		Depth:  pipeline.DefaultMaxDepth,
		Cache: CacheConfig{
			Backend: backendFile,
			Redis:   "localhost:6379",
		},
	}
}

// loadConfig reads the configuration file at path. An empty path looks
// for typeset.toml in the working directory and silently falls back to
// defaults when it does not exist; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = configFilename
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "no config file at %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return cfg, nil
}

// cacheDir returns the file cache directory for the configuration.
func cacheDir(cfg Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "typeset"), nil
}

// newCache builds the configured cache backend. Keys are scoped by
// engine version so releases never share entries.
func newCache(ctx context.Context, cfg Config) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope())

	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), keyer, nil
	case backendFile, "":
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, nil, err
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return c, keyer, nil
	case backendRedis:
		c, err := cache.NewRedisCache(ctx, cfg.Cache.Redis)
		if err != nil {
			return nil, nil, err
		}
		return c, keyer, nil
	default:
		return nil, nil, errors.New(errors.ErrCodeUnsupported,
			"unknown cache backend %q (use file, redis, or none)", cfg.Cache.Backend)
	}
}

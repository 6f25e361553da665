package animator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultTitle  = "animator"
	defaultWidth  = 960
	defaultHeight = 720
)

// Config describes an Animator instance. The zero value is usable: an empty
// Name selects a throwaway temp cache and the window falls back to defaults.
type Config struct {
	// Name keys a persistent cache directory under CacheRoot. Empty means a
	// private temp directory removed when Run returns.
	Name string `yaml:"name"`

	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// CacheRoot is the base directory for named caches. Defaults to
	// DefaultCacheRoot.
	CacheRoot string `yaml:"cache_root"`

	// WatchCache enables an fsnotify watcher on the cache directory so
	// external modifications mark the in-memory rendered state stale.
	WatchCache bool `yaml:"watch_cache"`

	// Setup, if non-nil, is invoked synchronously once after the cache
	// directory is resolved.
	Setup func() `yaml:"-"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.CacheRoot == "" {
		c.CacheRoot = DefaultCacheRoot
	}
}

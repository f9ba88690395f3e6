package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ListingConfig controls pagination limits for list endpoints. It is loaded
// from an optional listing.yml and can be tuned at runtime without a restart.
type ListingConfig struct {
	DefaultPageSize int `mapstructure:"defaultPageSize"`
	MaxPageSize     int `mapstructure:"maxPageSize"`
}

func DefaultListingConfig() ListingConfig {
	return ListingConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

type ListingConfigHolder struct {
	current atomic.Value // holds ListingConfig
}

func NewListingConfigHolder() (*ListingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("listing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/estoque")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ESTOQUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultListingConfig()
		v.SetDefault("listing.defaultPageSize", defaults.DefaultPageSize)
		v.SetDefault("listing.maxPageSize", defaults.MaxPageSize)
	}

	var cfg ListingConfig
	if err := v.UnmarshalKey("listing", &cfg); err != nil {
		return nil, err
	}
	if err := validateListingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ListingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ListingConfig
		if err := v.UnmarshalKey("listing", &updated); err != nil {
			log.Printf("[listing-config] reload failed: %v", err)
			return
		}
		if err := validateListingConfig(updated); err != nil {
			log.Printf("[listing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[listing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticListingConfigHolder wraps a fixed config, bypassing file loading
// and hot reload.
func NewStaticListingConfigHolder(cfg ListingConfig) *ListingConfigHolder {
	holder := &ListingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ListingConfigHolder) Get() ListingConfig {
	return h.current.Load().(ListingConfig)
}

func validateListingConfig(cfg ListingConfig) error {
	if cfg.DefaultPageSize <= 0 {
		return errors.New("listing.defaultPageSize must be positive")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return errors.New("listing.maxPageSize must be >= listing.defaultPageSize")
	}
	return nil
}

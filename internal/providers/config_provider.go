package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"wallfeed/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("timeline.itemsPerPage", 20)
	viper.SetDefault("timeline.itemsPerPageMobile", 20)
	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("lastSeen.backend", "memory")
	viper.SetDefault("lastSeen.cacheSize", 16)
	viper.SetDefault("lastSeen.ttl", "24h")

	viper.BindEnv("logger.level", "WALLFEED_LOG_LEVEL")
	viper.BindEnv("timeline.blockPublic", "WALLFEED_BLOCK_PUBLIC")
	viper.BindEnv("timeline.itemsPerPage", "WALLFEED_ITEMS_PER_PAGE")
	viper.BindEnv("timeline.forceMaxItems", "WALLFEED_FORCE_MAX_ITEMS")
	viper.BindEnv("storage.driver", "WALLFEED_STORAGE_DRIVER")
	viper.BindEnv("storage.dsn", "WALLFEED_STORAGE_DSN")
	viper.BindEnv("lastSeen.backend", "WALLFEED_LAST_SEEN_BACKEND")
	viper.BindEnv("lastSeen.redisAddr", "WALLFEED_REDIS_ADDR")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WallFeed"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Enabled      bool          `yaml:"enabled"`
	FilePath     string        `yaml:"filePath" validate:"unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// TimelineConfig holds the deployment-wide timeline settings.
type TimelineConfig struct {
	BlockPublic        bool   `yaml:"blockPublic"`
	ItemsPerPage       int    `yaml:"itemsPerPage" validate:"required|min:1"`
	ItemsPerPageMobile int    `yaml:"itemsPerPageMobile" validate:"required|min:1"`
	ForceMaxItems      int    `yaml:"forceMaxItems" validate:"min:0"`
	Timezone           string `yaml:"timezone"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" validate:"required|in:memory,sqlite,postgres"`
	DSN    string `yaml:"dsn"`
}

type LastSeenConfig struct {
	Backend   string        `yaml:"backend" validate:"required|in:memory,redis"`
	CacheSize int           `yaml:"cacheSize"`
	TTL       time.Duration `yaml:"ttl" validate:"required|min:1"`
	RedisAddr string        `yaml:"redisAddr"`
	RedisDB   int           `yaml:"redisDB"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server         `yaml:"webServer"`
	Logger      LoggerConfig   `yaml:"logger"`
	Timeline    TimelineConfig `yaml:"timeline"`
	Storage     StorageConfig  `yaml:"storage"`
	LastSeen    LastSeenConfig `yaml:"lastSeen"`
	Persistence Persistence    `yaml:"persistence"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Storage struct {
	Backend  string        `yaml:"backend" validate:"required|in:file,sqlite"`
	Path     string        `yaml:"path" validate:"required"`
	Key      string        `yaml:"key" validate:"required"`
	Debounce time.Duration `yaml:"debounce"`
}

type StoreConfig struct {
	IDFormat string `yaml:"idFormat" validate:"required|in:uuid,ulid"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   Storage       `yaml:"storage"`
	Store     StoreConfig   `yaml:"store"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

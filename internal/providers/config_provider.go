package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"runlog/internal/structures"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const AppName = "runlog"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")
	}

	v.BindEnv("logger.level", "RUNLOG_LOG_LEVEL")
	v.BindEnv("storage.backend", "RUNLOG_STORAGE_BACKEND")
	v.BindEnv("storage.path", "RUNLOG_STORAGE_PATH")
	v.BindEnv("storage.debounce", "RUNLOG_SAVE_DEBOUNCE")
	v.BindEnv("cache.enabled", "RUNLOG_CACHE_ENABLED")
	v.BindEnv("cache.size", "RUNLOG_CACHE_SIZE")

	if flags.ConfigPath != "" {
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if conf.Storage.Path == "" {
		conf.Storage.Path = filepath.Join(xdg.DataHome, AppName)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8087)
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.key", "runlogger.v1")
	v.SetDefault("storage.debounce", 300*time.Millisecond)
	v.SetDefault("store.idFormat", "uuid")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 60*time.Second)
	v.SetDefault("metrics.enabled", false)
}

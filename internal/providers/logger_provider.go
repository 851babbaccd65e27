package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runlog/internal/structures"
	"time"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeStorage
)

var typeNames = map[TypeEnum]string{
	TypeApp:     "app",
	TypeGet:     "get",
	TypePost:    "post",
	TypeStorage: "storage",
}

func (t TypeEnum) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "app"
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

// GetLogTypeByRequestType picks the log channel for an HTTP method.
func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(typeNames))}

	for t, name := range typeNames {
		var out io.Writer
		if conf.Logger.Dir == "" {
			out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		} else {
			path := filepath.Join(conf.Logger.Dir, name+".log")
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
			if err != nil {
				lp.Close()
				return nil, fmt.Errorf("open log file %s: %w", path, err)
			}
			lp.files = append(lp.files, file)
			out = file
		}
		lp.loggers[t] = zerolog.New(out).Level(level).With().Timestamp().Str("type", name).Logger()
	}

	return lp, nil
}

func (lp *LogProvider) get(t TypeEnum) *zerolog.Logger {
	l, ok := lp.loggers[t]
	if !ok {
		l = lp.loggers[TypeApp]
	}
	return &l
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.get(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
	lp.files = nil
}

package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which queries are logged as warnings.
const slowQuery = 200 * time.Millisecond

// logger writes gorm logs to zerolog.
type logger struct {
	Logger zerolog.Logger
	Level  gorm_logger.LogLevel
}

func newLogger(l zerolog.Logger) *logger {
	return &logger{Logger: l, Level: gorm_logger.Info}
}

func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	return &logger{Logger: l.Logger, Level: level}
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	if l.Level >= gorm_logger.Info {
		l.Logger.Info().Msgf(s, args...)
	}
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	if l.Level >= gorm_logger.Warn {
		l.Logger.Warn().Msgf(s, args...)
	}
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	if l.Level >= gorm_logger.Error {
		l.Logger.Error().Msgf(s, args...)
	}
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]any{
		"sql":      sql,
		"rows":     rows,
		"duration": elapsed,
	}

	switch {
	// Missing rows and taken emails are answered to the client, they are not server errors
	case err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, ErrEmailInUse):
		l.Logger.Error().Err(err).Fields(fields).Msg("[GORM] query error")
	case elapsed > slowQuery && l.Level >= gorm_logger.Warn:
		l.Logger.Warn().Fields(fields).Msg("[GORM] slow query")
	case l.Level >= gorm_logger.Info:
		l.Logger.Debug().Fields(fields).Msg("[GORM] query")
	}
}

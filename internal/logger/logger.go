package logger

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Setup configures the process-wide logrus logger.
func Setup(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return nil
}

// Gorm routes gorm's query log through logrus.
func Gorm() gormlogger.Interface {
	level := gormlogger.Warn
	if log.IsLevelEnabled(log.DebugLevel) {
		level = gormlogger.Info
	}

	return gormlogger.New(log.StandardLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init инициализирует структурированный логгер. Формат "text" включает
// человекочитаемый вывод, всё остальное пишется в JSON.
func Init(level, format string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if format == "text" {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// Get возвращает инициализированный логгер или стандартный, если Init не вызывался.
func Get() *logrus.Logger {
	if Log == nil {
		return logrus.StandardLogger()
	}
	return Log
}

// Discard логгер без вывода, удобен в тестах.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

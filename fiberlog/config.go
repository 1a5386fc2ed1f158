package fiberlog

import "github.com/sirupsen/logrus"

type Config struct {
	// Logger при nil запросы пишутся стандартным логгером на уровне debug
	Logger *logrus.Logger

	Tags []string

	// SkipPaths префиксы путей, запросы к которым не логируются
	SkipPaths []string

	// UserTag добавлять идентификатор оператора из JWT
	UserTag bool
}

var ConfigDefault = Config{
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
	},
}

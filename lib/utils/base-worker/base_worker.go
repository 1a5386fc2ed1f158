package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// Run выполняет jobFunc с заданным интервалом до завершения контекста.
// stopFunc (если задан) вызывается один раз после остановки.
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context), stopFunc func()) {
	logger := i.GetLogger()
	defer func() {
		if stopFunc != nil {
			i.safeCall(stopFunc)
		}
		logger.Info("Задача остановлена")
	}()
	period := i.firstRunDelay
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(period):
			logger.Debug("Задача запущена")
			i.safeCall(func() { jobFunc(ctx) })
			logger.Debug("Задача выполнена")
		}
		period = i.runInterval
	}
}

func (i BaseImpl) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	fn()
}

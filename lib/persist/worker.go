package persist

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	persiststore "hr-pipeline-backend/lib/persist/store"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	baseworker "hr-pipeline-backend/lib/utils/base-worker"
)

type source interface {
	Subscribe(fn func(event pipelinestate.ChangeEvent))
	Snapshot() pipelinestate.Snapshot
	Restore(snapshot pipelinestate.Snapshot) pipelinestate.RestoreReport
}

// Load заполняет состояние из БД, false - в БД нет процессов подбора
func Load(state source, store persiststore.Provider) (loaded bool, err error) {
	snapshot, err := store.Load()
	if err != nil {
		return false, err
	}
	if len(snapshot.Processes) == 0 && len(snapshot.Candidates) == 0 {
		return false, nil
	}
	report := state.Restore(snapshot)
	log.
		WithField("processes", len(snapshot.Processes)).
		WithField("candidates", len(snapshot.Candidates)).
		WithField("repaired", report.Repaired).
		WithField("dropped", report.Dropped).
		Info("состояние загружено из БД")
	return true, nil
}

func StartWorker(ctx context.Context, state source, store persiststore.Provider, period time.Duration) {
	i := NewWorker(state, store, period)
	// начальные данные из файла попадают в БД при первом сохранении
	i.MarkDirty()
	go i.Run(ctx, i.handle, i.flush)
}

func NewWorker(state source, store persiststore.Provider, period time.Duration) *Worker {
	i := &Worker{
		BaseImpl: *baseworker.NewInstance("PersistWorker", period, period),
		state:    state,
		store:    store,
	}
	state.Subscribe(func(event pipelinestate.ChangeEvent) {
		i.dirty.Store(true)
	})
	return i
}

// Worker периодически сохраняет состояние в БД, если оно изменилось
type Worker struct {
	baseworker.BaseImpl
	state source
	store persiststore.Provider
	dirty atomic.Bool
}

func (i *Worker) MarkDirty() {
	i.dirty.Store(true)
}

func (i *Worker) handle(ctx context.Context) {
	i.flush()
}

func (i *Worker) flush() {
	if err := i.Flush(); err != nil {
		i.GetLogger().WithError(err).Error("ошибка сохранения состояния в БД")
	}
}

func (i *Worker) Flush() error {
	if !i.dirty.Swap(false) {
		return nil
	}
	err := i.store.Save(i.state.Snapshot())
	if err != nil {
		i.dirty.Store(true)
		return errors.Wrap(err, "ошибка сохранения снимка состояния")
	}
	i.GetLogger().Debug("состояние сохранено в БД")
	return nil
}

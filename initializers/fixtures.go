package initializers

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	"hr-pipeline-backend/lib/fixtures"
	"hr-pipeline-backend/lib/persist"
	persiststore "hr-pipeline-backend/lib/persist/store"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
)

// InitState состояние загружается из БД, если она включена и не пуста, иначе из файла начальных данных
func InitState() {
	if db.DB != nil {
		loaded, err := persist.Load(pipelinestate.Instance, persiststore.NewInstance(db.DB))
		if err != nil {
			log.WithError(err).Error("ошибка загрузки состояния из БД")
		}
		if loaded {
			return
		}
	}
	snapshot, err := fixtures.Load(config.Conf.Fixtures.Path)
	if err != nil {
		if errors.Is(err, fixtures.ErrFixturesNotFound) {
			log.WithField("path", config.Conf.Fixtures.Path).Warn("файл начальных данных не найден, доска подбора пуста")
			return
		}
		panic(err.Error())
	}
	report := pipelinestate.Instance.Restore(snapshot)
	log.
		WithField("processes", len(snapshot.Processes)).
		WithField("candidates", len(snapshot.Candidates)).
		WithField("associations", len(snapshot.Associations)).
		WithField("repaired", report.Repaired).
		WithField("dropped", report.Dropped).
		Info("загружены начальные данные")
}

package initializers

import (
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
)

func InitDBConnection() {
	if !*config.Conf.Database.Enabled {
		log.Info("хранение в БД отключено, состояние хранится только в памяти")
		return
	}
	err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
		config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}
}

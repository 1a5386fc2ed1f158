package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Создать или обновить таблицы БД",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	dbConf := config.Conf.Database
	err := db.Connect(dbConf.Host, dbConf.Port, dbConf.Name, dbConf.User, dbConf.Password, *dbConf.DebugMode, false)
	if err != nil {
		return err
	}
	if err = db.PingDB(); err != nil {
		return errors.Wrap(err, "БД недоступна")
	}
	return db.AutoMigrateDB()
}

package initializers

import (
	"context"
	"time"

	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	"hr-pipeline-backend/fiberlog"
	"hr-pipeline-backend/lib/board"
	candidatehandler "hr-pipeline-backend/lib/candidate"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	filestorage "hr-pipeline-backend/lib/file-storage"
	"hr-pipeline-backend/lib/persist"
	persiststore "hr-pipeline-backend/lib/persist/store"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	processhandler "hr-pipeline-backend/lib/process"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/lib/ws"
	connectionhub "hr-pipeline-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	connectionhub.Init()
	pipelinestate.NewHandler()
	InitState()
	filestorage.NewHandler()
	candidatehistoryhandler.NewHandler()
	processhandler.NewHandler()
	candidatehandler.NewHandler()
	board.NewHandler()
	xlsexport.NewHandler()
	initchecker.MustCheck(
		initchecker.Dep("pipelinestate", pipelinestate.Instance),
		initchecker.Dep("filestorage", filestorage.Instance),
		initchecker.Dep("candidatehistory", candidatehistoryhandler.Instance),
		initchecker.Dep("process", processhandler.Instance),
		initchecker.Dep("candidate", candidatehandler.Instance),
		initchecker.Dep("board", board.Instance),
		initchecker.Dep("xlsexport", xlsexport.Instance),
		initchecker.Dep("connectionhub", connectionhub.Instance),
	)
	ws.SubscribeBoard(pipelinestate.Instance, connectionhub.Instance, board.Instance.ActiveProcessID, time.Now)
	initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача сохранения состояния в БД
	if db.DB != nil {
		period := time.Duration(config.Conf.Database.FlushPeriodSec) * time.Second
		persist.StartWorker(ctx, pipelinestate.Instance, persiststore.NewInstance(db.DB), period)
	}
}

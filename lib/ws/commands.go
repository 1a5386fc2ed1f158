package ws

import (
	"time"

	log "github.com/sirupsen/logrus"
	connectionhub "hr-pipeline-backend/lib/ws/hub/connection-hub"
	wsmodels "hr-pipeline-backend/models/ws"
)

type boardSessions interface {
	SelectProcess(userID, processID string) string
	CancelMove(userID string)
}

// CommandHandler выполняет команды оператора и отвечает board_changed для выбранного процесса
func CommandHandler(board boardSessions, hub connectionhub.Provider, now func() time.Time) func(userID string, msg wsmodels.ClientMessage) {
	if now == nil {
		now = time.Now
	}
	return func(userID string, msg wsmodels.ClientMessage) {
		logger := log.
			WithField("user_id", userID).
			WithField("code", msg.Code)
		switch msg.Code {
		case wsmodels.ClientSelectProcess:
			processID := board.SelectProcess(userID, msg.ProcessID)
			hub.SendMessage(wsmodels.ServerMessage{
				ToUserID:  userID,
				Time:      now().Format("02.01.2006 15:04:05"),
				Code:      wsmodels.CodeBoardChanged,
				Msg:       "выбран процесс подбора",
				ProcessID: processID,
			})
		case wsmodels.ClientCancelMove:
			board.CancelMove(userID)
		default:
			logger.Debug("неизвестная команда")
		}
	}
}

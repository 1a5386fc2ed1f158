package ws

import (
	"time"

	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	connectionhub "hr-pipeline-backend/lib/ws/hub/connection-hub"
	wsmodels "hr-pipeline-backend/models/ws"
)

type subscriber interface {
	Subscribe(fn func(event pipelinestate.ChangeEvent))
}

// SubscribeBoard рассылает изменения состояния подключенным операторам.
// activeProcess - процесс, открытый у оператора на доске.
func SubscribeBoard(state subscriber, hub connectionhub.Provider, activeProcess func(userID string) string, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	state.Subscribe(func(event pipelinestate.ChangeEvent) {
		for _, msg := range BuildMessages(event, hub.ConnectedUsers(), activeProcess, now()) {
			hub.SendMessage(msg)
		}
	})
}

func BuildMessages(event pipelinestate.ChangeEvent, users []string, activeProcess func(userID string) string, now time.Time) []wsmodels.ServerMessage {
	result := make([]wsmodels.ServerMessage, 0, len(users))
	for _, userID := range users {
		msg := wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     now.Format("02.01.2006 15:04:05"),
			Entity:   string(event.Entity),
			EntityID: event.ID,
		}
		if event.ProcessID == "" {
			msg.Code = wsmodels.CodeCandidateChanged
			msg.Msg = "Изменены данные кандидата"
			result = append(result, msg)
			continue
		}
		// список процессов на доске видят все операторы
		if event.Entity != pipelinestate.EntityProcess && activeProcess(userID) != event.ProcessID {
			continue
		}
		msg.Code = wsmodels.CodeBoardChanged
		msg.Msg = "Доска подбора изменена"
		msg.ProcessID = event.ProcessID
		result = append(result, msg)
	}
	return result
}

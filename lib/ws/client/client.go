package wsclient

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	wsmodels "hr-pipeline-backend/models/ws"
)

// MessageHandler обработчик команд оператора
type MessageHandler func(userID string, msg wsmodels.ClientMessage)

func NewClient(userID string, c *websocket.Conn, handler MessageHandler) *WsClient {
	return &WsClient{
		conn:    c,
		userID:  userID,
		handler: handler,
	}
}

type WsClient struct {
	conn    *websocket.Conn
	userID  string
	handler MessageHandler
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает команды до закрытия соединения
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	if c.conn == nil {
		return
	}
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		msg, ok := Decode(data)
		if !ok {
			logger.WithField("ws_message", string(data)).Debug("нераспознанное сообщение")
			continue
		}
		if c.handler != nil {
			c.handler(c.userID, msg)
		}
	}
}

func Decode(data []byte) (wsmodels.ClientMessage, bool) {
	msg := wsmodels.ClientMessage{}
	if err := json.Unmarshal(data, &msg); err != nil || msg.Code == "" {
		return wsmodels.ClientMessage{}, false
	}
	return msg, true
}

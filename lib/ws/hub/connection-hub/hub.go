package connectionhub

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	wsmodels "hr-pipeline-backend/models/ws"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage)
	ConnectedUsers() []string
}

var Instance Provider

func Init() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]clientSession //map[userID]
}

// DeleteClient соединение, замененное более новым, не удаляет новую сессию
func (i *impl) DeleteClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	ok = ok && sess.conn == conn
	if ok {
		delete(i.clients, userID)
	}
	i.mu.Unlock()
	if !ok {
		return
	}
	sess.stop()
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = newSession(conn)
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
	log.WithField("user_id", userID).Debug("ws клиент подключен")
}

// SendMessage не блокирует, при переполненном буфере сообщение отбрасывается
func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case sess.sendCh <- msg:
	case <-sess.done:
	default:
		log.WithField("user_id", msg.ToUserID).Warn("ws буфер переполнен, событие отброшено")
	}
}

func (i *impl) ConnectedUsers() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]string, 0, len(i.clients))
	for userID := range i.clients {
		result = append(result, userID)
	}
	return result
}

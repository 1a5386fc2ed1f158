package ws

import (
	"testing"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
	wsclient "hr-pipeline-backend/lib/ws/client"
	wsmodels "hr-pipeline-backend/models/ws"
)

type fakeHub struct {
	sent []wsmodels.ServerMessage
}

func (h *fakeHub) AddClient(userID string, conn *websocket.Conn)    {}
func (h *fakeHub) DeleteClient(userID string, conn *websocket.Conn) {}
func (h *fakeHub) ConnectedUsers() []string                         { return nil }

func (h *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	h.sent = append(h.sent, msg)
}

type fakeBoard struct {
	selected  map[string]string
	cancelled []string
}

func (b *fakeBoard) SelectProcess(userID, processID string) string {
	if processID == "" {
		processID = "P1"
	}
	b.selected[userID] = processID
	return processID
}

func (b *fakeBoard) CancelMove(userID string) {
	b.cancelled = append(b.cancelled, userID)
}

func TestCommandHandler(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	hub := &fakeHub{}
	board := &fakeBoard{selected: map[string]string{}}
	handle := CommandHandler(board, hub, func() time.Time { return now })

	t.Run(`select process`, func(t *testing.T) {
		handle("u1", wsmodels.ClientMessage{Code: wsmodels.ClientSelectProcess, ProcessID: "P2"})
		require.Equal(t, "P2", board.selected["u1"])
		require.Len(t, hub.sent, 1)
		require.Equal(t, "u1", hub.sent[0].ToUserID)
		require.Equal(t, wsmodels.CodeBoardChanged, hub.sent[0].Code)
		require.Equal(t, "P2", hub.sent[0].ProcessID)
		require.Equal(t, "01.03.2024 10:00:00", hub.sent[0].Time)
	})

	t.Run(`select with fallback`, func(t *testing.T) {
		handle("u2", wsmodels.ClientMessage{Code: wsmodels.ClientSelectProcess})
		require.Equal(t, "P1", hub.sent[len(hub.sent)-1].ProcessID)
	})

	t.Run(`cancel move`, func(t *testing.T) {
		sent := len(hub.sent)
		handle("u1", wsmodels.ClientMessage{Code: wsmodels.ClientCancelMove})
		require.Equal(t, []string{"u1"}, board.cancelled)
		require.Len(t, hub.sent, sent)
	})

	t.Run(`unknown command`, func(t *testing.T) {
		sent := len(hub.sent)
		handle("u1", wsmodels.ClientMessage{Code: "drop_all"})
		require.Len(t, hub.sent, sent)
	})
}

func TestDecode(t *testing.T) {
	msg, ok := wsclient.Decode([]byte(`{"code":"select_process","process_id":"P1"}`))
	require.True(t, ok)
	require.Equal(t, "P1", msg.ProcessID)

	_, ok = wsclient.Decode([]byte(`{"process_id":"P1"}`))
	require.False(t, ok)

	_, ok = wsclient.Decode([]byte(`ping`))
	require.False(t, ok)
}

package ws

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/lib/board"
	wsclient "hr-pipeline-backend/lib/ws/client"
	connectionhub "hr-pipeline-backend/lib/ws/hub/connection-hub"
	"hr-pipeline-backend/middleware"
)

func InitWs(app *fiber.App) {
	app.Use(middleware.WsAuthorizationRequired())
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("userID", middleware.GetUserID(ctx))
		return ctx.Next()
	})
	app.Get("/", websocket.New(boardHandler))
}

// boardAdapter команды ws работают с теми же сессиями, что и REST доски
type boardAdapter struct {
	board board.Provider
}

func (a boardAdapter) SelectProcess(userID, processID string) string {
	return a.board.SelectProcess(userID, processID).ProcessID
}

func (a boardAdapter) CancelMove(userID string) {
	a.board.CancelMove(userID)
}

// @Summary Изменения доски подбора
// @Tags Websocket
// @Description События board_changed для операторов, у которых открыт измененный процесс, и candidate_changed для всех.
// @Description Команды клиента: {"code":"select_process","process_id":"..."}, {"code":"cancel_move"}
// @Param   token		query		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /ws [get]
func boardHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	handler := CommandHandler(boardAdapter{board: board.Instance}, connectionhub.Instance, time.Now)
	client := wsclient.NewClient(userID, c, handler)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID, c)
	}()
	client.Dispatch()
}

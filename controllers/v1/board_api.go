package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/controllers"
	"hr-pipeline-backend/lib/board"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	pdfexport "hr-pipeline-backend/lib/export/pdf"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	boardapimodels "hr-pipeline-backend/models/api/board"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
)

type boardApiController struct {
	controllers.BaseAPIController
}

func InitBoardApiRouters(app *fiber.App) {
	controller := boardApiController{}
	app.Route("board", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("select", controller.selectProcess)
		router.Put("enroll", controller.enroll)
		router.Route("move", func(moveRoute fiber.Router) {
			moveRoute.Put("begin", controller.beginMove)
			moveRoute.Put("complete", controller.completeMove)
			moveRoute.Put("cancel", controller.cancelMove)
		})
		router.Route("association/:id", func(assocRoute fiber.Router) {
			assocRoute.Put("status", controller.changeStatus)
			assocRoute.Post("changes", controller.changes)
		})
		router.Route("export", func(exportRoute fiber.Router) {
			exportRoute.Get("xlsx", controller.exportXlsx)
			exportRoute.Get("pdf", controller.exportPdf)
		})
	})
}

// @Summary Доска подбора
// @Tags Доска подбора
// @Description Колонки этапов активного процесса с карточками кандидатов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=boardapimodels.BoardView}
// @Failure 403
// @router /api/v1/board [get]
func (c *boardApiController) get(ctx *fiber.Ctx) error {
	view := board.Instance.Board(middleware.GetUserID(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Выбор процесса
// @Tags Доска подбора
// @Description Выбор активного процесса подбора. Неизвестный процесс заменяется первым доступным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 boardapimodels.SelectRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=boardapimodels.BoardView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/board/select [put]
func (c *boardApiController) selectProcess(ctx *fiber.Ctx) error {
	var payload boardapimodels.SelectRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view := board.Instance.SelectProcess(middleware.GetUserID(ctx), payload.ProcessID)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Добавление кандидата в процесс
// @Tags Доска подбора
// @Description Кандидат попадает на первый этап процесса со статусом in_progress
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 boardapimodels.EnrollRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/board/enroll [put]
func (c *boardApiController) enroll(ctx *fiber.Ctx) error {
	var payload boardapimodels.EnrollRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := board.Instance.Enroll(middleware.GetUserID(ctx), middleware.GetUserName(ctx), payload.ProcessID, payload.CandidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления кандидата в процесс подбора")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Начало перетаскивания
// @Tags Доска подбора
// @Description Отметка перетаскиваемого кандидата. Отказ возвращается как started=false с причиной
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 boardapimodels.BeginMoveRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=boardapimodels.DragResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/board/move/begin [put]
func (c *boardApiController) beginMove(ctx *fiber.Ctx) error {
	var payload boardapimodels.BeginMoveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	ok, reason := board.Instance.BeginMove(middleware.GetUserID(ctx), payload.AssociationID)
	result := boardapimodels.DragResult{
		Started: ok,
		Reason:  reason,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Перенос кандидата на этап
// @Tags Доска подбора
// @Description Завершение перетаскивания. Результат: moved / noop / rejected
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 boardapimodels.CompleteMoveRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=boardapimodels.MoveResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/board/move/complete [put]
func (c *boardApiController) completeMove(ctx *fiber.Ctx) error {
	var payload boardapimodels.CompleteMoveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result := board.Instance.CompleteMove(middleware.GetUserID(ctx), middleware.GetUserName(ctx), payload.AssociationID, payload.StageID)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Отмена перетаскивания
// @Tags Доска подбора
// @Description Отмена перетаскивания без изменений
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @router /api/v1/board/move/cancel [put]
func (c *boardApiController) cancelMove(ctx *fiber.Ctx) error {
	board.Instance.CancelMove(middleware.GetUserID(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена статуса кандидата
// @Tags Доска подбора
// @Description Смена статуса кандидата в процессе, этап не меняется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ID участия кандидата в процессе"
// @Param	body body	 boardapimodels.StatusChangeRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/board/association/{id}/status [put]
func (c *boardApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload boardapimodels.StatusChangeRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := board.Instance.SetStatus(middleware.GetUserID(ctx), middleware.GetUserName(ctx), id, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса кандидата")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary История изменений
// @Tags Доска подбора
// @Description История действий по кандидату в процессе подбора
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ID участия кандидата в процессе"
// @Param	body body	 candidateapimodels.HistoryFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/board/association/{id}/changes [post]
func (c *boardApiController) changes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.HistoryFilter
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehistoryhandler.Instance.List(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории изменений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка доски в xlsx
// @Tags Доска подбора
// @Description Выгрузка активного процесса подбора в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/board/export/xlsx [get]
func (c *boardApiController) exportXlsx(ctx *fiber.Ctx) error {
	view := board.Instance.Board(middleware.GetUserID(ctx))
	if view.Process == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не выбран процесс подбора"))
	}
	buf, err := xlsexport.Instance.ExportBoard(view)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки доски подбора")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFileName("xlsx")))
	return ctx.Send(buf.Bytes())
}

// @Summary Выгрузка доски в pdf
// @Tags Доска подбора
// @Description Выгрузка активного процесса подбора в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/board/export/pdf [get]
func (c *boardApiController) exportPdf(ctx *fiber.Ctx) error {
	view := board.Instance.Board(middleware.GetUserID(ctx))
	if view.Process == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не выбран процесс подбора"))
	}
	body, err := pdfexport.GenerateBoard(view, config.Conf.Export.FontDir)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки доски подбора")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFileName("pdf")))
	return ctx.Send(body)
}

func exportFileName(ext string) string {
	return fmt.Sprintf("board_%v.%v", time.Now().Format("20060102_1504"), ext)
}

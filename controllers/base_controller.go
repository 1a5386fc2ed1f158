package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	filestorage "hr-pipeline-backend/lib/file-storage"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
)

type BaseAPIController struct{}

var notFoundErrors = []error{
	pipelinestate.ErrProcessNotFound,
	pipelinestate.ErrStageNotFound,
	pipelinestate.ErrCandidateNotFound,
	pipelinestate.ErrAssociationNotFound,
	filestorage.ErrFileNotFound,
}

var badRequestErrors = []error{
	pipelinestate.ErrUnknownStatus,
	pipelinestate.ErrForeignStage,
	pipelinestate.ErrAlreadyEnrolled,
}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value := ctx.Params(name)
	if value == "" {
		return "", errors.Errorf("не указан параметр %v", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID := middleware.GetUserID(ctx); userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError известные ошибки отдаются как 404/400, остальные логируются и отдаются как 500 с текстом msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(target.Error()))
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(target.Error()))
		}
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
)

// ConfiguratorRequired настройка процессов и этапов подбора
func ConfiguratorRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).CanConfigure() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(ctx, "sub")
}

func GetUserName(ctx *fiber.Ctx) string {
	return claimString(ctx, "name")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(claimString(ctx, "role"))
}

func claimString(ctx *fiber.Ctx, key string) string {
	claims := authutils.GetClaims(ctx)
	if value, exist := claims[key]; exist {
		if stringValue, ok := value.(string); ok {
			return stringValue
		}
	}
	return ""
}

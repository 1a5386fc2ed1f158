package fiberlog

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	pid := os.Getpid()
	tags := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions || skipPath(cfg.SkipPaths, c.Path()) {
			return c.Next()
		}
		d := &data{
			pid:   pid,
			start: time.Now(),
		}
		err := c.Next()
		d.end = time.Now()

		fields := collectFields(tags, c, d)
		if cfg.UserTag {
			if userID := userFromToken(c); userID != "" {
				fields["user_id"] = userID
			}
		}
		message := "запрос api " + c.Method() + " " + c.Path()
		if cfg.Logger == nil {
			log.WithFields(fields).Debug(message)
			return err
		}
		entry := cfg.Logger.WithFields(fields)
		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entry.Warn(message)
		} else {
			entry.Info(message)
		}
		return err
	}
}

// пустые строковые значения в лог не попадают
func collectFields(tags map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(tags)+1)
	for name, tag := range tags {
		value := tag(c, d)
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		fields[name] = value
	}
	return fields
}

func skipPath(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func userFromToken(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagUserAgent = "user_agent"
	RequestID    = "request_id"

	// тело ответа длиннее обрезается
	maxBodyLogLen = 2048
)

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			if isMultipart(c) {
				return ""
			}
			return cut(string(c.Body()))
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			if c.Response() == nil {
				return ""
			}
			return cut(string(c.Response().Body()))
		},
		TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			if id := c.Get(fiber.HeaderXRequestID); id != "" {
				return id
			}
			id := uuid.NewString()
			c.Set(fiber.HeaderXRequestID, id)
			return id
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func isMultipart(c *fiber.Ctx) bool {
	return len(c.Request().Header.MultipartFormBoundary()) != 0
}

func cut(value string) string {
	if len(value) > maxBodyLogLen {
		return value[:maxBodyLogLen] + "..."
	}
	return value
}

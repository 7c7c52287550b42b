package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const localLogger = "logger"

// RequestLogging registra cada request con zerolog: método, ruta, status, latencia y negocio.
func RequestLogging(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().Str("method", c.Method()).Str("path", c.Path()).Logger()
		c.Locals(localLogger, reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error().Err(err)
		}
		if businessID := GetBusinessID(c); businessID != "" {
			ev = ev.Str("business_id", businessID)
		}
		ev.Int("status", status).Dur("latency", time.Since(start)).Msg("request")
		return err
	}
}

// RequestLogger devuelve el logger del request; Nop si el middleware no corrió.
func RequestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(zerolog.Logger); ok {
		return &l
	}
	nop := zerolog.Nop()
	return &nop
}

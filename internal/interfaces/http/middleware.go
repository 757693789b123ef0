package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/emart-api/pkg/jwt"
)

// Locals keys para la identidad del llamador en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalRequestID = "request_id"
)

// IdentityMiddleware resuelve el usuario que actúa en la petición.
// Un Bearer válido tiene prioridad; si no hay token (o no hay secreto configurado) se usa el
// parámetro userId. No bloquea: la autorización queda fuera de esta API.
func IdentityMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtSecret != "" {
			if tokenString := bearerToken(c.Get(fiber.HeaderAuthorization)); tokenString != "" {
				userID, role, err := jwt.Parse(jwtSecret, issuer, tokenString)
				if err == nil {
					c.Locals(LocalUserID, userID)
					c.Locals(LocalRole, role)
					return c.Next()
				}
			}
		}
		if userID := strings.TrimSpace(c.Query("userId")); userID != "" {
			c.Locals(LocalUserID, userID)
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID devuelve el usuario que actúa (después de IdentityMiddleware). Vacío si es anónimo.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token, vacío si la identidad vino por query.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// RequestIDMiddleware asigna X-Request-ID (respeta el que envíe el cliente).
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	})
}

// RequestLogger registra método, ruta, status, latencia y request id de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// deja que el ErrorHandler de fiber escriba el status antes de loguear
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		reqID, _ := c.Locals(LocalRequestID).(string)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(chainErr)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", reqID).
			Str("user_id", GetUserID(c)).
			Msg("petición HTTP")
		return nil
	}
}

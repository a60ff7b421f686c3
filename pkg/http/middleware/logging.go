package middleware

import (
	"strconv"
	"time"

	applogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs each HTTP request at debug level. A nil logger
// disables logging.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			if l != nil {
				req := c.Request()
				l.Debug("http request",
					applogger.String("method", req.Method),
					applogger.String("uri", req.RequestURI),
					applogger.String("remote", req.RemoteAddr),
					applogger.String("status", strconv.Itoa(c.Response().Status)),
					applogger.Duration("latency", time.Since(start)),
				)
			}

			return err
		}
	}
}

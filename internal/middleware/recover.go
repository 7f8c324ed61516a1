package middleware

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"OnShift/config"
	"OnShift/pkg/errors"
	"OnShift/pkg/logger"
	"OnShift/pkg/response"
)

// RecoverMiddleware turns handler panics into a 500 with the standard
// error envelope. Stack details leak only outside production.
func RecoverMiddleware() app.HandlerFunc {
	isProduction := config.Cfg.IsProduction()

	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := stackTrace()

				logger.Logger.Error("Handler panic recovered",
					zap.Any("panic", err),
					zap.String("method", string(c.Method())),
					zap.String("path", string(c.Path())),
					zap.ByteString("stack", stack),
				)

				errDef := errors.Definition{
					Code:    "INTERNAL_SERVER_ERROR",
					Message: "Internal server error",
				}

				if isProduction {
					response.Error(ctx, c, errDef)
					return
				}
				response.ErrorWithDetails(ctx, c, errDef, map[string]interface{}{
					"panic":     fmt.Sprintf("%v", err),
					"stack":     string(stack),
					"timestamp": time.Now().Format(time.RFC3339),
				})
			}
		}()

		c.Next(ctx)
	}
}

// stackTrace captures the current goroutine's call stack, skipping
// the recover plumbing.
func stackTrace() []byte {
	var buf bytes.Buffer
	for i := 3; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		buf.WriteString(fmt.Sprintf("  %s:%d\n    %s\n", file, line, fn.Name()))
	}
	return buf.Bytes()
}

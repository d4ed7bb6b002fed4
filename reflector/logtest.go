package reflector

import (
	"log/slog"

	"github.com/podhmo/go-reflector/logging"
)

// LogTest writes one record at each level, TRACE through ERROR. Which of them
// show up depends on the configured level.
func LogTest(c *Context) (string, error) {
	name := "Go"
	ctx := c.Context()

	c.Logger.Log(ctx, logging.LevelTrace, "trace log", slog.String("name", name))
	c.Logger.DebugContext(ctx, "debug log", slog.String("name", name))
	c.Logger.InfoContext(ctx, "info log", slog.String("name", name))
	c.Logger.WarnContext(ctx, "warn log", slog.String("name", name))
	c.Logger.ErrorContext(ctx, "error log", slog.String("name", name))
	return "ok", nil
}

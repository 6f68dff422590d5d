package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/texset/internal/logger"
)

func renderLog() *zap.Logger {
	return logger.Named(logger.CategoryRender)
}

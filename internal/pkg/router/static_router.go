package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// StaticRouter serves the generated magazine PDFs. The flipbook converter
// fetches them through this route, so it stays uncached on our side and
// relies on the per-request cache buster instead.
type StaticRouter struct {
	outputDir string
}

func NewStaticRouter(outputDir string) *StaticRouter {
	return &StaticRouter{outputDir: outputDir}
}

func (h StaticRouter) InstallRouter(app *fiber.App) {
	app.Static("/generated-pdfs", h.outputDir, fiber.Static{
		CacheDuration: 10 * time.Second,
		Compress:      false,
	})
}

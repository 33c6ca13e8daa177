package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
	deps *Dependencies
}

func NewApiRouter(deps *Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Submission and feed
	api.Post("/news", h.deps.News.HandleSubmit)
	api.Get("/news/mine", h.deps.News.HandleMySubmissions)
	api.Post("/news/feed", h.deps.News.HandleFeed)
	api.Post("/news/enhance", h.deps.News.HandleEnhance)
	api.Post("/news/retract", h.deps.AdminNews.HandleRetract)

	// Review workflow. Authentication is a stub: the admin identity is the
	// client-supplied uploader string, verified nowhere. See DESIGN.md.
	admin := api.Group("/admin")
	admin.Get("/news", h.deps.AdminNews.HandleReviewQueue)
	admin.Post("/news/review", h.deps.AdminNews.HandleReview)
	admin.Get("/priorities", h.deps.AdminNews.HandleListPriorities)
	admin.Post("/priorities", h.deps.AdminNews.HandleSetPriority)
	admin.Delete("/priorities/:user_id", h.deps.AdminNews.HandleDeletePriority)

	// Magazine pipeline
	api.Post("/magazine/generate", h.deps.Magazine.HandleGenerate)
	api.Post("/magazine/summary", h.deps.Magazine.HandleSummary)
	api.Post("/magazine/publish", h.deps.Magazine.HandlePublish)
	api.Get("/magazine/pdfs", h.deps.Magazine.HandleListPDFs)

	// Flipbook conversion
	api.Post("/flipbook", h.deps.Flipbook.HandleConvert)
}
